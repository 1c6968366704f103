package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/samuelfneumann/godice/environment/dice"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

var (
	simMu    float64 // Constant abatement rate
	simYears int     // Number of years to simulate
	simEvery int     // Print every simEvery years
)

// simulateCmd prints the trajectory of a constant abatement rate
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a constant abatement rate and print the trajectory",
	Run: func(cmd *cobra.Command, args []string) {
		config := loadEnvConfig()
		d, step, err := config.Create(seed)
		if err != nil {
			logrus.Fatalf("could not create environment: %v", err)
		}

		years := simYears
		if years <= 0 || years > config.Horizon {
			years = config.Horizon
		}
		if simEvery <= 0 {
			simEvery = 1
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "year\tμ\tK\tM_AT\tT_AT\tT_LO\tE\tC\tΩ\tΛ\treward\t")

		action := mat.NewVecDense(dice.ActionDims, []float64{simMu})
		var total float64
		for i := 0; i < years && !step.Last(); i++ {
			step, _, err = d.Step(action)
			if err != nil {
				logrus.Fatalf("could not step environment: %v", err)
			}
			total += step.Reward

			diag := d.Diagnostics()
			if i%simEvery != 0 && i != years-1 && !step.Last() {
				continue
			}
			obs := step.Observation
			fmt.Fprintf(w, "%.0f\t%.3f\t%.2f\t%.1f\t%.3f\t%.3f\t%.3f\t%.3f"+
				"\t%.4f\t%.4f\t%.3f\t\n", diag.Year, diag.Abatement,
				obs.AtVec(dice.Capital), obs.AtVec(dice.AtmosphericCarbon),
				obs.AtVec(dice.AtmosphericTemp), obs.AtVec(dice.LowerOceanTemp),
				diag.Emissions, diag.Consumption, diag.DamageFactor,
				diag.AbatementCost, diag.Reward)
		}
		w.Flush()

		fmt.Printf("total discounted utility: %.6f (%v)\n", total,
			step.EndType)
	},
}

func init() {
	f := simulateCmd.Flags()
	f.Float64Var(&simMu, "mu", 0.0, "Constant abatement rate in [0, 1]")
	f.IntVar(&simYears, "years", 0,
		"Number of years to simulate (default the horizon)")
	f.IntVar(&simEvery, "every", 10, "Print every n years")

	rootCmd.AddCommand(simulateCmd)
}
