package cmd

import (
	"github.com/samuelfneumann/godice/optimizer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	optSettingsPath string // YAML optimizer configuration
	optOut          string // Output file of the result
	optConfig       = optimizer.DefaultConfig()
	optMethod       = string(optimizer.LBFGS)
)

// optimizeCmd searches for the optimal abatement schedule
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search directly for the abatement schedule maximizing welfare",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := optConfig
		cfg.Method = optimizer.Method(optMethod)
		if optSettingsPath != "" {
			var err error
			if cfg, err = optimizer.LoadConfig(optSettingsPath); err != nil {
				logrus.Fatalf("could not load optimizer config: %v", err)
			}
			overrideChanged(cmd, &cfg)
		}
		if cfg.CheckpointEvery > 0 && cfg.CheckpointPath == "" {
			cfg.CheckpointPath = optOut + ".ckpt"
		}

		// Schedules are evaluated from the calibrated initial state, so
		// they are optimized from it too
		config := loadEnvConfig()
		if config.StartNoise > 0 {
			logrus.Infof("ignoring start noise %v, optimizing from the "+
				"calibrated initial state", config.StartNoise)
			config.StartNoise = 0
		}
		task, err := config.CreateTask(seed)
		if err != nil {
			logrus.Fatalf("could not create task: %v", err)
		}

		ctx, stop := interruptible()
		defer stop()

		result, err := optimizer.FindOptimalPolicy(ctx, task, cfg)
		if err != nil {
			logrus.Fatalf("optimization failed: %v", err)
		}

		if err := result.Save(optOut); err != nil {
			logrus.Fatalf("could not save result: %v", err)
		}
		logrus.Infof("saved result to %v", optOut)

		years := result.Years(task.Params().Year0)
		for i, x := range result.X {
			logrus.Debugf("%v: μ = %.4f", years[i], x)
		}
	},
}

// overrideChanged sets the fields of cfg whose flags were explicitly
// set on the command line, so that flags take precedence over the
// settings file
func overrideChanged(cmd *cobra.Command, cfg *optimizer.Config) {
	flags := cmd.Flags()
	if flags.Changed("stepsize") {
		cfg.Stepsize = optConfig.Stepsize
	}
	if flags.Changed("max-iter") {
		cfg.MaxIterations = optConfig.MaxIterations
	}
	if flags.Changed("ftol") {
		cfg.FTol = optConfig.FTol
	}
	if flags.Changed("initial-guess") {
		cfg.InitialGuess = optConfig.InitialGuess
	}
	if flags.Changed("grid-points") {
		cfg.GridPoints = optConfig.GridPoints
	}
	if flags.Changed("checkpoint-every") {
		cfg.CheckpointEvery = optConfig.CheckpointEvery
	}
	if flags.Changed("checkpoint") {
		cfg.CheckpointPath = optConfig.CheckpointPath
	}
	if flags.Changed("checkpoint-naming") {
		cfg.CheckpointNaming = optConfig.CheckpointNaming
	}
	if flags.Changed("method") {
		cfg.Method = optimizer.Method(optMethod)
	}
}

func init() {
	f := optimizeCmd.Flags()
	f.StringVar(&optSettingsPath, "settings", "",
		"YAML optimizer configuration, overridden by explicitly set flags")
	f.StringVarP(&optOut, "out", "o", "results.bin",
		"File to save the result to")
	f.StringVar(&optMethod, "method", optMethod,
		"Method (LBFGS, BFGS, GradientDescent, NelderMead, Grid)")
	f.IntVar(&optConfig.Stepsize, "stepsize", optConfig.Stepsize,
		"Years each decision is held for, must divide the horizon")
	f.IntVar(&optConfig.MaxIterations, "max-iter", optConfig.MaxIterations,
		"Maximum number of iterations, 0 for no limit")
	f.Float64Var(&optConfig.FTol, "ftol", optConfig.FTol,
		"Absolute objective tolerance for convergence")
	f.Float64Var(&optConfig.InitialGuess, "initial-guess",
		optConfig.InitialGuess, "Initial abatement rate of every decision")
	f.IntVar(&optConfig.GridPoints, "grid-points", optConfig.GridPoints,
		"Points per decision and sweep of the Grid method")
	f.IntVar(&optConfig.CheckpointEvery, "checkpoint-every", 0,
		"Save the incumbent every n iterations, 0 to disable")
	f.StringVar(&optConfig.CheckpointPath, "checkpoint", "",
		"Checkpoint file (default <out>.ckpt)")
	f.StringVar((*string)(&optConfig.CheckpointNaming), "checkpoint-naming",
		string(optimizer.Overwrite),
		"Checkpoint naming (overwrite, enumerate, timestamp)")

	rootCmd.AddCommand(optimizeCmd)
}
