package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/samuelfneumann/godice/agent/actorcritic"
	"github.com/samuelfneumann/godice/environment/dice"
	"github.com/samuelfneumann/godice/initwfn"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	initJSON     string // JSON weight initializer
	actorHidden  []int  // Hidden layer sizes of the actor
	criticHidden []int  // Hidden layer sizes of the critic
)

// modelsCmd groups commands which manage actor and critic checkpoints
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Manage actor and critic checkpoints",
}

// modelsInitCmd writes untrained actor and critic checkpoints, e.g. to
// evaluate the harness itself or as a starting point for training
var modelsInitCmd = &cobra.Command{
	Use:   "init <episode>",
	Short: "Write freshly initialized actor and critic checkpoints",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var initFn initwfn.InitWFn
		if err := json.Unmarshal([]byte(initJSON), &initFn); err != nil {
			logrus.Fatalf("could not parse weight initializer: %v", err)
		}
		logrus.Infof("initializing weights with %v", &initFn)

		if err := os.MkdirAll(modelsDir, 0o755); err != nil {
			logrus.Fatalf("could not create models directory: %v", err)
		}

		actor, err := actorcritic.NewActor(dice.ObservationDims,
			dice.ActionDims, actorHidden, initFn.InitWFn())
		if err != nil {
			logrus.Fatalf("could not create actor: %v", err)
		}
		defer actor.Close()

		critic, err := actorcritic.NewCritic(dice.ObservationDims,
			dice.ActionDims, criticHidden, initFn.InitWFn())
		if err != nil {
			logrus.Fatalf("could not create critic: %v", err)
		}
		defer critic.Close()

		actorFile := filepath.Join(modelsDir, args[0]+"_actor.bin")
		criticFile := filepath.Join(modelsDir, args[0]+"_critic.bin")
		if err := actor.Save(actorFile); err != nil {
			logrus.Fatalf("could not save actor: %v", err)
		}
		if err := critic.Save(criticFile); err != nil {
			logrus.Fatalf("could not save critic: %v", err)
		}
		logrus.Infof("wrote %v and %v", actorFile, criticFile)
	},
}

func init() {
	f := modelsInitCmd.Flags()
	f.StringVar(&modelsDir, "models", "models",
		"Directory to write the checkpoints to")
	f.StringVar(&initJSON, "init", `{"Type": "GlorotU", "Config": {"Gain": 1}}`,
		"JSON weight initializer (GlorotU, GlorotN, HeU, HeN, Zeroes)")
	f.IntSliceVar(&actorHidden, "actor-hidden", []int{400, 300},
		"Hidden layer sizes of the actor")
	f.IntSliceVar(&criticHidden, "critic-hidden", []int{400, 300},
		"Hidden layer sizes of the critic")

	modelsCmd.AddCommand(modelsInitCmd)
	rootCmd.AddCommand(modelsCmd)
}
