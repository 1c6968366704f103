package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samuelfneumann/godice/agent"
	"github.com/samuelfneumann/godice/agent/actorcritic"
	"github.com/samuelfneumann/godice/agent/random"
	"github.com/samuelfneumann/godice/agent/schedule"
	env "github.com/samuelfneumann/godice/environment"
	"github.com/samuelfneumann/godice/environment/dice"
	"github.com/samuelfneumann/godice/environment/wrappers"
	"github.com/samuelfneumann/godice/experiment"
	"github.com/samuelfneumann/godice/experiment/trackers"
	"github.com/samuelfneumann/godice/optimizer"
	ts "github.com/samuelfneumann/godice/timestep"
	"github.com/samuelfneumann/godice/utils/progressbar"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	modelsDir   string    // Directory of actor and critic checkpoints
	actorPath   string    // Actor checkpoint, overrides modelsDir
	criticPath  string    // Critic checkpoint, overrides modelsDir
	resultsPath string    // Optimizer result
	compareDP   bool      // Whether to compare against the optimizer result
	maxSteps    int       // Maximum steps per evaluation episode
	reportPath  string    // JSON report output
	dataDir     string    // Directory for tracked data
	normMean    []float64 // Observation normalization mean
	normStd     []float64 // Observation normalization standard deviation
)

// evaluateCmd compares a trained actor with the optimizer's schedule
// and a random policy
var evaluateCmd = &cobra.Command{
	Use:   "evaluate <episode>",
	Short: "Evaluate a trained actor against the optimized schedule and a random policy",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		episode := args[0]
		if actorPath == "" {
			actorPath = filepath.Join(modelsDir, episode+"_actor.bin")
		}
		if criticPath == "" {
			criticPath = filepath.Join(modelsDir, episode+"_critic.bin")
		}
		if dataDir != "" {
			if err := os.MkdirAll(dataDir, 0o755); err != nil {
				logrus.Fatalf("could not create data directory: %v", err)
			}
		}

		config := loadEnvConfig()
		ctx, stop := interruptible()
		defer stop()

		actor, err := actorcritic.LoadActor(actorPath)
		if err != nil {
			logrus.Fatalf("could not load actor: %v", err)
		}
		defer actor.Close()
		critic, err := actorcritic.LoadCritic(criticPath, dice.ActionDims)
		if err != nil {
			logrus.Fatalf("could not load critic: %v", err)
		}
		defer critic.Close()
		logrus.Infof("loaded actor %v and critic %v", actorPath, criticPath)

		// Trained policy, possibly on normalized observations
		raw, _, err := config.Create(seed)
		if err != nil {
			logrus.Fatalf("could not create environment: %v", err)
		}
		var policyEnv env.Environment = raw
		if len(normMean) > 0 || len(normStd) > 0 {
			policyEnv, _, err = wrappers.NewNormalize(raw, normMean, normStd)
			if err != nil {
				logrus.Fatalf("could not normalize environment: %v", err)
			}
		}
		policyTraj, err := evaluate(ctx, "trained", policyEnv, raw, actor,
			critic)
		if err != nil {
			logrus.Fatalf("could not evaluate trained policy: %v", err)
		}

		// Random baseline
		randomEnv, _, err := config.Create(seed)
		if err != nil {
			logrus.Fatalf("could not create environment: %v", err)
		}
		randomPolicy, err := random.New(randomEnv.ActionSpec(), seed)
		if err != nil {
			logrus.Fatalf("could not create random policy: %v", err)
		}
		randomTraj, err := evaluate(ctx, "random", randomEnv, randomEnv,
			randomPolicy, nil)
		if err != nil {
			logrus.Fatalf("could not evaluate random policy: %v", err)
		}

		// Optimizer schedule, only comparable on the horizon it was
		// optimized for
		var dpTraj *experiment.Trajectory
		if compareDP {
			dpTraj, err = evaluateResult(ctx, config.Horizon)
			if err != nil {
				logrus.Fatalf("could not evaluate optimizer result: %v", err)
			}
		}

		if dpTraj != nil && (dpTraj.Len() != policyTraj.Len() ||
			dpTraj.Len() != randomTraj.Len()) {
			logrus.Warnf("episodes ended after different numbers of steps "+
				"(trained %v, random %v, optimized %v), reward differences "+
				"only cover their common steps", policyTraj.Len(),
				randomTraj.Len(), dpTraj.Len())
		}

		report, err := experiment.Compare(policyTraj, randomTraj, dpTraj,
			dice.FeatureNames)
		if err != nil {
			logrus.Fatalf("could not compare policies: %v", err)
		}
		report.StartYear = config.Params.Year0
		fmt.Print(report)

		if reportPath != "" {
			if err := report.Save(reportPath); err != nil {
				logrus.Fatalf("could not save report: %v", err)
			}
			logrus.Infof("saved report %v to %v", report.ID, reportPath)
		}
	},
}

// evaluateResult rolls out the optimizer result at resultsPath with
// linear interpolation between decisions. A nil Trajectory is returned
// if the result was optimized for a different horizon.
func evaluateResult(ctx context.Context,
	horizon int) (*experiment.Trajectory, error) {
	result, err := optimizer.LoadResult(resultsPath)
	if err != nil {
		return nil, err
	}
	if result.Horizon != horizon {
		logrus.Warnf("result %v was optimized for %v years but the "+
			"environment runs for %v, skipping comparison", resultsPath,
			result.Horizon, horizon)
		return nil, nil
	}

	s, err := result.Schedule(schedule.Linear)
	if err != nil {
		return nil, err
	}

	// The schedule always starts in the calibrated initial state
	config := loadEnvConfig()
	config.StartNoise = 0
	dpEnv, _, err := config.Create(seed)
	if err != nil {
		return nil, err
	}

	traj, err := evaluate(ctx, "optimized", dpEnv, dpEnv, s, nil)
	if err != nil {
		return nil, err
	}
	return &traj, nil
}

// evaluate runs a single episode of p on e with a progress bar. If a
// data directory was given, the data of the episode is saved there, with
// states taken from the raw, unwrapped environment.
func evaluate(ctx context.Context, name string, e, raw env.Environment,
	p agent.Policy, c agent.Critic) (experiment.Trajectory, error) {
	eval, err := experiment.NewEvaluation(name, e, p, maxSteps)
	if err != nil {
		return experiment.Trajectory{}, err
	}
	if c != nil {
		eval.SetCritic(c)
	}

	if dataDir != "" {
		file := func(suffix string) string {
			return filepath.Join(dataDir, name+"_"+suffix+".bin")
		}
		eval.Register(trackers.NewReturn(file("return")))
		eval.Register(trackers.NewEpisodeLength(file("length")))
		eval.Register(trackers.NewRewards(file("rewards")))
		eval.Register(trackers.NewActions(file("actions")))
		eval.Register(trackers.Register(trackers.NewStates(file("states")),
			raw))
		if c != nil {
			eval.Register(trackers.NewQValues(file("q_values")))
		}
	}

	bar := progressbar.NewManualProgressBar(os.Stderr, name, 40, maxSteps)
	eval.OnStep = func(_ ts.TimeStep) {
		bar.Increment()
		bar.Display()
	}

	traj, err := eval.RunEpisode(ctx)
	bar.Finish()
	if err != nil {
		return experiment.Trajectory{}, err
	}

	if dataDir != "" {
		if err := eval.Save(); err != nil {
			return experiment.Trajectory{}, err
		}
	}
	logrus.Infof("%v policy: return %.6f over %v steps", name,
		traj.Return(), traj.Len())
	return traj, nil
}

func init() {
	f := evaluateCmd.Flags()
	f.StringVar(&modelsDir, "models", "models",
		"Directory containing <episode>_actor.bin and <episode>_critic.bin")
	f.StringVar(&actorPath, "actor", "", "Actor checkpoint, overrides --models")
	f.StringVar(&criticPath, "critic", "",
		"Critic checkpoint, overrides --models")
	f.StringVar(&resultsPath, "results", "results.bin",
		"Optimizer result to compare against")
	f.BoolVar(&compareDP, "dp", true,
		"Compare against the optimizer result")
	f.IntVar(&maxSteps, "max-steps", dice.DefaultHorizon,
		"Maximum number of steps per evaluation episode")
	f.StringVarP(&reportPath, "out", "o", "", "JSON report output file")
	f.StringVar(&dataDir, "data", "",
		"Directory to save the tracked data of each policy in")
	f.Float64SliceVar(&normMean, "norm-mean", nil,
		"Observation mean the actor was trained with")
	f.Float64SliceVar(&normStd, "norm-std", nil,
		"Observation standard deviation the actor was trained with")

	rootCmd.AddCommand(evaluateCmd)
}
