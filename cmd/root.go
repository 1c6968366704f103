package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/samuelfneumann/godice/environment/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel      string // Log verbosity level
	envConfigPath string // YAML environment configuration
	seed          uint64 // Seed for random starting states and policies
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "godice",
	Short: "Policy optimization and evaluation on the DICE climate-economy model",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadEnvConfig returns the environment configuration at
// envConfigPath, or the default configuration if no path was given
func loadEnvConfig() envconfig.Config {
	if envConfigPath == "" {
		return envconfig.Default()
	}

	c, err := envconfig.Load(envConfigPath)
	if err != nil {
		logrus.Fatalf("could not load environment config: %v", err)
	}
	logrus.Infof("loaded environment config %v", envConfigPath)
	return c
}

// interruptible returns a context which is cancelled on an interrupt
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// init sets up CLI flags shared by all subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&envConfigPath, "config", "",
		"YAML environment configuration (default DICE-2007, 600 years)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 42,
		"Seed for random starting states and the random policy")
}
