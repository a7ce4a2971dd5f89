// Package cmd implements the scheduledisplay CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/scheduledisplay/internal/config"
	"github.com/crystaldolphin/scheduledisplay/internal/dependency"
)

const version = "0.1.0"
const logo = "📅"

var (
	configPath string
	verbose    bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:           "scheduledisplay",
	Short:         logo + " scheduledisplay — upcoming builds from cron schedules",
	Long:          logo + " scheduledisplay — lists the upcoming executions of cron-scheduled jobs together with the builds already queued",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.scheduledisplay/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// loadConfig reads the config selected by --config and applies --verbose.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// buildContainer loads the config and wires the services.
func buildContainer() (*dependency.Container, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	c, err := dependency.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire services: %w", err)
	}
	return c, nil
}
