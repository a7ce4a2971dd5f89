package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/scheduledisplay/internal/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize configuration and an example jobs file",
	RunE:  runOnboard,
}

const exampleJobs = `version: 1
jobs:
  - id: nightly
    name: Nightly build
    schedule: |
      # weekdays, hour spread by job id
      H 2 * * 1-5
    label: linux
    views: [main]
  - id: weekly-report
    name: Weekly report
    schedule: "@weekly"
    views: [main, reports]
  - id: tokyo-sync
    schedule: |
      TZ=Asia/Tokyo
      0 9 * * *
      30 17 * * 1-5
queue: []
`

func runOnboard(_ *cobra.Command, _ []string) error {
	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}

	var cfg *config.Config
	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Printf("Config already exists at %s\n", cfgPath)
		existing, loadErr := config.Load(cfgPath)
		if loadErr != nil {
			def := config.DefaultConfig()
			existing = &def
		}
		if err := config.Save(existing, cfgPath); err != nil {
			return err
		}
		cfg = existing
		fmt.Printf("✓ Config refreshed at %s\n", cfgPath)
	} else {
		def := config.DefaultConfig()
		if err := config.Save(&def, cfgPath); err != nil {
			return err
		}
		cfg = &def
		fmt.Printf("✓ Created config at %s\n", cfgPath)
	}

	jobsPath := cfg.JobsPath()
	if _, err := os.Stat(jobsPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(jobsPath), 0o755); err != nil {
			return fmt.Errorf("create jobs dir: %w", err)
		}
		if err := os.WriteFile(jobsPath, []byte(exampleJobs), 0o644); err != nil {
			return fmt.Errorf("write example jobs: %w", err)
		}
		fmt.Printf("✓ Created example jobs at %s\n", jobsPath)
	} else {
		fmt.Printf("✓ Jobs file at %s\n", jobsPath)
	}

	fmt.Printf("\n%s scheduledisplay is ready!\n\n", logo)
	fmt.Println("Next steps:")
	fmt.Printf("  1. Describe your jobs in %s\n", jobsPath)
	fmt.Println("  2. Check them:   scheduledisplay validate")
	fmt.Println("  3. List builds:  scheduledisplay schedule")
	return nil
}
