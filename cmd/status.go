package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/scheduledisplay/internal/config"
	"github.com/crystaldolphin/scheduledisplay/internal/jobstore"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show scheduledisplay status",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}

	fmt.Printf("%s scheduledisplay Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	fmt.Printf("Config:    %s %s\n", cfgPath, mark(statErr == nil))

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	jobsPath := cfg.JobsPath()
	_, jobsErr := os.Stat(jobsPath)
	fmt.Printf("Jobs:      %s %s\n", jobsPath, mark(jobsErr == nil))

	d := cfg.Display
	zone := d.Timezone
	if zone == "" {
		zone = "local"
	}
	fmt.Printf("Display:   %d builds/job, %d days, lead %ds, zone %s, format %q\n",
		d.MaxCount, d.MaxDays, d.LeadTimeSeconds, zone, d.Layout())
	fmt.Printf("Server:    %s (refresh %s)\n\n", cfg.Server.Addr, cfg.Server.Refresh())

	for _, v := range d.Check() {
		fmt.Printf("  %s: %s\n", v.Level, v.Message)
	}

	store := jobstore.New(jobsPath)
	if err := store.Load(); err != nil {
		fmt.Printf("  (could not load jobs: %v)\n", err)
		return nil
	}
	recs := store.Records()
	enabled := 0
	for _, r := range recs {
		if r.IsEnabled() {
			enabled++
		}
	}
	queue, _ := store.Queue(nil)
	fmt.Printf("Count:     %d (%d enabled), %d queued\n", len(recs), enabled, len(queue))
	if views := store.Views(); len(views) > 0 {
		fmt.Printf("Views:     %v\n", views)
	}
	return nil
}
