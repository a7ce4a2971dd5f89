package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/scheduledisplay/internal/display"
	"github.com/crystaldolphin/scheduledisplay/internal/render"
)

var (
	scheduleJobs     string
	scheduleView     string
	scheduleFrom     string
	scheduleMaxCount int
	scheduleMaxDays  int
	scheduleJSON     bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "List upcoming builds",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleJobs, "jobs", "", "Jobs file (default from config)")
	scheduleCmd.Flags().StringVar(&scheduleView, "view", "", "Only jobs tagged with this view")
	scheduleCmd.Flags().StringVar(&scheduleFrom, "from", "", "Start time (default now)")
	scheduleCmd.Flags().IntVarP(&scheduleMaxCount, "max-count", "n", 0, "Builds per job (default from config)")
	scheduleCmd.Flags().IntVarP(&scheduleMaxDays, "max-days", "d", 0, "Days to look ahead (default from config)")
	scheduleCmd.Flags().BoolVar(&scheduleJSON, "json", false, "Print the JSON document")
}

func runSchedule(_ *cobra.Command, _ []string) error {
	c, err := buildContainer()
	if err != nil {
		return err
	}
	cfg := c.Config()

	loc, err := cfg.Display.Location()
	if err != nil {
		return err
	}
	from, err := parseFrom(scheduleFrom, loc)
	if err != nil {
		return err
	}

	svc := c.Display()
	if scheduleJobs != "" {
		svc = svc.WithJobsPath(expandPath(scheduleJobs))
	}
	doc, err := svc.Snapshot(display.Query{
		View:     scheduleView,
		Now:      from,
		MaxCount: scheduleMaxCount,
		MaxDays:  scheduleMaxDays,
	})
	if err != nil {
		return err
	}

	if scheduleJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal schedule: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(doc.Builds) == 0 {
		fmt.Println("No upcoming builds.")
		return nil
	}
	fmt.Println(render.Table(doc.Builds))
	return nil
}
