package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/scheduledisplay/internal/jobstore"
	"github.com/crystaldolphin/scheduledisplay/internal/recurrence"
)

var validateJobs string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every job schedule and the display settings",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateJobs, "jobs", "", "Jobs file (default from config)")
}

func runValidate(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	problems := 0
	for _, v := range cfg.Display.Check() {
		fmt.Printf("config: %s: %s\n", v.Level, v.Message)
		problems++
	}

	path := cfg.JobsPath()
	if validateJobs != "" {
		path = expandPath(validateJobs)
	}
	store := jobstore.New(path)
	if err := store.Load(); err != nil {
		return err
	}

	for _, rec := range store.Records() {
		set, err := recurrence.Parse(rec.Schedule, rec.ID)
		if err != nil {
			problems++
			for _, e := range unjoin(err) {
				fmt.Printf("%s: %v\n", rec.ID, e)
			}
			continue
		}
		fmt.Printf("%s: %s %s\n", rec.ID, mark(true), describeSet(set))
	}
	if _, errs := store.Queue(nil); len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("queue: %v\n", e)
		}
		problems += len(errs)
	}

	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	fmt.Printf("%s All schedules valid (%s)\n", mark(true), path)
	return nil
}

// unjoin splits an errors.Join result back into its parts.
func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
