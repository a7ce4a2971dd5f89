package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/scheduledisplay/internal/jobstore"
	"github.com/crystaldolphin/scheduledisplay/internal/recurrence"
	"github.com/crystaldolphin/scheduledisplay/internal/shared/stringutils"
)

var jobsFile string

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage the jobs file",
}

func init() {
	jobsCmd.PersistentFlags().StringVar(&jobsFile, "jobs", "", "Jobs file (default from config)")

	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsAddCmd)
	jobsCmd.AddCommand(jobsRemoveCmd)
	jobsCmd.AddCommand(jobsEnableCmd)
	jobsCmd.AddCommand(jobsQueueCmd)
}

// openStore loads the jobs file selected by --jobs or the config. It also
// returns the display zone and date layout.
func openStore() (*jobstore.Store, *time.Location, string, error) {
	c, err := buildContainer()
	if err != nil {
		return nil, nil, "", err
	}
	loc, err := c.Config().Display.Location()
	if err != nil {
		return nil, nil, "", err
	}
	store := c.JobStore()
	if jobsFile != "" {
		store = jobstore.New(expandPath(jobsFile))
	}
	if err := store.Load(); err != nil {
		return nil, nil, "", err
	}
	return store, loc, c.Config().Display.Layout(), nil
}

// nextRunText formats the next run of rec at or after now in now's zone. It
// is empty for disabled jobs and schedules that never match.
func nextRunText(rec jobstore.JobRecord, now time.Time, layout string) string {
	if !rec.IsEnabled() {
		return ""
	}
	set, _ := recurrence.Lenient(rec.Schedule, rec.ID)
	at, ok := set.Ceiling(now)
	if !ok {
		return ""
	}
	return at.In(now.Location()).Format(layout)
}

// ---- list ------------------------------------------------------------------

var (
	jobsListAll  bool
	jobsListView string
)

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs",
	RunE: func(_ *cobra.Command, _ []string) error {
		store, loc, layout, err := openStore()
		if err != nil {
			return err
		}
		var recs []jobstore.JobRecord
		for _, r := range store.Records() {
			if (jobsListAll || r.IsEnabled()) && r.InView(jobsListView) {
				recs = append(recs, r)
			}
		}
		if len(recs) == 0 {
			fmt.Println("No jobs.")
			return nil
		}

		now := time.Now().In(loc)
		fmt.Printf("%-12s %-22s %-25s %-10s %-20s\n", "ID", "Name", "Schedule", "Status", "Next Run")
		fmt.Println(strings.Repeat("-", 92))
		for _, r := range recs {
			status := "enabled"
			if !r.IsEnabled() {
				status = "disabled"
			}
			name := r.Name
			if name == "" {
				name = r.ID
			}
			fmt.Printf("%-12s %-22s %-25s %-10s %-20s\n",
				stringutils.Truncate(r.ID, 12), stringutils.Truncate(name, 21),
				stringutils.Truncate(firstLine(r.Schedule), 24), status, nextRunText(r, now, layout))
		}
		return nil
	},
}

func init() {
	jobsListCmd.Flags().BoolVarP(&jobsListAll, "all", "a", false, "Include disabled jobs")
	jobsListCmd.Flags().StringVar(&jobsListView, "view", "", "Only jobs tagged with this view")
}

// ---- add -------------------------------------------------------------------

var (
	jobsAddID       string
	jobsAddName     string
	jobsAddSchedule []string
	jobsAddLabel    string
	jobsAddURL      string
	jobsAddViews    []string
	jobsAddDisabled bool
)

var jobsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a job",
	Example: `  scheduledisplay jobs add --id nightly --name "Nightly build" --schedule "H 2 * * 1-5"
  scheduledisplay jobs add --id sync --schedule "TZ=Asia/Tokyo" --schedule "0 9 * * *"`,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, _, _, err := openStore()
		if err != nil {
			return err
		}
		rec := jobstore.JobRecord{
			ID:       jobsAddID,
			Name:     jobsAddName,
			Schedule: strings.Join(jobsAddSchedule, "\n"),
			Label:    jobsAddLabel,
			URL:      jobsAddURL,
			Views:    jobsAddViews,
		}
		if jobsAddDisabled {
			enabled := false
			rec.Enabled = &enabled
		}
		rec, err = store.Add(rec)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Added job '%s' (%s)\n", rec.Name, rec.ID)
		return nil
	},
}

func init() {
	jobsAddCmd.Flags().StringVar(&jobsAddID, "id", "", "Job id (generated when empty)")
	jobsAddCmd.Flags().StringVarP(&jobsAddName, "name", "n", "", "Display name")
	jobsAddCmd.Flags().StringArrayVarP(&jobsAddSchedule, "schedule", "s", nil, "Schedule line (repeatable)")
	jobsAddCmd.Flags().StringVarP(&jobsAddLabel, "label", "l", "", "Target node label")
	jobsAddCmd.Flags().StringVar(&jobsAddURL, "url", "", "Job URL")
	jobsAddCmd.Flags().StringSliceVar(&jobsAddViews, "view", nil, "View tags")
	jobsAddCmd.Flags().BoolVar(&jobsAddDisabled, "disabled", false, "Add the job disabled")

	_ = jobsAddCmd.MarkFlagRequired("schedule")
}

// ---- remove ----------------------------------------------------------------

var jobsRemoveCmd = &cobra.Command{
	Use:   "remove <job-id>",
	Short: "Remove a job and its queued builds",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		store, _, _, err := openStore()
		if err != nil {
			return err
		}
		found, err := store.Remove(args[0])
		if err != nil {
			return err
		}
		if found {
			fmt.Printf("✓ Removed job %s\n", args[0])
		} else {
			fmt.Printf("Job %s not found\n", args[0])
		}
		return nil
	},
}

// ---- enable ----------------------------------------------------------------

var jobsEnableDisable bool

var jobsEnableCmd = &cobra.Command{
	Use:   "enable <job-id>",
	Short: "Enable (or disable) a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		store, _, _, err := openStore()
		if err != nil {
			return err
		}
		rec, err := store.Enable(args[0], !jobsEnableDisable)
		if err != nil {
			return err
		}
		action := "enabled"
		if jobsEnableDisable {
			action = "disabled"
		}
		fmt.Printf("✓ Job '%s' %s\n", rec.ID, action)
		return nil
	},
}

func init() {
	jobsEnableCmd.Flags().BoolVar(&jobsEnableDisable, "disable", false, "Disable instead of enable")
}

// ---- queue -----------------------------------------------------------------

var (
	jobsQueueAt     string
	jobsQueueParams []string
	jobsQueueClear  bool
)

var jobsQueueCmd = &cobra.Command{
	Use:   "queue <job-id>",
	Short: "Queue a build, or clear queued builds with --clear",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		store, loc, _, err := openStore()
		if err != nil {
			return err
		}
		id := ""
		if len(args) == 1 {
			id = args[0]
		}

		if jobsQueueClear {
			n, err := store.ClearQueue(id)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Cleared %d queued build(s)\n", n)
			return nil
		}
		if id == "" {
			return fmt.Errorf("a job id is required unless --clear is given")
		}

		at, err := parseFrom(jobsQueueAt, loc)
		if err != nil {
			return err
		}
		if err := store.Enqueue(id, at, strings.Join(jobsQueueParams, "\n")); err != nil {
			return err
		}
		fmt.Printf("✓ Queued %s for %s\n", id, at.Format(time.RFC3339))
		return nil
	},
}

func init() {
	jobsQueueCmd.Flags().StringVar(&jobsQueueAt, "at", "", "When the build is due (default now)")
	jobsQueueCmd.Flags().StringArrayVarP(&jobsQueueParams, "param", "p", nil, "NAME=value parameter (repeatable)")
	jobsQueueCmd.Flags().BoolVar(&jobsQueueClear, "clear", false, "Remove queued builds instead")
}
