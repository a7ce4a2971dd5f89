package cmd

import (
	"fmt"
	"strings"
	"time"

	robfigcron "github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/crystaldolphin/scheduledisplay/internal/recurrence"
	"github.com/crystaldolphin/scheduledisplay/internal/schedule"
)

var (
	nextCount   int
	nextFrom    string
	nextSeed    string
	nextCompare bool
)

var nextCmd = &cobra.Command{
	Use:   "next <expression>",
	Short: "Print the next occurrences of a cron expression",
	Example: `  scheduledisplay next "H 2 * * 1-5" --seed nightly
  scheduledisplay next "*/15 9-17 * * *" -n 5 --compare`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNext,
}

func init() {
	nextCmd.Flags().IntVarP(&nextCount, "count", "n", 10, "Number of occurrences")
	nextCmd.Flags().StringVar(&nextFrom, "from", "", "Start time (default now)")
	nextCmd.Flags().StringVar(&nextSeed, "seed", "", "Job id used to resolve H tokens")
	nextCmd.Flags().BoolVar(&nextCompare, "compare", false, "Also print robfig/cron's answer")
}

func runNext(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loc, err := cfg.Display.Location()
	if err != nil {
		return err
	}
	from, err := parseFrom(nextFrom, loc)
	if err != nil {
		return err
	}

	expr := strings.Join(args, " ")
	set, err := recurrence.Parse(expr, nextSeed)
	if err != nil {
		return err
	}
	if set.Len() == 0 {
		return fmt.Errorf("no cron expression in %q", expr)
	}
	count := schedule.ClampMaxCount(nextCount)
	layout := cfg.Display.Layout()

	var others []time.Time
	if nextCompare {
		others, err = robfigNext(expr, from, count)
		if err != nil {
			fmt.Printf("robfig/cron cannot parse %q: %v\n\n", expr, err)
		}
	}

	if set.Location() != nil {
		fmt.Printf("%s, shown in %s\n\n", describeSet(set), loc)
	}

	horizon := from.AddDate(10, 0, 0)
	i := 0
	for at := range schedule.Enumerate(set, from, count, horizon) {
		at = at.In(loc)
		line := fmt.Sprintf("%3d  %s  %-9s", i+1, at.Format(layout), at.Weekday())
		if others != nil {
			switch {
			case i >= len(others):
				line += "  robfig: -"
			case others[i].Equal(at):
				line += "  robfig: ✓"
			default:
				line += "  robfig: " + others[i].Format(layout)
			}
		}
		fmt.Println(line)
		i++
	}
	if i == 0 {
		fmt.Println("No occurrences.")
	}
	return nil
}

// robfigNext enumerates expr with robfig/cron's standard five-field parser.
// robfig's Next is strictly after its argument, so the first query starts
// one second early to keep from inclusive.
func robfigNext(expr string, from time.Time, count int) ([]time.Time, error) {
	parser := robfigcron.NewParser(
		robfigcron.Minute | robfigcron.Hour | robfigcron.Dom | robfigcron.Month | robfigcron.Dow | robfigcron.Descriptor,
	)
	sched, err := parser.Parse(expr)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, count)
	cur := from.Add(-time.Second)
	for len(out) < count {
		next := sched.Next(cur)
		if next.IsZero() {
			break
		}
		out = append(out, next)
		cur = next
	}
	return out, nil
}
