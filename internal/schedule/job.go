// Package schedule computes the upcoming executions of a set of jobs: the
// calculated occurrences of each job's cron schedule merged with the builds
// already waiting in the queue, in chronological order.
package schedule

import (
	"strings"
	"time"
)

// Job is the scheduling view of one configured job.
type Job struct {
	ID          string
	DisplayName string
	Enabled     bool
	// Schedule holds the job's cron text. Entries may themselves contain
	// several lines; they are joined with newlines before parsing.
	Schedule    []string
	TargetLabel string
	URL         string
}

// ScheduleText returns the job's schedule as a single text block.
func (j Job) ScheduleText() string {
	return strings.Join(j.Schedule, "\n")
}

// Name returns the display name, falling back to the id.
func (j Job) Name() string {
	if j.DisplayName != "" {
		return j.DisplayName
	}
	return j.ID
}

// QueueEntry is a build waiting in the execution queue.
type QueueEntry struct {
	JobID    string
	QueuedAt time.Time
	Params   string
}
