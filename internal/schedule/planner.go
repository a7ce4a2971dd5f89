package schedule

import (
	"iter"
	"log/slog"

	"github.com/crystaldolphin/scheduledisplay/internal/recurrence"
)

// Planner turns job definitions and a queue snapshot into display rows. It
// keeps no per-query state and is safe for concurrent use.
type Planner struct {
	cache *recurrence.Cache
	log   *slog.Logger
}

// NewPlanner creates a Planner. A nil cache parses schedules on every query;
// a nil logger uses slog.Default().
func NewPlanner(cache *recurrence.Cache, log *slog.Logger) *Planner {
	if log == nil {
		log = slog.Default()
	}
	return &Planner{cache: cache, log: log}
}

// Plan returns the upcoming occurrences of jobs merged with the due queue
// entries, ordered and styled. Disabled jobs and their queue entries are left
// out, and a job whose schedule never matches simply contributes nothing.
func (p *Planner) Plan(jobs []Job, queue []QueueEntry, opts Options) []Row {
	opts = opts.withDefaults()

	index := make(map[string]int, len(jobs))
	sequences := make([]iter.Seq[Occurrence], 0, len(jobs))
	for i, job := range jobs {
		if _, dup := index[job.ID]; dup {
			p.log.Warn("schedule: duplicate job id, keeping the first", "job", job.ID)
			continue
		}
		index[job.ID] = i
		if !job.Enabled {
			p.log.Debug("schedule: skipping disabled job", "job", job.ID)
			continue
		}
		set := p.recurrence(job)
		if set.Len() == 0 {
			continue
		}
		sequences = append(sequences, JobOccurrences(job, i, set, opts))
	}

	var pending []Occurrence
	for _, e := range DueQueue(queue, opts.Now, opts.LeadTime) {
		i, ok := index[e.JobID]
		if !ok {
			p.log.Debug("schedule: queue entry for unknown job", "job", e.JobID)
			continue
		}
		if !jobs[i].Enabled {
			continue
		}
		pending = append(pending, queued(jobs[i], i, e))
	}

	rows := Rows(Merge(sequences, pending), opts.WeekendDays, opts.Now.Location())
	p.log.Debug("schedule: planned", "jobs", len(jobs), "queued", len(pending), "rows", len(rows))
	return rows
}

func (p *Planner) recurrence(job Job) *recurrence.Set {
	var (
		set  *recurrence.Set
		errs []error
	)
	if p.cache != nil {
		set, errs = p.cache.Get(job.ScheduleText(), job.ID)
	} else {
		set, errs = recurrence.Lenient(job.ScheduleText(), job.ID)
	}
	for _, err := range errs {
		p.log.Warn("schedule: ignoring bad schedule line", "job", job.ID, "err", err)
	}
	return set
}
