package schedule

import (
	"iter"
	"time"

	"github.com/crystaldolphin/scheduledisplay/internal/recurrence"
)

// Enumerate yields the occurrences of set starting at from, in order. It
// stops after maxCount values, at the first occurrence at or past horizon,
// or when the set has no further match. The sequence holds no state between
// iterations, so ranging over it twice gives the same values.
func Enumerate(set *recurrence.Set, from time.Time, maxCount int, horizon time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		bound := from
		for n := 0; n < maxCount; n++ {
			next, ok := set.Ceiling(bound)
			if !ok || !next.Before(horizon) {
				return
			}
			if !yield(next) {
				return
			}
			// Ceiling is inclusive; without the extra minute the same
			// instant would come back forever.
			bound = next.Add(time.Minute)
		}
	}
}

// JobOccurrences yields the calculated occurrences of job within opts. A
// disabled job yields nothing. order is the job's input position.
func JobOccurrences(job Job, order int, set *recurrence.Set, opts Options) iter.Seq[Occurrence] {
	opts = opts.withDefaults()
	return func(yield func(Occurrence) bool) {
		if !job.Enabled {
			return
		}
		for at := range Enumerate(set, opts.Now, opts.MaxCount, opts.Horizon()) {
			if !yield(calculated(job, order, at)) {
				return
			}
		}
	}
}
