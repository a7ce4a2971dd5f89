package schedule

import (
	"iter"
	"slices"
	"time"
)

// DueQueue returns the queue entries that start after now+lead. Entries
// closer than that are about to leave the queue and would otherwise be shown
// next to the occurrence that produced them.
func DueQueue(queue []QueueEntry, now time.Time, lead time.Duration) []QueueEntry {
	cutoff := now.Add(lead)
	var out []QueueEntry
	for _, e := range queue {
		if e.QueuedAt.After(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// Merge drains every sequence, adds the queued occurrences and returns the
// union ordered by Compare. Nothing is deduplicated.
func Merge(sequences []iter.Seq[Occurrence], queued []Occurrence) []Occurrence {
	out := make([]Occurrence, 0, len(queued))
	for _, seq := range sequences {
		for o := range seq {
			out = append(out, o)
		}
	}
	out = append(out, queued...)
	slices.SortStableFunc(out, Compare)
	return out
}
