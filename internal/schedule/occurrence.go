package schedule

import (
	"cmp"
	"time"
)

// DefaultParamsLabel is the parameter label of calculated occurrences.
const DefaultParamsLabel = "<default parameters>"

// Origin tells where an occurrence came from.
type Origin int

const (
	OriginCalculated Origin = iota
	OriginQueued
)

func (o Origin) String() string {
	switch o {
	case OriginCalculated:
		return "calculated"
	case OriginQueued:
		return "queued"
	default:
		return "unknown"
	}
}

// Occurrence is one upcoming execution of a job.
type Occurrence struct {
	JobID       string
	DisplayName string
	TargetLabel string
	URL         string
	At          time.Time
	Origin      Origin
	Params      string

	// order is the job's position in the input, used to break ties.
	order int
}

// Compare orders occurrences by instant, then by the job's input position,
// then calculated before queued.
func Compare(a, b Occurrence) int {
	if c := a.At.Compare(b.At); c != 0 {
		return c
	}
	if c := cmp.Compare(a.order, b.order); c != 0 {
		return c
	}
	return cmp.Compare(a.Origin, b.Origin)
}

func calculated(job Job, order int, at time.Time) Occurrence {
	return Occurrence{
		JobID:       job.ID,
		DisplayName: job.Name(),
		TargetLabel: job.TargetLabel,
		URL:         job.URL,
		At:          at,
		Origin:      OriginCalculated,
		Params:      DefaultParamsLabel,
		order:       order,
	}
}

func queued(job Job, order int, e QueueEntry) Occurrence {
	return Occurrence{
		JobID:       job.ID,
		DisplayName: job.Name(),
		TargetLabel: job.TargetLabel,
		URL:         job.URL,
		At:          e.QueuedAt,
		Origin:      OriginQueued,
		Params:      e.Params,
		order:       order,
	}
}
