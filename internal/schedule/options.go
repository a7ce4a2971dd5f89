package schedule

import "time"

const (
	DefaultMaxCount = 100
	DefaultMaxDays  = 7
	MaxDaysLimit    = 366
	DefaultLeadTime = time.Minute
)

// Options bounds one planning query.
type Options struct {
	// Now is the lower bound of the query. Jobs without a TZ= line are
	// evaluated in Now's location.
	Now time.Time
	// MaxCount caps the calculated occurrences per job.
	MaxCount int
	// MaxDays sets the horizon at Now + MaxDays days.
	MaxDays int
	// LeadTime hides queue entries starting within this long after Now.
	LeadTime time.Duration
	// WeekendDays are highlighted by RowStyleHint. Defaults to Sunday.
	WeekendDays []time.Weekday
}

// ClampMaxCount maps an unset count to the default and anything else to at
// least one.
func ClampMaxCount(n int) int {
	switch {
	case n == 0:
		return DefaultMaxCount
	case n < 1:
		return 1
	default:
		return n
	}
}

// ClampMaxDays maps an unset day count to the default and anything else into
// 1..366.
func ClampMaxDays(n int) int {
	switch {
	case n == 0:
		return DefaultMaxDays
	case n < 1:
		return 1
	case n > MaxDaysLimit:
		return MaxDaysLimit
	default:
		return n
	}
}

// Horizon is the exclusive upper bound for calculated occurrences.
func (o Options) Horizon() time.Time {
	return o.Now.Add(time.Duration(ClampMaxDays(o.MaxDays)) * 24 * time.Hour)
}

func (o Options) withDefaults() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	o.MaxCount = ClampMaxCount(o.MaxCount)
	o.MaxDays = ClampMaxDays(o.MaxDays)
	if o.LeadTime < 0 {
		o.LeadTime = 0
	}
	if o.WeekendDays == nil {
		o.WeekendDays = []time.Weekday{time.Sunday}
	}
	return o
}
