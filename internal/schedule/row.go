package schedule

import (
	"slices"
	"time"
)

// Stripe is the styling class of a rendered row.
type Stripe int

const (
	StripeEven Stripe = iota
	StripeOdd
	StripeWeekend
)

func (s Stripe) String() string {
	switch s {
	case StripeEven:
		return "even"
	case StripeOdd:
		return "odd"
	case StripeWeekend:
		return "weekend"
	default:
		return "unknown"
	}
}

// RowStyleHint carries what a view needs to style a row; colours are the
// view's business.
type RowStyleHint struct {
	Position int
	Weekday  time.Weekday
	Weekend  bool
}

// Stripe returns StripeWeekend for weekend rows and alternates even/odd by
// position otherwise.
func (h RowStyleHint) Stripe() Stripe {
	switch {
	case h.Weekend:
		return StripeWeekend
	case h.Position%2 == 0:
		return StripeEven
	default:
		return StripeOdd
	}
}

// Row is an occurrence in its final display position.
type Row struct {
	Occurrence
	Style RowStyleHint
}

// Rows attaches style hints to an ordered list of occurrences. Each instant is
// moved into loc first, so dates, weekdays and the weekend flag all follow one
// calendar. A nil loc keeps every occurrence in its own location.
func Rows(occs []Occurrence, weekend []time.Weekday, loc *time.Location) []Row {
	rows := make([]Row, len(occs))
	for i, o := range occs {
		if loc != nil {
			o.At = o.At.In(loc)
		}
		wd := o.At.Weekday()
		rows[i] = Row{
			Occurrence: o,
			Style: RowStyleHint{
				Position: i,
				Weekday:  wd,
				Weekend:  slices.Contains(weekend, wd),
			},
		}
	}
	return rows
}
