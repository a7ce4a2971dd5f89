package crontab

import (
	"strconv"
	"strings"
	"time"
)

const (
	// searchYears bounds how far Ceiling looks ahead. Eight years covers two
	// full leap cycles, so a leap-day-only expression is still found.
	searchYears = 8
	// maxSteps is a backstop on the number of carry-forward steps.
	maxSteps = 10000
)

var macros = map[string]string{
	"@yearly":   "H H H H *",
	"@annually": "H H H H *",
	"@monthly":  "H H H * *",
	"@weekly":   "H H * * H",
	"@daily":    "H H * * *",
	"@midnight": "H H(0-2) * * *",
	"@hourly":   "H * * * *",
}

// CronTab is an immutable parsed cron expression.
type CronTab struct {
	minutes     bitset
	hours       bitset
	daysOfMonth bitset
	months      bitset
	daysOfWeek  bitset
	domStar     bool
	dowStar     bool
	source      string
}

// Parse parses a five-field expression or macro. H tokens resolve to the
// start of their range.
func Parse(text string) (*CronTab, error) {
	return ParseHashed(text, "")
}

// ParseHashed parses text, resolving H tokens from seed (usually the job id).
func ParseHashed(text, seed string) (*CronTab, error) {
	source := strings.TrimSpace(text)
	expr := source
	if strings.HasPrefix(expr, "@") {
		expanded, ok := macros[strings.ToLower(expr)]
		if !ok {
			return nil, &ParseError{FieldIndex: -1, Reason: "unknown macro", Text: source}
		}
		expr = expanded
	}

	parts := strings.Fields(expr)
	if len(parts) != len(fieldSpecs) {
		return nil, &ParseError{
			FieldIndex: -1,
			Reason:     "expected 5 fields, got " + strconv.Itoa(len(parts)),
			Text:       source,
		}
	}

	p := newFieldParser(source, seed)
	var parsed [5]field
	for i, part := range parts {
		f, err := p.parseField(i, part)
		if err != nil {
			return nil, err
		}
		parsed[i] = f
	}

	return &CronTab{
		minutes:     parsed[fieldMinute].set,
		hours:       parsed[fieldHour].set,
		daysOfMonth: parsed[fieldDayOfMonth].set,
		months:      parsed[fieldMonth].set,
		daysOfWeek:  parsed[fieldDayOfWeek].set,
		domStar:     parsed[fieldDayOfMonth].star,
		dowStar:     parsed[fieldDayOfWeek].star,
		source:      source,
	}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) *CronTab {
	c, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the expression text the tab was parsed from.
func (c *CronTab) String() string { return c.source }

// Matches reports whether the minute containing t matches, evaluated in t's
// location. Seconds are ignored.
func (c *CronTab) Matches(t time.Time) bool {
	return c.months.has(int(t.Month())) &&
		c.dayMatches(t) &&
		c.hours.has(t.Hour()) &&
		c.minutes.has(t.Minute())
}

func (c *CronTab) dayMatches(t time.Time) bool {
	dom := c.daysOfMonth.has(t.Day())
	dow := c.daysOfWeek.has(int(t.Weekday()))
	if c.domStar || c.dowStar {
		return dom && dow
	}
	return dom || dow
}

// Ceiling returns the earliest matching minute at or after from. A from value
// that is not on a minute boundary is rounded up to the next minute first, so
// the result is never before from. It fails with *NoMatchError when nothing
// matches within eight years.
func (c *CronTab) Ceiling(from time.Time) (time.Time, error) {
	t := ceilMinute(from)
	loc := t.Location()
	limit := t.AddDate(searchYears, 0, 0)

	for step := 0; step < maxSteps; step++ {
		if !t.Before(limit) {
			return time.Time{}, &NoMatchError{Source: c.source, From: from}
		}

		if !c.months.has(int(t.Month())) {
			t = forward(t, time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, loc))
			continue
		}
		if !c.dayMatches(t) {
			t = forward(t, time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, loc))
			continue
		}
		if !c.hours.has(t.Hour()) {
			t = nextHour(t)
			continue
		}
		if !c.minutes.has(t.Minute()) {
			m, ok := c.minutes.next(t.Minute())
			if !ok {
				t = nextHour(t)
				continue
			}
			// Absolute arithmetic keeps us moving forward through a
			// repeated daylight-saving hour.
			t = t.Add(time.Duration(m-t.Minute()) * time.Minute)
			continue
		}
		return t, nil
	}

	return time.Time{}, &NoMatchError{Source: c.source, From: from, Err: ErrBoundsExceeded}
}

func ceilMinute(t time.Time) time.Time {
	r := t.Truncate(time.Minute)
	if r.Before(t) {
		r = r.Add(time.Minute)
	}
	return r
}

func nextHour(t time.Time) time.Time {
	return t.Add(time.Duration(60-t.Minute()) * time.Minute)
}

// forward returns next, unless a wall-clock normalisation around a zone
// transition failed to move past t.
func forward(t, next time.Time) time.Time {
	if next.After(t) {
		return next
	}
	return nextHour(t)
}
