// Package recurrence aggregates the cron lines of one job into a Set and
// answers ceiling queries over all of them.
//
// The text form is one expression per line. Blank lines and lines starting
// with # are ignored, and a leading TZ=<zone> line selects the location the
// expressions are evaluated in:
//
//	TZ=Europe/Stockholm
//	# weekdays at nine, plus a Sunday evening run
//	0 9 * * 1-5
//	0 18 * * 0
package recurrence

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/crystaldolphin/scheduledisplay/internal/crontab"
)

// LineError ties a parse failure to its one-based line number.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *LineError) Unwrap() error { return e.Err }

// Set is an immutable collection of cron tabs. The zero value and nil are
// both empty sets.
type Set struct {
	tabs []*crontab.CronTab
	loc  *time.Location
}

// New builds a set from already parsed tabs, evaluated in the caller's
// location.
func New(tabs ...*crontab.CronTab) *Set {
	return &Set{tabs: append([]*crontab.CronTab(nil), tabs...)}
}

// Parse parses text strictly: any bad line fails the whole set. The returned
// error joins one *LineError per bad line.
func Parse(text, seed string) (*Set, error) {
	s, errs := Lenient(text, seed)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return s, nil
}

// Lenient parses text, keeping every line that parses and returning the
// failures for the others. It always returns a usable set.
func Lenient(text, seed string) (*Set, []error) {
	s := &Set{}
	var errs []error
	seenExpr := false
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if zone, ok := strings.CutPrefix(line, "TZ="); ok {
			if seenExpr || s.loc != nil {
				errs = append(errs, &LineError{Line: i + 1, Err: errors.New("TZ= must come before any expression")})
				continue
			}
			loc, err := time.LoadLocation(strings.TrimSpace(zone))
			if err != nil {
				errs = append(errs, &LineError{Line: i + 1, Err: fmt.Errorf("load time zone: %w", err)})
				continue
			}
			s.loc = loc
			continue
		}
		seenExpr = true
		tab, err := crontab.ParseHashed(line, seed)
		if err != nil {
			errs = append(errs, &LineError{Line: i + 1, Err: err})
			continue
		}
		s.tabs = append(s.tabs, tab)
	}
	return s, errs
}

// Len returns the number of tabs in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tabs)
}

// Tabs returns a copy of the member tabs in declaration order.
func (s *Set) Tabs() []*crontab.CronTab {
	if s == nil {
		return nil
	}
	return append([]*crontab.CronTab(nil), s.tabs...)
}

// Location returns the zone set by a TZ= line, or nil.
func (s *Set) Location() *time.Location {
	if s == nil {
		return nil
	}
	return s.loc
}

// Ceiling returns the earliest instant at or after from matched by any member
// tab. ok is false when the set is empty or no member can ever match; a member
// that never matches does not hide the others.
func (s *Set) Ceiling(from time.Time) (next time.Time, ok bool) {
	if s.Len() == 0 {
		return time.Time{}, false
	}
	if s.loc != nil {
		from = from.In(s.loc)
	}
	for _, tab := range s.tabs {
		t, err := tab.Ceiling(from)
		if err != nil {
			if !crontab.IsNoMatch(err) || errors.Is(err, crontab.ErrBoundsExceeded) {
				slog.Warn("recurrence: ceiling search failed", "tab", tab.String(), "from", from, "err", err)
			}
			continue
		}
		if !ok || t.Before(next) {
			next, ok = t, true
		}
	}
	return next, ok
}
