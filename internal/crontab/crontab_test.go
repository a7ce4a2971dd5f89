package crontab

import (
	"errors"
	"testing"
	"time"

	robfigcron "github.com/robfig/cron/v3"
)

func utc(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

// ─── Parse ─────────────────────────────────────────────────────────────────

func TestParse_Valid(t *testing.T) {
	for _, expr := range []string{
		"* * * * *",
		"0 9 * * 1-5",
		"*/15 0-6/2 1,15,31 JAN-jun sun",
		"0 0 * * 7",
		"0 0 * * 7/1",
		"10/5 * * * *",
		"H H(0-5) * * H/2",
		"  0   12   *  *  *  ",
		"@daily",
		"@HOURLY",
	} {
		if _, err := Parse(expr); err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", expr, err)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		expr       string
		fieldIndex int
	}{
		{"* * * *", -1},
		{"* * * * * *", -1},
		{"", -1},
		{"@fortnightly", -1},
		{"60 * * * *", fieldMinute},
		{"* 24 * * *", fieldHour},
		{"* * 0 * *", fieldDayOfMonth},
		{"* * 32 * *", fieldDayOfMonth},
		{"* * * 13 *", fieldMonth},
		{"* * * * 8", fieldDayOfWeek},
		{"5-1 * * * *", fieldMinute},
		{"*/0 * * * *", fieldMinute},
		{"a * * * *", fieldMinute},
		{"1,,2 * * * *", fieldMinute},
		{"* H(3) * * *", fieldHour},
		{"* H(0-3 * * *", fieldHour},
		{"* * * FOO *", fieldMonth},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Parse(tt.expr)
			if err == nil {
				t.Fatal("expected error")
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if pe.FieldIndex != tt.fieldIndex {
				t.Errorf("FieldIndex = %d, want %d (%v)", pe.FieldIndex, tt.fieldIndex, err)
			}
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	a := MustParse("*/10 8-18 * * MON-FRI")
	b := MustParse("*/10 8-18 * * MON-FRI")
	if *a != *b {
		t.Errorf("two parses of the same text differ: %+v vs %+v", a, b)
	}
	if a.String() != "*/10 8-18 * * MON-FRI" {
		t.Errorf("String() = %q", a.String())
	}
}

func TestParse_SundayAliases(t *testing.T) {
	seven := MustParse("0 0 * * 7")
	zero := MustParse("0 0 * * 0")
	if seven.daysOfWeek != zero.daysOfWeek {
		t.Errorf("7 and 0 should both mean Sunday: %b vs %b", seven.daysOfWeek, zero.daysOfWeek)
	}
	wrap := MustParse("0 0 * * 5-7")
	for _, d := range []int{5, 6, 0} {
		if !wrap.daysOfWeek.has(d) {
			t.Errorf("5-7 should include %d", d)
		}
	}
	if wrap.daysOfWeek.has(7) {
		t.Error("7 must be folded onto 0")
	}
}

func TestParse_SundaySevenWithStep(t *testing.T) {
	every := MustParse("0 0 * * 7/1")
	if every.daysOfWeek != MustParse("0 0 * * 0/1").daysOfWeek {
		t.Errorf("7/1 should step from Sunday: %b", every.daysOfWeek)
	}
	alt := MustParse("0 0 * * 7/2")
	for d := 0; d <= 6; d++ {
		if want := d%2 == 0; alt.daysOfWeek.has(d) != want {
			t.Errorf("7/2: day %d present = %v, want %v", d, !want, want)
		}
	}
	if _, err := Parse("0 0 * * 8/1"); err == nil {
		t.Error("8/1 should still be out of range")
	}
}

func TestParse_Hash(t *testing.T) {
	a, err := ParseHashed("H * * * *", "nightly-build")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseHashed("H * * * *", "nightly-build")
	if err != nil {
		t.Fatal(err)
	}
	if a.minutes != b.minutes {
		t.Error("same seed must give the same minute")
	}

	unseeded := MustParse("H H(2-4) * * *")
	if !unseeded.minutes.has(0) || !unseeded.hours.has(2) {
		t.Errorf("unseeded H should resolve to range start, got minutes=%b hours=%b", unseeded.minutes, unseeded.hours)
	}

	stepped, err := ParseHashed("H/15 * * * *", "x")
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for m := 0; m < 60; m++ {
		if stepped.minutes.has(m) {
			count++
		}
	}
	if count != 4 {
		t.Errorf("H/15 should select 4 minutes, got %d", count)
	}
}

// ─── Matches ───────────────────────────────────────────────────────────────

func TestMatches_DayOrQuirk(t *testing.T) {
	c := MustParse("0 0 1 * 1")
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"first and monday", utc(2024, 1, 1, 0, 0), true},
		{"monday not first", utc(2024, 1, 8, 0, 0), true},
		{"first not monday", utc(2024, 2, 1, 0, 0), true},
		{"neither", utc(2024, 1, 9, 0, 0), false},
		{"wrong hour", utc(2024, 1, 8, 1, 0), false},
	}
	for _, tt := range tests {
		if got := c.Matches(tt.at); got != tt.want {
			t.Errorf("%s: Matches(%s) = %v, want %v", tt.name, tt.at, got, tt.want)
		}
	}
}

func TestMatches_DayAndWhenOneIsStar(t *testing.T) {
	onlyDow := MustParse("0 0 * * 1")
	if onlyDow.Matches(utc(2024, 2, 1, 0, 0)) {
		t.Error("dom=* dow=1 must not match a Thursday")
	}
	onlyDom := MustParse("0 0 1 * *")
	if onlyDom.Matches(utc(2024, 1, 8, 0, 0)) {
		t.Error("dom=1 dow=* must not match the 8th")
	}
	// A stepped wildcard is a restriction, so the OR rule applies.
	stepped := MustParse("0 0 */2 * 1")
	if !stepped.Matches(utc(2024, 1, 8, 0, 0)) {
		t.Error("*/2 dom with dow=1 should match Monday the 8th")
	}
}

func TestMatches_IgnoresSeconds(t *testing.T) {
	c := MustParse("30 12 * * *")
	if !c.Matches(time.Date(2024, 5, 5, 12, 30, 59, 999, time.UTC)) {
		t.Error("seconds should not affect Matches")
	}
}

// ─── Ceiling ───────────────────────────────────────────────────────────────

func TestCeiling(t *testing.T) {
	tests := []struct {
		name string
		expr string
		from time.Time
		want time.Time
	}{
		{"inclusive", "0 9 * * *", utc(2024, 1, 1, 9, 0), utc(2024, 1, 1, 9, 0)},
		{"later today", "0 9 * * *", utc(2024, 1, 1, 8, 1), utc(2024, 1, 1, 9, 0)},
		{"tomorrow", "0 9 * * *", utc(2024, 1, 1, 9, 1), utc(2024, 1, 2, 9, 0)},
		{"minute carry", "45 * * * *", utc(2024, 1, 1, 23, 50), utc(2024, 1, 2, 0, 45)},
		{"year carry", "0 0 1 1 *", utc(2024, 6, 1, 0, 0), utc(2025, 1, 1, 0, 0)},
		{"leap day", "0 0 29 2 *", utc(2025, 3, 1, 0, 0), utc(2028, 2, 29, 0, 0)},
		{"weekday skip", "0 9 * * 1-5", utc(2024, 1, 6, 10, 0), utc(2024, 1, 8, 9, 0)},
		{"or quirk", "0 0 1 * 1", utc(2024, 1, 2, 0, 0), utc(2024, 1, 8, 0, 0)},
		{"thirty first", "0 0 31 * *", utc(2024, 4, 1, 0, 0), utc(2024, 5, 31, 0, 0)},
		{"every minute", "* * * * *", utc(2024, 1, 1, 0, 0), utc(2024, 1, 1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MustParse(tt.expr).Ceiling(tt.from)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Ceiling(%s) = %s, want %s", tt.from, got, tt.want)
			}
		})
	}
}

func TestCeiling_RoundsSecondsUp(t *testing.T) {
	c := MustParse("* * * * *")
	from := time.Date(2024, 1, 1, 10, 0, 30, 0, time.UTC)
	got, err := c.Ceiling(from)
	if err != nil {
		t.Fatal(err)
	}
	if got.Before(from) {
		t.Fatalf("Ceiling returned %s, before %s", got, from)
	}
	if !got.Equal(utc(2024, 1, 1, 10, 1)) {
		t.Errorf("got %s, want 10:01", got)
	}
}

func TestCeiling_NoMatch(t *testing.T) {
	c := MustParse("* * 31 2 *")
	for _, from := range []time.Time{utc(2024, 1, 1, 0, 0), utc(1999, 12, 31, 23, 59), utc(2030, 2, 28, 12, 0)} {
		_, err := c.Ceiling(from)
		if err == nil {
			t.Fatalf("expected NoMatchError from %s", from)
		}
		if !IsNoMatch(err) {
			t.Errorf("expected *NoMatchError, got %T: %v", err, err)
		}
	}
}

func TestCeiling_NeverBeforeInput(t *testing.T) {
	exprs := []string{"*/7 * * * *", "0 9 * * 1-5", "0 0 1 * 1", "59 23 31 12 *", "H H * * *"}
	from := time.Date(2024, 1, 1, 0, 0, 17, 0, time.UTC)
	for _, expr := range exprs {
		c, err := ParseHashed(expr, "seed")
		if err != nil {
			t.Fatal(err)
		}
		cur := from
		for i := 0; i < 50; i++ {
			got, err := c.Ceiling(cur)
			if err != nil {
				t.Fatalf("%s: %v", expr, err)
			}
			if got.Before(cur) {
				t.Fatalf("%s: Ceiling(%s) = %s is earlier", expr, cur, got)
			}
			if !c.Matches(got) {
				t.Fatalf("%s: Ceiling result %s does not match", expr, got)
			}
			next, err := c.Ceiling(got.Add(time.Minute))
			if err != nil {
				t.Fatalf("%s: %v", expr, err)
			}
			if !next.After(got) {
				t.Fatalf("%s: advancing by a minute did not move past %s", expr, got)
			}
			cur = next.Add(time.Minute)
		}
	}
}

func TestCeiling_KeepsLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Stockholm")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	c := MustParse("0 9 * * *")
	got, err := c.Ceiling(time.Date(2024, 3, 30, 10, 0, 0, 0, loc))
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 3, 31, 9, 0, 0, 0, loc)
	if !got.Equal(want) || got.Location() != loc {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestCeiling_DaylightSavingFallBack(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	c := MustParse("30 * * * *")
	cur := time.Date(2024, 11, 3, 0, 0, 0, 0, loc)
	var prev time.Time
	for i := 0; i < 6; i++ {
		got, err := c.Ceiling(cur)
		if err != nil {
			t.Fatal(err)
		}
		if !prev.IsZero() && !got.After(prev) {
			t.Fatalf("sequence went backwards: %s then %s", prev, got)
		}
		prev = got
		cur = got.Add(time.Minute)
	}
}

// ─── Oracle ────────────────────────────────────────────────────────────────

// TestCeiling_AgreesWithRobfig cross-checks standard syntax against
// robfig/cron, whose Next is strictly-after with the same day-matching rule.
func TestCeiling_AgreesWithRobfig(t *testing.T) {
	parser := robfigcron.NewParser(robfigcron.Minute | robfigcron.Hour | robfigcron.Dom | robfigcron.Month | robfigcron.Dow)
	exprs := []string{
		"*/7 * * * *",
		"0 9 * * 1-5",
		"15 14 1 * *",
		"0 0 1 * 1",
		"30 2 */3 * 0,6",
		"5,35 */4 10-20 JAN-MAR *",
		"0 12 29 2 *",
		"0 0 13 * 5",
		"20/10 3 * * *",
	}
	starts := []time.Time{
		utc(2024, 1, 1, 0, 0),
		utc(2024, 2, 28, 23, 59),
		utc(2025, 12, 31, 23, 30),
		utc(2026, 7, 15, 12, 1),
	}
	for _, expr := range exprs {
		ours := MustParse(expr)
		theirs, err := parser.Parse(expr)
		if err != nil {
			t.Fatalf("robfig Parse(%q): %v", expr, err)
		}
		for _, start := range starts {
			cur := start
			for i := 0; i < 10; i++ {
				got, err := ours.Ceiling(cur)
				if err != nil {
					t.Fatalf("%s from %s: %v", expr, cur, err)
				}
				want := theirs.Next(cur.Add(-time.Second))
				if !got.Equal(want) {
					t.Fatalf("%s from %s: got %s, robfig %s", expr, cur, got, want)
				}
				cur = got.Add(time.Minute)
			}
		}
	}
}
