package schedule

import (
	"testing"
	"time"
)

func TestRowStyleHint_Stripe(t *testing.T) {
	tests := []struct {
		hint RowStyleHint
		want Stripe
	}{
		{RowStyleHint{Position: 0}, StripeEven},
		{RowStyleHint{Position: 1}, StripeOdd},
		{RowStyleHint{Position: 2}, StripeEven},
		{RowStyleHint{Position: 1, Weekend: true}, StripeWeekend},
	}
	for _, tt := range tests {
		if got := tt.hint.Stripe(); got != tt.want {
			t.Errorf("%+v: Stripe() = %s, want %s", tt.hint, got, tt.want)
		}
	}
}

func TestRows_WeekdayInDisplayLocation(t *testing.T) {
	// Saturday 23:30 UTC is already Sunday in UTC+1.
	at := time.Date(2024, 1, 6, 23, 30, 0, 0, time.UTC)
	plus1 := time.FixedZone("UTC+1", 3600)
	occs := []Occurrence{{At: at}, {At: at.In(plus1)}}

	rows := Rows(occs, []time.Weekday{time.Sunday}, time.UTC)
	for i, r := range rows {
		if r.At.Location() != time.UTC {
			t.Errorf("row %d: location = %s, want UTC", i, r.At.Location())
		}
		if r.Style.Weekday != time.Saturday || r.Style.Weekend {
			t.Errorf("row %d: %+v", i, r.Style)
		}
	}

	rows = Rows(occs, []time.Weekday{time.Sunday}, plus1)
	for i, r := range rows {
		if r.Style.Weekday != time.Sunday || !r.Style.Weekend {
			t.Errorf("row %d in UTC+1: %+v", i, r.Style)
		}
	}
}

func TestRows_NilLocationKeepsOwnZone(t *testing.T) {
	at := time.Date(2024, 1, 6, 23, 30, 0, 0, time.UTC)
	plus1 := time.FixedZone("UTC+1", 3600)
	rows := Rows([]Occurrence{{At: at}, {At: at.In(plus1)}}, []time.Weekday{time.Sunday}, nil)
	if rows[0].Style.Weekday != time.Saturday || rows[1].Style.Weekday != time.Sunday {
		t.Errorf("weekdays = %s, %s", rows[0].Style.Weekday, rows[1].Style.Weekday)
	}
}

func TestRows_CustomWeekend(t *testing.T) {
	rows := Rows([]Occurrence{{At: utc(2024, 1, 6, 0, 0)}}, []time.Weekday{time.Saturday, time.Sunday}, time.UTC)
	if !rows[0].Style.Weekend {
		t.Error("Saturday should be a weekend day")
	}
}
