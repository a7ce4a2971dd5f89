// Package render turns planned rows into what users see: a terminal table
// and the JSON document served by the feed.
package render

import (
	"time"

	"github.com/crystaldolphin/scheduledisplay/internal/schedule"
	"github.com/crystaldolphin/scheduledisplay/internal/shared/stringutils"
)

// Build is one row of the upcoming-builds document.
type Build struct {
	JobID       string    `json:"jobId"`
	Name        string    `json:"name"`
	ShortName   string    `json:"shortName"`
	URL         string    `json:"url,omitempty"`
	Date        string    `json:"date"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Label       string    `json:"label"`
	Params      string    `json:"params"`
	ParamsShort string    `json:"paramsShort"`
	Weekday     string    `json:"weekday"`
	Position    int       `json:"position"`
	Weekend     bool      `json:"weekend"`
	Stripe      string    `json:"stripe"`
	Origin      string    `json:"origin"`
}

// Document is the full upcoming-builds listing.
type Document struct {
	GeneratedAt time.Time `json:"generatedAt"`
	View        string    `json:"view,omitempty"`
	Builds      []Build   `json:"builds"`
}

// NewDocument formats rows with the Go time layout. Builds is never nil.
func NewDocument(rows []schedule.Row, layout, view string, generatedAt time.Time) Document {
	builds := make([]Build, len(rows))
	for i, r := range rows {
		builds[i] = NewBuild(r, layout)
	}
	return Document{GeneratedAt: generatedAt, View: view, Builds: builds}
}

// NewBuild formats a single row.
func NewBuild(r schedule.Row, layout string) Build {
	name := r.DisplayName
	if name == "" {
		name = r.JobID
	}
	short := r.Params
	if r.Origin == schedule.OriginQueued {
		short = stringutils.ParamsSummary(r.Params)
	}
	return Build{
		JobID:       r.JobID,
		Name:        name,
		ShortName:   stringutils.ShortName(name),
		URL:         r.URL,
		Date:        r.At.Format(layout),
		ScheduledAt: r.At,
		Label:       r.TargetLabel,
		Params:      r.Params,
		ParamsShort: short,
		Weekday:     r.Style.Weekday.String(),
		Position:    r.Style.Position,
		Weekend:     r.Style.Weekend,
		Stripe:      r.Style.Stripe().String(),
		Origin:      r.Origin.String(),
	}
}
