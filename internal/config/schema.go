// Package config defines the configuration schema for scheduledisplay.
//
// The file lives at ~/.scheduledisplay/config.json and uses camelCase keys.
// Every knob has a default, so a missing or partial file is fine.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/crystaldolphin/scheduledisplay/internal/schedule"
)

// DefaultDateFormat is the Go layout used when display.dateFormat is empty.
const DefaultDateFormat = "2006-01-02 15:04"

// ---- Display ---------------------------------------------------------------

// DisplayConfig holds the knobs of the upcoming-builds list.
type DisplayConfig struct {
	DateFormat        string   `json:"dateFormat"`
	FilterCurrentView bool     `json:"filterCurrentView"`
	MaxCount          int      `json:"maxCount"`
	MaxDays           int      `json:"maxDays"`
	LeadTimeSeconds   int      `json:"leadTimeSeconds"`
	WeekendDays       []string `json:"weekendDays"`
	Timezone          string   `json:"timezone,omitempty"` // IANA zone, empty = local
}

func defaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		DateFormat:        DefaultDateFormat,
		FilterCurrentView: true,
		MaxCount:          schedule.DefaultMaxCount,
		MaxDays:           schedule.DefaultMaxDays,
		LeadTimeSeconds:   int(schedule.DefaultLeadTime / time.Second),
		WeekendDays:       []string{"Sunday"},
	}
}

// Layout returns the configured date layout or the default.
func (d DisplayConfig) Layout() string {
	if strings.TrimSpace(d.DateFormat) == "" {
		return DefaultDateFormat
	}
	return d.DateFormat
}

// Location resolves the configured time zone. Empty means time.Local.
func (d DisplayConfig) Location() (*time.Location, error) {
	if d.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", d.Timezone, err)
	}
	return loc, nil
}

// Weekend parses WeekendDays. Names are matched case-insensitively on their
// first three letters.
func (d DisplayConfig) Weekend() ([]time.Weekday, error) {
	out := make([]time.Weekday, 0, len(d.WeekendDays))
	for _, name := range d.WeekendDays {
		wd, ok := parseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		out = append(out, wd)
	}
	return out, nil
}

// Options builds the planning options for a query starting at now. now is
// moved into the configured location first.
func (d DisplayConfig) Options(now time.Time) (schedule.Options, error) {
	loc, err := d.Location()
	if err != nil {
		return schedule.Options{}, err
	}
	weekend, err := d.Weekend()
	if err != nil {
		return schedule.Options{}, err
	}
	lead := d.LeadTimeSeconds
	if lead < 0 {
		lead = 0
	}
	return schedule.Options{
		Now:         now.In(loc),
		MaxCount:    schedule.ClampMaxCount(d.MaxCount),
		MaxDays:     schedule.ClampMaxDays(d.MaxDays),
		LeadTime:    time.Duration(lead) * time.Second,
		WeekendDays: weekend,
	}, nil
}

func parseWeekday(name string) (time.Weekday, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if len(n) < 3 {
		return 0, false
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.HasPrefix(strings.ToLower(wd.String()), n[:3]) {
			return wd, true
		}
	}
	return 0, false
}

// ---- Jobs / server / logging -----------------------------------------------

// JobsConfig points at the jobs file (YAML or JSON).
type JobsConfig struct {
	Path string `json:"path"`
}

// ServerConfig holds the feed server settings.
type ServerConfig struct {
	Addr           string `json:"addr"`
	RefreshSeconds int    `json:"refreshSeconds"`
}

func defaultServerConfig() ServerConfig {
	return ServerConfig{Addr: "127.0.0.1:18790", RefreshSeconds: 60}
}

// Refresh returns the websocket push interval, at least one second.
func (s ServerConfig) Refresh() time.Duration {
	if s.RefreshSeconds < 1 {
		return time.Second
	}
	return time.Duration(s.RefreshSeconds) * time.Second
}

// LoggingConfig selects the log level: debug, info, warn or error.
type LoggingConfig struct {
	Level string `json:"level"`
}

// ---- Root config -----------------------------------------------------------

// Config is the root configuration object.
type Config struct {
	Display DisplayConfig `json:"display"`
	Jobs    JobsConfig    `json:"jobs"`
	Server  ServerConfig  `json:"server"`
	Logging LoggingConfig `json:"logging"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() Config {
	return Config{
		Display: defaultDisplayConfig(),
		Jobs:    JobsConfig{Path: "~/.scheduledisplay/jobs.yaml"},
		Server:  defaultServerConfig(),
		Logging: LoggingConfig{Level: "info"},
	}
}

// JobsPath returns the expanded path of the jobs file.
func (c *Config) JobsPath() string {
	p := c.Jobs.Path
	if p == "" {
		p = filepath.Join(DataDir(), "jobs.yaml")
	}
	return expandHome(p)
}

func expandHome(p string) string {
	if len(p) >= 2 && p[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	return p
}
