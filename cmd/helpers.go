package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/crystaldolphin/scheduledisplay/internal/recurrence"
)

// ---- helpers ---------------------------------------------------------------

// parseFrom reads a user-supplied time in loc. Empty means now.
func parseFrom(text string, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(text) == "" {
		return time.Now().In(loc), nil
	}
	t, err := dateparse.ParseIn(text, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", text, err)
	}
	return t.In(loc), nil
}

func expandPath(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

// describeSet lists the expressions of set, followed by its zone when a TZ=
// line selected one.
func describeSet(set *recurrence.Set) string {
	var exprs []string
	for _, tab := range set.Tabs() {
		exprs = append(exprs, tab.String())
	}
	out := strings.Join(exprs, " | ")
	if loc := set.Location(); loc != nil {
		out += " (TZ=" + loc.String() + ")"
	}
	return out
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "TZ=") {
			return line
		}
	}
	return ""
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
