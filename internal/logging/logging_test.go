package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"WARN", log.WarnLevel},
		{"warning", log.WarnLevel},
		{" error ", log.ErrorLevel},
		{"info", log.InfoLevel},
		{"bogus", log.InfoLevel},
		{"", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", false)

	logger.Info("schedule: planned", "rows", 3)
	logger.Warn("schedule: ignoring bad schedule line", "job", "nightly")

	out := buf.String()
	if strings.Contains(out, "planned") {
		t.Errorf("info line should be filtered at warn level:\n%s", out)
	}
	if !strings.Contains(out, "ignoring bad schedule line") || !strings.Contains(out, "nightly") {
		t.Errorf("warn line missing:\n%s", out)
	}
}
