package config

import "testing"

func TestCheckMaxCount(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"100", LevelOK},
		{" 1 ", LevelOK},
		{"1000000", LevelOK},
		{"0", LevelWarning},
		{"1000001", LevelWarning},
		{"ten", LevelError},
		{"", LevelError},
	}
	for _, tt := range tests {
		if got := CheckMaxCount(tt.in); got.Level != tt.want {
			t.Errorf("CheckMaxCount(%q) = %s, want %s", tt.in, got.Level, tt.want)
		}
	}
}

func TestCheckMaxDays(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"7", LevelOK},
		{"366", LevelOK},
		{"367", LevelWarning},
		{"-1", LevelWarning},
		{"1.5", LevelError},
	}
	for _, tt := range tests {
		if got := CheckMaxDays(tt.in); got.Level != tt.want {
			t.Errorf("CheckMaxDays(%q) = %s, want %s", tt.in, got.Level, tt.want)
		}
	}
}

func TestCheckDateFormat(t *testing.T) {
	if v := CheckDateFormat(DefaultDateFormat); v.Level != LevelOK {
		t.Errorf("default layout rejected: %s", v.Message)
	}
	if v := CheckDateFormat("Mon 15:04"); v.Level != LevelOK {
		t.Errorf("weekday layout rejected: %s", v.Message)
	}
	if v := CheckDateFormat("yyyy-MM-dd"); v.Level != LevelError {
		t.Error("a layout with no Go elements should be rejected")
	}
	if v := CheckDateFormat("  "); v.Level != LevelError {
		t.Error("an empty layout should be rejected")
	}
}

func TestDisplayCheck(t *testing.T) {
	if problems := DefaultConfig().Display.Check(); len(problems) != 0 {
		t.Errorf("defaults should pass, got %v", problems)
	}
	d := DefaultConfig().Display
	d.MaxDays = 400
	d.WeekendDays = []string{"nope"}
	if problems := d.Check(); len(problems) != 2 {
		t.Errorf("expected 2 problems, got %v", problems)
	}
}
