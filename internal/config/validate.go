package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/crystaldolphin/scheduledisplay/internal/schedule"
)

// Level grades a form check.
type Level int

const (
	LevelOK Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelOK:
		return "ok"
	case LevelWarning:
		return "warning"
	default:
		return "error"
	}
}

// Validation is the outcome of checking one user-entered value.
type Validation struct {
	Level   Level
	Message string
}

func ok() Validation { return Validation{Level: LevelOK} }

func warning(format string, args ...any) Validation {
	return Validation{Level: LevelWarning, Message: fmt.Sprintf(format, args...)}
}

func failure(format string, args ...any) Validation {
	return Validation{Level: LevelError, Message: fmt.Sprintf(format, args...)}
}

const maxCountLimit = 1000000

// CheckMaxCount validates the text of the maxCount field.
func CheckMaxCount(value string) Validation {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return failure("Not a valid number")
	}
	if n < 1 || n > maxCountLimit {
		return warning("Maximum count of scheduled builds is out of range (1 <= count <= %d)", maxCountLimit)
	}
	return ok()
}

// CheckMaxDays validates the text of the maxDays field.
func CheckMaxDays(value string) Validation {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return failure("Not a valid number")
	}
	if n < 1 || n > schedule.MaxDaysLimit {
		return warning("Number of days is out of range (1 <= days <= %d)", schedule.MaxDaysLimit)
	}
	return ok()
}

// CheckDateFormat validates a Go time layout. A layout that formats to itself
// contains no date elements and is rejected.
func CheckDateFormat(value string) Validation {
	if strings.TrimSpace(value) == "" {
		return failure("Date format must not be empty")
	}
	ref := time.Date(2017, 3, 9, 14, 5, 0, 0, time.UTC)
	if ref.Format(value) == value {
		return failure("Date format %q contains no date or time elements", value)
	}
	return ok()
}

// Check validates the whole display section and returns the problems found.
func (d DisplayConfig) Check() []Validation {
	var out []Validation
	for _, v := range []Validation{
		CheckMaxCount(strconv.Itoa(d.MaxCount)),
		CheckMaxDays(strconv.Itoa(d.MaxDays)),
		CheckDateFormat(d.Layout()),
	} {
		if v.Level != LevelOK {
			out = append(out, v)
		}
	}
	if _, err := d.Location(); err != nil {
		out = append(out, failure("%v", err))
	}
	if _, err := d.Weekend(); err != nil {
		out = append(out, failure("%v", err))
	}
	return out
}
