package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedMode = errors.New("unsupported report mode")

type ReportMode string

const (
	ModeToday     ReportMode = "Today"
	ModeYesterday ReportMode = "Yesterday"
	ModeTomorrow  ReportMode = "Tomorrow"
	ModeWeekly    ReportMode = "Weekly"
	ModeMonthly   ReportMode = "Monthly"
	ModeReceived  ReportMode = "Received"
)

// Modes lists every report mode in the order they are offered to users.
var Modes = []ReportMode{
	ModeWeekly,
	ModeMonthly,
	ModeReceived,
	ModeToday,
	ModeYesterday,
	ModeTomorrow,
}

// ParseMode matches s against the known modes, ignoring case.
func ParseMode(s string) (ReportMode, error) {
	for _, m := range Modes {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
}

// DayOffset is the number of days subtracted from the current local date for
// the single-day modes.
func (m ReportMode) DayOffset() int {
	switch m {
	case ModeYesterday:
		return 1
	case ModeTomorrow:
		return -1
	default:
		return 0
	}
}

func (m ReportMode) IsSingleDay() bool {
	return m == ModeToday || m == ModeYesterday || m == ModeTomorrow
}

func (m ReportMode) String() string {
	return string(m)
}
