package window

import (
	"fmt"
	"slices"
	"time"

	"github.com/de-tools/claims-report/pkg/models/domain"
)

const (
	DefaultTimezone = "America/Lima"

	// claims created shortly before the target day are still relevant to it
	singleDayLookback = 2
	receivedLookback  = 7
	receivedLookahead = 2
)

type Settings struct {
	Location *time.Location
	// MonthlyStart and MonthlyEnd pin the Monthly window (YYYY-MM-DD). When
	// empty, the current local calendar month is used.
	MonthlyStart string
	MonthlyEnd   string
}

// Resolver turns a report mode into the created_ts date window sent to the
// claim API.
type Resolver struct {
	loc          *time.Location
	monthlyStart string
	monthlyEnd   string

	Now func() time.Time
}

func NewResolver(settings Settings) (*Resolver, error) {
	loc := settings.Location
	if loc == nil {
		var err error
		loc, err = time.LoadLocation(DefaultTimezone)
		if err != nil {
			return nil, fmt.Errorf("failed to load time zone %s: %w", DefaultTimezone, err)
		}
	}

	if (settings.MonthlyStart == "") != (settings.MonthlyEnd == "") {
		return nil, fmt.Errorf("monthly window needs both start and end dates")
	}
	if settings.MonthlyStart != "" {
		if err := checkRange(settings.MonthlyStart, settings.MonthlyEnd, loc); err != nil {
			return nil, fmt.Errorf("invalid monthly window: %w", err)
		}
	}

	return &Resolver{
		loc:          loc,
		monthlyStart: settings.MonthlyStart,
		monthlyEnd:   settings.MonthlyEnd,
		Now:          time.Now,
	}, nil
}

func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Resolve computes the window for mode. A non-empty start overrides the mode's
// own range and disables same-day filtering; end defaults to start.
func (r *Resolver) Resolve(mode domain.ReportMode, start, end string) (domain.DateWindow, error) {
	if !slices.Contains(domain.Modes, mode) {
		return domain.DateWindow{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedMode, mode)
	}
	today := r.today()

	if start != "" {
		if end == "" {
			end = start
		}
		if err := checkRange(start, end, r.loc); err != nil {
			return domain.DateWindow{}, err
		}
		return domain.DateWindow{
			Mode:  mode,
			From:  start,
			To:    end,
			Today: format(today.AddDate(0, 0, -mode.DayOffset())),
		}, nil
	}

	if mode.IsSingleDay() {
		target := today.AddDate(0, 0, -mode.DayOffset())
		return domain.DateWindow{
			Mode:    mode,
			From:    format(target.AddDate(0, 0, -singleDayLookback)),
			To:      format(target),
			Today:   format(target),
			SameDay: true,
		}, nil
	}

	switch mode {
	case domain.ModeMonthly:
		first, last := r.month(today)
		return domain.DateWindow{
			Mode:  mode,
			From:  format(first.AddDate(0, 0, -1)),
			To:    format(last),
			Today: format(today),
		}, nil

	case domain.ModeWeekly:
		sinceMonday := (int(today.Weekday()) + 6) % 7
		monday := today.AddDate(0, 0, -sinceMonday)
		return domain.DateWindow{
			Mode:  mode,
			From:  format(monday.AddDate(0, 0, -1)),
			To:    format(monday.AddDate(0, 0, 6)),
			Today: format(today),
		}, nil

	case domain.ModeReceived:
		return domain.DateWindow{
			Mode:  mode,
			From:  format(today.AddDate(0, 0, -receivedLookback)),
			To:    format(today.AddDate(0, 0, receivedLookahead)),
			Today: format(today),
		}, nil

	}

	return domain.DateWindow{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedMode, mode)
}

// Contains reports whether t falls on a local date inside w.
func (r *Resolver) Contains(w domain.DateWindow, t time.Time) bool {
	d := format(t.In(r.loc))
	return d >= w.From && d <= w.To
}

// LocalDate formats t as a report-zone calendar date.
func (r *Resolver) LocalDate(t time.Time) string {
	return format(t.In(r.loc))
}

func (r *Resolver) today() time.Time {
	now := r.Now().In(r.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.loc)
}

func (r *Resolver) month(today time.Time) (time.Time, time.Time) {
	if r.monthlyStart != "" {
		first, _ := time.ParseInLocation(domain.DateLayout, r.monthlyStart, r.loc)
		last, _ := time.ParseInLocation(domain.DateLayout, r.monthlyEnd, r.loc)
		return first, last
	}
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, r.loc)
	return first, first.AddDate(0, 1, -1)
}

func checkRange(start, end string, loc *time.Location) error {
	s, err := time.ParseInLocation(domain.DateLayout, start, loc)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.ParseInLocation(domain.DateLayout, end, loc)
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if e.Before(s) {
		return fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return nil
}

func format(t time.Time) string {
	return t.Format(domain.DateLayout)
}
