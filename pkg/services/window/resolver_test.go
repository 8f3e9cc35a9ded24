package window

import (
	"testing"
	"time"

	"github.com/de-tools/claims-report/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, now time.Time, settings Settings) *Resolver {
	t.Helper()
	r, err := NewResolver(settings)
	require.NoError(t, err)
	r.Now = func() time.Time { return now }
	return r
}

func lima(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)
	return loc
}

func TestResolver_Resolve(t *testing.T) {
	// Wednesday, 10:00 in Lima
	now := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		mode     domain.ReportMode
		settings Settings
		want     domain.DateWindow
	}{
		{
			name: "today",
			mode: domain.ModeToday,
			want: domain.DateWindow{From: "2025-03-10", To: "2025-03-12", Today: "2025-03-12", SameDay: true},
		},
		{
			name: "yesterday",
			mode: domain.ModeYesterday,
			want: domain.DateWindow{From: "2025-03-09", To: "2025-03-11", Today: "2025-03-11", SameDay: true},
		},
		{
			name: "tomorrow",
			mode: domain.ModeTomorrow,
			want: domain.DateWindow{From: "2025-03-11", To: "2025-03-13", Today: "2025-03-13", SameDay: true},
		},
		{
			name: "weekly",
			mode: domain.ModeWeekly,
			want: domain.DateWindow{From: "2025-03-09", To: "2025-03-16", Today: "2025-03-12"},
		},
		{
			name: "monthly current month",
			mode: domain.ModeMonthly,
			want: domain.DateWindow{From: "2025-02-28", To: "2025-03-31", Today: "2025-03-12"},
		},
		{
			name:     "monthly pinned",
			mode:     domain.ModeMonthly,
			settings: Settings{MonthlyStart: "2024-01-01", MonthlyEnd: "2024-01-31"},
			want:     domain.DateWindow{From: "2023-12-31", To: "2024-01-31", Today: "2025-03-12"},
		},
		{
			name: "received",
			mode: domain.ModeReceived,
			want: domain.DateWindow{From: "2025-03-05", To: "2025-03-14", Today: "2025-03-12"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(t, now, tt.settings)

			got, err := r.Resolve(tt.mode, "", "")
			require.NoError(t, err)

			tt.want.Mode = tt.mode
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_FromNeverAfterTo(t *testing.T) {
	start := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 400; day += 3 {
		now := start.AddDate(0, 0, day).Add(time.Duration(day%24) * time.Hour)
		r := newTestResolver(t, now, Settings{})

		for _, mode := range domain.Modes {
			w, err := r.Resolve(mode, "", "")
			require.NoError(t, err)
			assert.LessOrEqual(t, w.From, w.To, "mode %s at %s", mode, now)
		}
	}
}

func TestResolver_UsesLocalDate(t *testing.T) {
	// 03:00 UTC on the 13th is still the evening of the 12th in Lima.
	r := newTestResolver(t, time.Date(2025, 3, 13, 3, 0, 0, 0, time.UTC), Settings{})

	w, err := r.Resolve(domain.ModeToday, "", "")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-12", w.Today)
}

func TestResolver_WeeklyOnSunday(t *testing.T) {
	r := newTestResolver(t, time.Date(2025, 3, 16, 18, 0, 0, 0, time.UTC), Settings{})

	w, err := r.Resolve(domain.ModeWeekly, "", "")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-09", w.From)
	assert.Equal(t, "2025-03-16", w.To)
}

func TestResolver_ExplicitRange(t *testing.T) {
	r := newTestResolver(t, time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC), Settings{})

	w, err := r.Resolve(domain.ModeToday, "2025-02-01", "2025-02-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", w.From)
	assert.Equal(t, "2025-02-10", w.To)
	assert.False(t, w.SameDay)

	w, err = r.Resolve(domain.ModeToday, "2025-02-01", "")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", w.To)

	_, err = r.Resolve(domain.ModeToday, "2025-02-10", "2025-02-01")
	assert.Error(t, err)

	_, err = r.Resolve(domain.ModeToday, "02/01/2025", "")
	assert.Error(t, err)
}

func TestResolver_UnsupportedMode(t *testing.T) {
	r := newTestResolver(t, time.Now(), Settings{})

	_, err := r.Resolve(domain.ReportMode("Daily"), "", "")
	assert.ErrorIs(t, err, domain.ErrUnsupportedMode)

	_, err = r.Resolve(domain.ReportMode("Daily"), "2025-03-01", "2025-03-02")
	assert.ErrorIs(t, err, domain.ErrUnsupportedMode)
}

func TestResolver_ReceivedWindowBand(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)
	r := newTestResolver(t, now, Settings{Location: lima(t)})

	w, err := r.Resolve(domain.ModeReceived, "", "")
	require.NoError(t, err)

	assert.True(t, r.Contains(w, now.AddDate(0, 0, -3)))
	assert.False(t, r.Contains(w, now.AddDate(0, 0, -10)))
	assert.True(t, r.Contains(w, now.AddDate(0, 0, 2)))
}

func TestNewResolver_InvalidMonthly(t *testing.T) {
	_, err := NewResolver(Settings{MonthlyStart: "2024-01-01"})
	assert.Error(t, err)

	_, err = NewResolver(Settings{MonthlyStart: "2024-01-31", MonthlyEnd: "2024-01-01"})
	assert.Error(t, err)
}
