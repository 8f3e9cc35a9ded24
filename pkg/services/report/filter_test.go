package report

import (
	"testing"

	"github.com/de-tools/claims-report/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func rowsOf(specs ...[2]string) []domain.Row {
	rows := make([]domain.Row, 0, len(specs))
	for i, s := range specs {
		rows = append(rows, domain.Row{
			ClaimID:     string(rune('a' + i)),
			Status:      domain.ClaimStatus(s[0]),
			CourierName: s[1],
		})
	}
	return rows
}

func ids(rows []domain.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ClaimID)
	}
	return out
}

func TestView(t *testing.T) {
	rows := rowsOf(
		[2]string{"delivered", "Ana"},
		[2]string{"cancelled", "Ana"},
		[2]string{"performer_lookup", domain.NoCourier},
		[2]string{"delivered_finish", "Luis"},
		[2]string{"failed", "Luis"},
	)

	tests := []struct {
		name     string
		mode     domain.ReportMode
		filter   Filter
		expected []string
	}{
		{
			name:     "zero filter keeps everything",
			mode:     domain.ModeWeekly,
			expected: []string{"a", "b", "c", "d", "e"},
		},
		{
			name:     "by status",
			mode:     domain.ModeWeekly,
			filter:   Filter{Statuses: []domain.ClaimStatus{domain.StatusDelivered, domain.StatusFailed}},
			expected: []string{"a", "e"},
		},
		{
			name:     "by courier",
			mode:     domain.ModeWeekly,
			filter:   Filter{Couriers: []string{"Luis"}},
			expected: []string{"d", "e"},
		},
		{
			name:     "without cancelled",
			mode:     domain.ModeWeekly,
			filter:   Filter{WithoutCancelled: true},
			expected: []string{"a", "c", "d"},
		},
		{
			name:     "combined",
			mode:     domain.ModeWeekly,
			filter:   Filter{Couriers: []string{"Ana"}, WithoutCancelled: true},
			expected: []string{"a"},
		},
		{
			name:     "received keeps performer lookup only",
			mode:     domain.ModeReceived,
			expected: []string{"c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &domain.Report{Mode: tt.mode, Rows: rows}

			got := View(report, tt.filter)

			assert.Equal(t, tt.expected, ids(got))
			assert.Len(t, report.Rows, 5, "view must not modify the report")
		})
	}
}

func TestCouriers(t *testing.T) {
	rows := rowsOf(
		[2]string{"delivered", "Luis"},
		[2]string{"delivered", "Ana"},
		[2]string{"failed", "Luis"},
		[2]string{"performer_lookup", domain.NoCourier},
	)
	assert.Equal(t, []string{"Luis", "Ana", domain.NoCourier}, Couriers(rows))
	assert.Empty(t, Couriers(nil))
}
