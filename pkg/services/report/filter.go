package report

import (
	"slices"

	"github.com/de-tools/claims-report/pkg/models/domain"
)

// Filter narrows a report for display. Zero value keeps every row.
type Filter struct {
	Statuses         []domain.ClaimStatus
	Couriers         []string
	WithoutCancelled bool
}

// View returns the rows of report that pass f. The report itself is not
// modified. Received reports only list claims still waiting for a courier.
func View(report *domain.Report, f Filter) []domain.Row {
	rows := make([]domain.Row, 0, len(report.Rows))
	for _, r := range report.Rows {
		if report.Mode == domain.ModeReceived && r.Status != domain.StatusPerformerLookup {
			continue
		}
		if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, r.Status) {
			continue
		}
		if len(f.Couriers) > 0 && !slices.Contains(f.Couriers, r.CourierName) {
			continue
		}
		if f.WithoutCancelled && r.Status.IsCancelled() {
			continue
		}
		rows = append(rows, r)
	}
	return rows
}

// Couriers lists distinct courier names in first-seen order.
func Couriers(rows []domain.Row) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, r := range rows {
		if _, ok := seen[r.CourierName]; ok {
			continue
		}
		seen[r.CourierName] = struct{}{}
		names = append(names, r.CourierName)
	}
	return names
}
