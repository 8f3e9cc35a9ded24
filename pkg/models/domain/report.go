package domain

import "time"

// Report represents a complete claims report for one mode
type Report struct {
	Mode        ReportMode
	Window      DateWindow
	Columns     []string
	Rows        []Row
	Failures    []CredentialFailure
	Skipped     int // malformed claims left out of Rows
	GeneratedAt time.Time
}

// CredentialFailure marks a client whose claims could not be fetched. Rows
// from other clients are still present in the report.
type CredentialFailure struct {
	Client string
	Error  string
}

func (r *Report) Partial() bool {
	return len(r.Failures) > 0
}

// DeliveredCount counts rows in a delivered or delivered_finish status.
func DeliveredCount(rows []Row) int {
	n := 0
	for _, r := range rows {
		if r.Status.IsDelivered() {
			n++
		}
	}
	return n
}
