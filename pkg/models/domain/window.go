package domain

// DateWindow is the created_ts search range sent to the claim API, expressed
// as local calendar dates (YYYY-MM-DD) in the report time zone.
type DateWindow struct {
	Mode    ReportMode
	From    string
	To      string
	Today   string // date the same-day cutoff filter compares against
	SameDay bool   // whether claims are restricted to Today's delivery interval
}
