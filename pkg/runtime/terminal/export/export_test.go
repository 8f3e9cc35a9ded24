package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/claims-report/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Mode: domain.ModeToday,
		Window: domain.DateWindow{
			Mode:    domain.ModeToday,
			From:    "2025-03-10",
			To:      "2025-03-12",
			Today:   "2025-03-12",
			SameDay: true,
		},
		Columns: domain.Columns,
		Rows: []domain.Row{
			{ClaimID: "c-1", Client: "Acme", Status: domain.StatusDelivered, ReceiverAddress: "Av. Brasil 10, Lima"},
			{ClaimID: "c-2", Client: "Acme", Status: domain.StatusCancelled, ReceiverAddress: "Jr. Cusco 5, Lima"},
		},
		Failures:    []domain.CredentialFailure{{Client: "Globex", Error: "claims api returned 500"}},
		Skipped:     1,
		GeneratedAt: time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC),
	}
}

func TestReporter_Handle(t *testing.T) {
	// Given
	var buf bytes.Buffer
	report := sampleReport()

	// When
	err := NewReporter(&buf).Handle(report, report.Rows[:1])

	// Then
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Today report")
	assert.Contains(t, out, "Window: 2025-03-10 to 2025-03-12 (cutoff 2025-03-12)")
	assert.Contains(t, out, "Claims: 1 shown, 2 total, 1 delivered, 1 skipped")
	assert.Contains(t, out, "! Globex: claims api returned 500")
	assert.Contains(t, out, "claim_id")
	assert.Contains(t, out, "c-1")
	assert.NotContains(t, out, "c-2")
}

func TestReporter_Handle_NoRows(t *testing.T) {
	var buf bytes.Buffer
	report := sampleReport()

	err := NewReporter(&buf).Handle(report, nil)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No claims found.")
}

func TestReporter_CustomColumns(t *testing.T) {
	var buf bytes.Buffer
	report := sampleReport()

	reporter := NewReporter(&buf).WithConfig(TableConfig{Columns: []string{"claim_id", "unknown"}, CellWidth: 2})
	err := reporter.Handle(report, report.Rows)

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "c…")
	assert.NotContains(t, out, "unknown")
	assert.NotContains(t, out, "receiver_address")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Av. B…", truncate("Av. Brasil", 6))
	assert.Equal(t, "Av.…", truncate("Av. Brasil", 5))
	assert.Equal(t, "anything", truncate("anything", 0))
}

func TestCSVWriter_Write(t *testing.T) {
	// Given
	var buf bytes.Buffer
	report := sampleReport()
	report.Rows[0].ClientComment = `ring twice, "urgent"`

	// When
	err := NewCSVWriter(&buf).Write(report.Rows)

	// Then
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, domain.Columns, records[0])
	assert.Equal(t, report.Rows[0].Values(), records[1])
	assert.Equal(t, `ring twice, "urgent"`, records[1][14])
}

func TestCSVWriter_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewCSVWriter(&buf).Write(nil))

	assert.Equal(t, strings.Join(domain.Columns, ",")+"\n", buf.String())
}
