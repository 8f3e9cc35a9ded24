package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/de-tools/claims-report/pkg/models/domain"
)

// CSVWriter writes rows with the report header as the first record.
type CSVWriter struct {
	writer io.Writer
}

func NewCSVWriter(writer io.Writer) *CSVWriter {
	return &CSVWriter{writer: writer}
}

func (c *CSVWriter) Write(rows []domain.Row) error {
	w := csv.NewWriter(c.writer)

	if err := w.Write(domain.Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(r.Values()); err != nil {
			return fmt.Errorf("failed to write claim %s: %w", r.ClaimID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
