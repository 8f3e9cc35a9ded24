package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/de-tools/claims-report/pkg/models/domain"
)

type TableConfig struct {
	Columns   []string
	CellWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		Columns: []string{
			"cutoff",
			"client",
			"claim_id",
			"status",
			"status_time",
			"receiver_address",
			"courier_name",
		},
		CellWidth: 40,
	}
}

// Reporter prints a summary header followed by the rows as a table.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) WithConfig(config TableConfig) *Reporter {
	c.config = config
	return c
}

type summary struct {
	*domain.Report
	Shown     int
	Delivered int
}

// Handle renders rows, which may be a filtered view of report.
func (c *Reporter) Handle(report *domain.Report, rows []domain.Row) error {
	tmpl := `
{{.Mode}} report
Window: {{.Window.From}} to {{.Window.To}}{{if .Window.SameDay}} (cutoff {{.Window.Today}}){{end}}
Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}
Claims: {{.Shown}} shown, {{len .Rows}} total, {{.Delivered}} delivered{{if .Skipped}}, {{.Skipped}} skipped{{end}}
{{range .Failures}}
! {{.Client}}: {{.Error}}{{end}}

`
	t, err := template.New("summary").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	s := summary{Report: report, Shown: len(rows), Delivered: domain.DeliveredCount(report.Rows)}
	if err := t.Execute(c.writer, s); err != nil {
		return fmt.Errorf("failed to render report summary: %w", err)
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(c.writer, "No claims found.")
		return err
	}

	_, err = fmt.Fprintln(c.writer, c.table(rows).Render())
	return err
}

func (c *Reporter) table(rows []domain.Row) *table.Table {
	index := make(map[string]int, len(domain.Columns))
	for i, name := range domain.Columns {
		index[name] = i
	}

	columns := make([]int, 0, len(c.config.Columns))
	headers := make([]string, 0, len(c.config.Columns))
	for _, name := range c.config.Columns {
		if i, ok := index[name]; ok {
			columns = append(columns, i)
			headers = append(headers, name)
		}
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		values := r.Values()
		line := make([]string, 0, len(columns))
		for _, i := range columns {
			line = append(line, truncate(values[i], c.config.CellWidth))
		}
		cells = append(cells, line)
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func truncate(s string, width int) string {
	if width <= 0 || len([]rune(s)) <= width {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:width-1])) + "…"
}
