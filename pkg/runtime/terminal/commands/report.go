package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/de-tools/claims-report/pkg/models/domain"
	"github.com/de-tools/claims-report/pkg/runtime/terminal/export"
	reportsvc "github.com/de-tools/claims-report/pkg/services/report"
	"github.com/de-tools/claims-report/pkg/store/objectstore"
	"github.com/spf13/cobra"
)

const (
	formatTable = "table"
	formatCSV   = "csv"
)

type ReportCmd struct {
	configPath       *string
	mode             string
	start            string
	end              string
	statuses         []string
	couriers         []string
	withoutCancelled bool
	format           string
	output           string
	s3Key            string
	strict           bool
	setup            Setup
}

func NewReportCmd(configPath *string, setup Setup) *cobra.Command {
	rc := &ReportCmd{configPath: configPath, setup: setup}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the claims report for a mode",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.mode, "mode", domain.ModeToday.String(), "Report mode (see `modes`)")
	cmd.Flags().StringVar(&rc.start, "start", "", "Explicit start date YYYY-MM-DD, replaces the mode window")
	cmd.Flags().StringVar(&rc.end, "end", "", "Explicit end date YYYY-MM-DD (defaults to --start)")
	cmd.Flags().StringSliceVar(&rc.statuses, "status", nil, "Only show these statuses")
	cmd.Flags().StringSliceVar(&rc.couriers, "courier", nil, "Only show these couriers")
	cmd.Flags().BoolVar(&rc.withoutCancelled, "without-cancelled", false, "Hide cancelled and failed claims")
	cmd.Flags().StringVar(&rc.format, "format", formatTable, "Output format: table or csv")
	cmd.Flags().StringVarP(&rc.output, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().StringVar(&rc.s3Key, "s3-key", "", "Also upload the csv export under this key")
	cmd.Flags().BoolVar(&rc.strict, "strict", false, "Fail when any credential could not be fetched")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	mode, err := domain.ParseMode(rc.mode)
	if err != nil {
		return fmt.Errorf("%w (supported: %s)", err, supportedModes())
	}
	if rc.format != formatTable && rc.format != formatCSV {
		return fmt.Errorf("unsupported format %q, expected %s or %s", rc.format, formatTable, formatCSV)
	}
	if rc.end != "" && rc.start == "" {
		return fmt.Errorf("--end requires --start")
	}
	filter, err := rc.filter()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := rc.setup(ctx, *rc.configPath)
	if err != nil {
		return err
	}
	ctx = rt.Logger.WithContext(ctx)

	report, err := rt.Reports.Generate(ctx, reportsvc.Request{Mode: mode, Start: rc.start, End: rc.end})
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	rows := reportsvc.View(report, filter)

	if err := rc.write(cmd.OutOrStdout(), report, rows); err != nil {
		return err
	}

	if rc.s3Key != "" {
		if err := rc.upload(ctx, cmd.ErrOrStderr(), rt, rows); err != nil {
			return err
		}
	}

	if rc.strict && report.Partial() {
		clients := make([]string, 0, len(report.Failures))
		for _, f := range report.Failures {
			clients = append(clients, f.Client)
		}
		return fmt.Errorf("report is incomplete, failed clients: %s", strings.Join(clients, ", "))
	}

	return nil
}

func (rc *ReportCmd) filter() (reportsvc.Filter, error) {
	f := reportsvc.Filter{
		Couriers:         rc.couriers,
		WithoutCancelled: rc.withoutCancelled,
	}
	for _, s := range rc.statuses {
		status := domain.ClaimStatus(s)
		if !slices.Contains(domain.Statuses, status) {
			return f, fmt.Errorf("unknown status %q", s)
		}
		f.Statuses = append(f.Statuses, status)
	}
	return f, nil
}

func (rc *ReportCmd) write(stdout io.Writer, report *domain.Report, rows []domain.Row) error {
	if rc.output == "" {
		return rc.render(stdout, report, rows)
	}

	f, err := os.Create(rc.output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	return writeAndClose(f, func(w io.Writer) error {
		return rc.render(w, report, rows)
	})
}

func (rc *ReportCmd) render(out io.Writer, report *domain.Report, rows []domain.Row) error {
	if rc.format == formatCSV {
		return export.NewCSVWriter(out).Write(rows)
	}
	return export.NewReporter(out).Handle(report, rows)
}

// writeAndClose reports a failed Close, since buffered data may only reach
// disk when the file is closed.
func writeAndClose(wc io.WriteCloser, render func(io.Writer) error) error {
	if err := render(wc); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

func (rc *ReportCmd) upload(ctx context.Context, stderr io.Writer, rt *Runtime, rows []domain.Row) error {
	if rt.Uploader == nil {
		return fmt.Errorf("csv upload is not configured")
	}
	uploader, err := rt.Uploader(ctx)
	if err != nil {
		return fmt.Errorf("failed to create uploader: %w", err)
	}

	var buf bytes.Buffer
	if err := export.NewCSVWriter(&buf).Write(rows); err != nil {
		return err
	}

	location, err := uploader.Upload(ctx, rc.s3Key, &buf, objectstore.ContentTypeCSV)
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr, "Uploaded %d claims to %s\n", len(rows), location)
	return nil
}

func supportedModes() string {
	names := make([]string, 0, len(domain.Modes))
	for _, m := range domain.Modes {
		names = append(names, m.String())
	}
	return strings.Join(names, ", ")
}
