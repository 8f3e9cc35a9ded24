package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/claims-report/pkg/adapters"
	"github.com/de-tools/claims-report/pkg/models/api"
	"github.com/de-tools/claims-report/pkg/models/domain"
	"github.com/de-tools/claims-report/pkg/runtime/terminal/export"
	reportsvc "github.com/de-tools/claims-report/pkg/services/report"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type ReportService interface {
	Get(ctx context.Context, req reportsvc.Request) (*domain.Report, error)
	Refresh(ctx context.Context) error
}

type Handler struct {
	reports ReportService
}

func NewHandler(reports ReportService) *Handler {
	return &Handler{reports: reports}
}

func (h *Handler) ListModes(w http.ResponseWriter, r *http.Request) {
	response := make([]api.Mode, 0, len(domain.Modes))
	for _, m := range domain.Modes {
		response = append(response, api.Mode{Name: m.String()})
	}
	writeJSON(w, r, response)
}

func (h *Handler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	response := make([]api.Status, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		response = append(response, api.Status{
			Name:      string(s),
			Cancelled: s.IsCancelled(),
			Delivered: s.IsDelivered(),
		})
	}
	writeJSON(w, r, response)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, filter, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, adapters.MapReportDomainToApi(rep, reportsvc.View(rep, filter)))
}

func (h *Handler) ListCouriers(w http.ResponseWriter, r *http.Request) {
	rep, _, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, reportsvc.Couriers(reportsvc.View(rep, reportsvc.Filter{})))
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	rep, filter, ok := h.load(w, r)
	if !ok {
		return
	}

	filename := fmt.Sprintf("claims_%s_%s.csv", strings.ToLower(rep.Mode.String()), rep.Window.To)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.NewCSVWriter(w).Write(reportsvc.View(rep, filter)); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write csv export")
	}
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.reports.Refresh(r.Context()); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to refresh reports")
		http.Error(w, "failed to refresh reports", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// load resolves the {mode} path parameter and query string into a report and
// the filter to apply to it. It writes the error response itself.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*domain.Report, reportsvc.Filter, bool) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	mode, err := domain.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, reportsvc.Filter{}, false
	}

	req, err := parseRequest(mode, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, reportsvc.Filter{}, false
	}

	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, reportsvc.Filter{}, false
	}

	rep, err := h.reports.Get(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			logger.Debug().Err(err).Str("mode", mode.String()).Msg("client went away")
			return nil, reportsvc.Filter{}, false
		}
		logger.Error().Err(err).Str("mode", mode.String()).Msg("failed to build report")
		http.Error(w, "failed to build report", http.StatusBadGateway)
		return nil, reportsvc.Filter{}, false
	}

	return rep, filter, true
}

func parseRequest(mode domain.ReportMode, r *http.Request) (reportsvc.Request, error) {
	q := r.URL.Query()
	req := reportsvc.Request{Mode: mode, Start: q.Get("start"), End: q.Get("end")}

	if req.Start == "" && req.End != "" {
		return req, fmt.Errorf("'end' requires 'start'")
	}
	for name, value := range map[string]string{"start": req.Start, "end": req.End} {
		if value == "" {
			continue
		}
		if _, err := time.Parse(domain.DateLayout, value); err != nil {
			return req, fmt.Errorf("invalid '%s' date format. Expected format: YYYY-MM-DD", name)
		}
	}
	return req, nil
}

func parseFilter(r *http.Request) (reportsvc.Filter, error) {
	q := r.URL.Query()
	var filter reportsvc.Filter

	for _, s := range splitList(q["status"]) {
		status := domain.ClaimStatus(s)
		if !slices.Contains(domain.Statuses, status) {
			return filter, fmt.Errorf("unknown status %q", s)
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	filter.Couriers = splitList(q["courier"])

	if v := q.Get("without_cancelled"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, fmt.Errorf("invalid 'without_cancelled' value %q", v)
		}
		filter.WithoutCancelled = b
	}
	return filter, nil
}

// splitList accepts both repeated parameters and comma separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
