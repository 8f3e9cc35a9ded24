package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/de-tools/claims-report/pkg/adapters"
	"github.com/de-tools/claims-report/pkg/models/domain"
	"github.com/de-tools/claims-report/pkg/services/config"
	"github.com/de-tools/claims-report/pkg/services/window"
	"github.com/de-tools/claims-report/pkg/store/client"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Request selects a report. Start and End are optional YYYY-MM-DD dates that
// replace the mode's own window.
type Request struct {
	Mode  domain.ReportMode
	Start string
	End   string
}

func (r Request) HasRange() bool {
	return r.Start != ""
}

type Generator interface {
	Generate(ctx context.Context, req Request) (*domain.Report, error)
}

type Controller struct {
	fetcher  client.ClaimsClient
	registry config.CredentialRegistry
	resolver *window.Resolver
	hooks    []Hook

	now func() time.Time
}

func NewController(
	fetcher client.ClaimsClient,
	registry config.CredentialRegistry,
	resolver *window.Resolver,
	hooks ...Hook,
) (*Controller, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("claims fetcher is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("credential registry is required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("window resolver is required")
	}

	return &Controller{
		fetcher:  fetcher,
		registry: registry,
		resolver: resolver,
		hooks:    hooks,
		now:      time.Now,
	}, nil
}

// Clients lists the configured client labels in credential order.
func (c *Controller) Clients(ctx context.Context) ([]string, error) {
	return c.registry.GetClients(ctx)
}

// Generate fetches every credential's claims for the requested window and
// flattens them into rows. A credential that cannot be fetched is recorded in
// Report.Failures and the run moves on to the next one.
func (c *Controller) Generate(ctx context.Context, req Request) (*domain.Report, error) {
	w, err := c.resolver.Resolve(req.Mode, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	credentials, err := c.registry.Credentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	logger := zerolog.Ctx(ctx).With().
		Str("run_id", uuid.NewString()).
		Str("mode", w.Mode.String()).
		Logger()
	ctx = logger.WithContext(ctx)

	logger.Info().
		Str("from", w.From).
		Str("to", w.To).
		Bool("same_day", w.SameDay).
		Int("credentials", len(credentials)).
		Msg("generating claims report")

	report := &domain.Report{
		Mode:    w.Mode,
		Window:  w,
		Columns: domain.Columns,
		Rows:    []domain.Row{},
	}
	c.fire(ctx, StageStarted, report)

	for _, cred := range credentials {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("report generation cancelled: %w", err)
		}

		logger.Debug().Stringer("credential", cred).Msg("fetching claims")
		raws, err := c.fetcher.FetchAll(ctx, cred.Token, w)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("report generation cancelled: %w", ctx.Err())
			}
			logger.Error().Err(err).Str("client", cred.Client).Msg("failed to fetch claims")
			report.Failures = append(report.Failures, domain.CredentialFailure{
				Client: cred.Client,
				Error:  err.Error(),
			})
			continue
		}
		c.fire(ctx, StageFetched, report)

		added := c.append(ctx, report, cred.Client, raws)
		logger.Debug().
			Str("client", cred.Client).
			Int("claims", len(raws)).
			Int("rows", added).
			Msg("credential processed")
	}

	report.GeneratedAt = c.now().UTC()
	c.fire(ctx, StageFinished, report)

	logger.Info().
		Int("rows", len(report.Rows)).
		Int("skipped", report.Skipped).
		Int("failures", len(report.Failures)).
		Msg("claims report ready")

	return report, nil
}

func (c *Controller) append(ctx context.Context, report *domain.Report, clientName string, raws []json.RawMessage) int {
	added := 0
	for _, raw := range raws {
		claim, err := normalize(raw, c.resolver.Location())
		if err != nil {
			report.Skipped++
			zerolog.Ctx(ctx).Warn().
				Err(err).
				Str("client", clientName).
				Str("claim_id", claimID(raw)).
				Msg("skipping malformed claim")
			continue
		}
		if !c.keep(report.Window, claim) {
			continue
		}
		report.Rows = append(report.Rows, domain.NewRow(claim, clientName, c.resolver.Location()))
		added++
	}
	return added
}

// keep applies the window rules the claim API cannot express: same-day modes
// only show claims whose delivery interval starts on the target date, and
// Received only shows claims created inside the window.
func (c *Controller) keep(w domain.DateWindow, claim domain.Claim) bool {
	if w.SameDay {
		return claim.DeliveryFrom != nil && c.resolver.LocalDate(*claim.DeliveryFrom) == w.Today
	}
	if w.Mode == domain.ModeReceived {
		return c.resolver.Contains(w, claim.CreatedAt)
	}
	return true
}

func (c *Controller) fire(ctx context.Context, stage Stage, report *domain.Report) {
	for _, h := range c.hooks {
		h.OnStage(ctx, stage, report)
	}
}

func normalize(raw json.RawMessage, loc *time.Location) (domain.Claim, error) {
	sc, err := adapters.DecodeClaim(raw)
	if err != nil {
		return domain.Claim{}, err
	}
	return adapters.MapStoreClaimToDomain(sc, loc)
}

func claimID(raw json.RawMessage) string {
	var head struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(raw, &head)
	return head.ID
}
