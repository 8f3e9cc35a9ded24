package workflow

import (
	"context"
	"time"

	"github.com/de-tools/claims-report/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Warmer regenerates and caches the report for a mode.
type Warmer interface {
	Warm(ctx context.Context, mode domain.ReportMode) (*domain.Report, error)
}

type Runner struct {
	mode     domain.ReportMode
	warmer   Warmer
	done     chan struct{}
	progress chan RunnerProgress
	config   RunnerConfig
}

type RunnerConfig struct {
	Interval      time.Duration
	RetryInterval time.Duration
}

type RunnerProgress struct {
	Runs            int64
	Rows            int
	Partial         bool
	LastRefreshedAt time.Time
}

func NewRunner(mode domain.ReportMode, warmer Warmer, config RunnerConfig) *Runner {
	if config.RetryInterval <= 0 || config.RetryInterval > config.Interval {
		config.RetryInterval = config.Interval
	}
	return &Runner{
		mode:     mode,
		warmer:   warmer,
		done:     make(chan struct{}),
		progress: make(chan RunnerProgress, 100),
		config:   config,
	}
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) Progress() <-chan RunnerProgress {
	return r.progress
}

// Run refreshes the report every Interval until ctx is cancelled. Failed runs
// are retried after RetryInterval.
func (r *Runner) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().Str("mode", r.mode.String()).Logger()
	defer close(r.done)
	defer close(r.progress)

	runs := int64(0)
	for {
		wait := r.config.Interval

		report, err := r.warmer.Warm(logger.WithContext(ctx), r.mode)
		switch {
		case ctx.Err() != nil:
			logger.Info().Msg("cache warmer stopped")
			return
		case err != nil:
			logger.Error().Err(err).Msg("failed to warm report cache")
			wait = r.config.RetryInterval
		default:
			runs++
			r.report(RunnerProgress{
				Runs:            runs,
				Rows:            len(report.Rows),
				Partial:         report.Partial(),
				LastRefreshedAt: time.Now(),
			})
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info().Msg("cache warmer stopped")
			return
		case <-timer.C:
		}
	}
}

// report never blocks the loop when nobody reads progress.
func (r *Runner) report(p RunnerProgress) {
	select {
	case r.progress <- p:
	default:
	}
}
