package workflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/de-tools/claims-report/pkg/models/domain"
)

const DefaultRetryInterval = time.Minute

// Controller keeps cached reports fresh in the background, one runner per mode.
type Controller interface {
	Start(ctx context.Context, mode domain.ReportMode) error
	Cancel(ctx context.Context, mode domain.ReportMode) error
}

type workflowDescriptor struct {
	cancelFunc context.CancelFunc
	runner     *Runner
}

type DefaultController struct {
	warmer Warmer
	config RunnerConfig

	mu        sync.Mutex
	workflows map[domain.ReportMode]workflowDescriptor
}

func NewController(warmer Warmer, interval time.Duration) *DefaultController {
	return &DefaultController{
		warmer: warmer,
		config: RunnerConfig{
			Interval:      interval,
			RetryInterval: DefaultRetryInterval,
		},
		workflows: make(map[domain.ReportMode]workflowDescriptor),
	}
}

// Init starts a runner for each of modes.
func (ctrl *DefaultController) Init(ctx context.Context, modes []domain.ReportMode) error {
	for _, mode := range modes {
		if err := ctrl.Start(ctx, mode); err != nil {
			return err
		}
	}
	return nil
}

func (ctrl *DefaultController) Start(ctx context.Context, mode domain.ReportMode) error {
	if ctrl.config.Interval <= 0 {
		return fmt.Errorf("warm interval must be positive")
	}

	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	if _, ok := ctrl.workflows[mode]; ok {
		return fmt.Errorf("cache warmer already running: %s", mode)
	}

	ctx, cancel := context.WithCancel(ctx)
	runner := NewRunner(mode, ctrl.warmer, ctrl.config)
	ctrl.workflows[mode] = workflowDescriptor{
		cancelFunc: cancel,
		runner:     runner,
	}

	go runner.Run(ctx)
	return nil
}

func (ctrl *DefaultController) Cancel(_ context.Context, mode domain.ReportMode) error {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	desc, ok := ctrl.workflows[mode]
	if !ok {
		return fmt.Errorf("cache warmer not running: %s", mode)
	}
	desc.cancelFunc()
	<-desc.runner.Done()

	delete(ctrl.workflows, mode)
	return nil
}

// Stop cancels every runner and waits for them to exit.
func (ctrl *DefaultController) Stop(ctx context.Context) {
	ctrl.mu.Lock()
	modes := make([]domain.ReportMode, 0, len(ctrl.workflows))
	for mode := range ctrl.workflows {
		modes = append(modes, mode)
	}
	ctrl.mu.Unlock()

	for _, mode := range modes {
		_ = ctrl.Cancel(ctx, mode)
	}
}

func (ctrl *DefaultController) Progress(mode domain.ReportMode) (<-chan RunnerProgress, bool) {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	desc, ok := ctrl.workflows[mode]
	if !ok {
		return nil, false
	}
	return desc.runner.Progress(), true
}
