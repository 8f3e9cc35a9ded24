package report

import (
	"fmt"

	"github.com/de-tools/claims-report/pkg/services/config"
	"github.com/de-tools/claims-report/pkg/services/window"
	"github.com/de-tools/claims-report/pkg/store/client"
)

// ControllerFactory wires a Controller from the loaded config.
func ControllerFactory(cfg *config.Config, hooks ...Hook) (*Controller, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %s: %w", cfg.Timezone, err)
	}

	resolver, err := window.NewResolver(window.Settings{
		Location:     loc,
		MonthlyStart: cfg.Monthly.Start,
		MonthlyEnd:   cfg.Monthly.End,
	})
	if err != nil {
		return nil, err
	}

	registry, err := cfg.Registry()
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	claims, err := client.NewClaimsClient(client.Settings{
		URL:            cfg.APIURL,
		Limit:          cfg.PageLimit,
		MaxPages:       cfg.MaxPages,
		Timeout:        cfg.RequestTimeout,
		TimezoneOffset: cfg.TimezoneOffset,
		Retry: client.RetryPolicy{
			Attempts:  cfg.Retry.Attempts,
			BaseDelay: cfg.Retry.BaseDelay,
			MaxDelay:  cfg.Retry.MaxDelay,
		},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create claims client: %w", err)
	}

	return NewController(claims, registry, resolver, hooks...)
}
