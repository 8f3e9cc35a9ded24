package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/de-tools/claims-report/pkg/models/domain"
	"github.com/de-tools/claims-report/pkg/models/store"
	"github.com/rs/zerolog"
)

const (
	DefaultPageLimit      = 1000
	DefaultMaxPages       = 1000
	DefaultTimeout        = 30 * time.Second
	DefaultTimezoneOffset = "-05:00"

	maxResponseBytes = 64 << 20
)

var ErrTooManyPages = errors.New("claims pagination did not terminate")

// ClaimsClient pages through the claims visible to one bearer token.
type ClaimsClient interface {
	FetchAll(ctx context.Context, token string, window domain.DateWindow) ([]json.RawMessage, error)
}

type Settings struct {
	URL            string
	Limit          int
	MaxPages       int
	Timeout        time.Duration
	TimezoneOffset string
	Retry          RetryPolicy
}

type Client struct {
	http     *http.Client
	settings Settings
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewClaimsClient creates a claim API client. When httpClient is nil a client
// with settings.Timeout is used, so no request can block forever.
func NewClaimsClient(settings Settings, httpClient *http.Client) (*Client, error) {
	if settings.URL == "" {
		return nil, fmt.Errorf("claims api url is empty")
	}
	if settings.Limit <= 0 {
		settings.Limit = DefaultPageLimit
	}
	if settings.MaxPages <= 0 {
		settings.MaxPages = DefaultMaxPages
	}
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}
	if settings.TimezoneOffset == "" {
		settings.TimezoneOffset = DefaultTimezoneOffset
	}
	settings.Retry = settings.Retry.withDefaults()

	if httpClient == nil {
		httpClient = &http.Client{Timeout: settings.Timeout}
	}

	return &Client{
		http:     httpClient,
		settings: settings,
		sleep:    sleepCtx,
	}, nil
}

// FetchAll follows the server cursor until it is exhausted and returns the
// claims of every page in page order.
func (c *Client) FetchAll(ctx context.Context, token string, window domain.DateWindow) ([]json.RawMessage, error) {
	logger := zerolog.Ctx(ctx)

	req := store.SearchRequest{
		CreatedFrom: fmt.Sprintf("%sT00:00:00%s", window.From, c.settings.TimezoneOffset),
		CreatedTo:   fmt.Sprintf("%sT23:59:59%s", window.To, c.settings.TimezoneOffset),
		Limit:       c.settings.Limit,
		Cursor:      0,
	}

	var claims []json.RawMessage
	for pages := 1; ; pages++ {
		page, err := c.FetchPage(ctx, token, req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch claims page %d: %w", pages, err)
		}
		claims = append(claims, page.Claims...)

		if page.Cursor == nil || *page.Cursor == 0 {
			logger.Debug().Int("pages", pages).Int("claims", len(claims)).Msg("last claims page processed")
			return claims, nil
		}
		if pages >= c.settings.MaxPages {
			return nil, fmt.Errorf("%w after %d pages", ErrTooManyPages, pages)
		}

		logger.Debug().Int64("cursor", *page.Cursor).Int("page_claims", len(page.Claims)).Msg("following claims cursor")
		req = store.SearchRequest{Cursor: *page.Cursor}
	}
}

// FetchPage issues one search call, retrying transient failures.
func (c *Client) FetchPage(ctx context.Context, token string, req store.SearchRequest) (*store.ClaimsPage, error) {
	logger := zerolog.Ctx(ctx)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal claims search request: %w", err)
	}

	for attempt := 1; ; attempt++ {
		page, err := c.post(ctx, token, body)
		if err == nil {
			return page, nil
		}
		if !isRetryable(ctx, err) || attempt >= c.settings.Retry.Attempts {
			return nil, err
		}

		delay := c.settings.Retry.delay(attempt)
		logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("backoff", delay).
			Msg("claims request failed, retrying")

		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

func (c *Client) post(ctx context.Context, token string, body []byte) (*store.ClaimsPage, error) {
	logger := zerolog.Ctx(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.settings.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create claims http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close response body")
		}
	}(resp.Body)

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read claims response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: truncate(string(payload), 256)}
	}

	var page store.ClaimsPage
	if err := json.Unmarshal(payload, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal claims response: %w", err)
	}

	return &page, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
