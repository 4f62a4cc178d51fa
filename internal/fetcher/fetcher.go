// Package fetcher retrieves remote product markup through an ordered list of
// channels. Marketplace pages block plain cross-origin requests, so besides
// the direct channel the chain can route through a local reverse proxy and
// public CORS relays; the first channel that returns a viable body wins.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/vfarias/promoforge/internal/models"
)

var (
	// ErrExhausted means every channel was tried and none produced a viable body.
	ErrExhausted = errors.New("all fetch channels exhausted")
	// ErrNoChannels means the caller supplied an empty channel list.
	ErrNoChannels = errors.New("no fetch channels configured")
)

// ChannelSpec describes one concrete way to retrieve a target URL. Build
// transforms the target into the URL actually requested; Headers are set on
// top of the fetcher-wide user agent.
type ChannelSpec struct {
	Name    string
	Build   func(targetURL string) string
	Headers map[string]string
}

type Config struct {
	UserAgent     string
	MinBodyLength int
	Timeout       time.Duration
}

type Fetcher struct {
	client        *http.Client
	userAgent     string
	minBodyLength int
	logger        *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client:        &http.Client{Timeout: cfg.Timeout},
		userAgent:     cfg.UserAgent,
		minBodyLength: cfg.MinBodyLength,
		logger:        logger.With("component", "fetcher"),
	}
}

// Fetch tries each channel strictly in order and returns the first body whose
// HTTP status is 2xx and whose length reaches the viability threshold; short
// bodies are interstitial/block pages, not content. There are no retries
// within a channel. The attempt list is returned in every case so callers can
// log which channel supplied the markup.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string, channels []ChannelSpec) ([]byte, []models.FetchAttempt, error) {
	if len(channels) == 0 {
		return nil, nil, ErrNoChannels
	}

	attempts := make([]models.FetchAttempt, 0, len(channels))

	for _, ch := range channels {
		body, attempt := f.tryChannel(ctx, targetURL, ch)
		attempts = append(attempts, attempt)

		if attempt.Outcome == models.AttemptSuccess {
			f.logger.Info("channel supplied markup",
				"channel", ch.Name, "bodyLength", attempt.BodyLength)
			return body, attempts, nil
		}

		if ctx.Err() != nil {
			return nil, attempts, ctx.Err()
		}

		f.logger.Warn("channel failed, trying next",
			"channel", ch.Name, "outcome", attempt.Outcome, "status", attempt.Status)
	}

	return nil, attempts, ErrExhausted
}

func (f *Fetcher) tryChannel(ctx context.Context, targetURL string, ch ChannelSpec) ([]byte, models.FetchAttempt) {
	attempt := models.FetchAttempt{Channel: ch.Name}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ch.Build(targetURL), nil)
	if err != nil {
		attempt.Outcome = models.AttemptNetworkError
		return nil, attempt
	}

	req.Header.Set("User-Agent", f.userAgent)
	for k, v := range ch.Headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		attempt.Outcome = models.AttemptNetworkError
		return nil, attempt
	}
	defer resp.Body.Close()

	attempt.Status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		attempt.Outcome = models.AttemptHTTPError
		return nil, attempt
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		attempt.Outcome = models.AttemptNetworkError
		return nil, attempt
	}

	attempt.BodyLength = len(body)

	if len(body) < f.minBodyLength {
		attempt.Outcome = models.AttemptShortBody
		return nil, attempt
	}

	attempt.Outcome = models.AttemptSuccess
	return body, attempt
}

// Do performs a single plain GET with the fetcher's user agent. The proxy
// handler uses it to forward requests verbatim.
func (f *Fetcher) Do(ctx context.Context, targetURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	return f.client.Do(req)
}
