package providers

import (
	"context"
	"log/slog"
	"time"

	domainmatch "pickleball-ticker-service/internal/domain/match"
	"pickleball-ticker-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a MatchProvider with retry/backoff behavior.
type retryingProvider struct {
	inner       MatchProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	backoffFn   backoffFunc
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner MatchProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) MatchProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
		sleep: sleepWithContext,
	}
}

func (r *retryingProvider) FetchMatch(ctx context.Context, matchID string) (domainmatch.Match, error) {
	if r.inner == nil {
		return domainmatch.Match{}, ErrProviderUnavailable
	}

	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		m, err := r.inner.FetchMatch(ctx, matchID)
		r.metrics.RecordProviderAttempt(r.name, time.Since(start), err)
		if err == nil {
			return m, nil
		}
		lastErr = err

		// Structurally bad payloads never improve with retries.
		if _, ok := AsInvalidPayloadError(err); ok {
			break
		}
		if attempt == r.maxAttempts {
			break
		}

		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider fetch retry",
			"attempt", attempt, "max_attempts", r.maxAttempts, "err", err)

		if err := r.sleep(ctx, r.backoffFn(attempt)); err != nil {
			return domainmatch.Match{}, err
		}
	}

	logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider fetch failed",
		"attempts", r.maxAttempts, "err", lastErr)
	return domainmatch.Match{}, lastErr
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
