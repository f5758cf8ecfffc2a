package providers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	domainmatch "pickleball-ticker-service/internal/domain/match"
)

type countedProvider struct {
	calls atomic.Int64
}

func (c *countedProvider) FetchMatch(ctx context.Context, matchID string) (domainmatch.Match, error) {
	_ = ctx
	c.calls.Add(1)
	return domainmatch.Match{MatchID: matchID}, nil
}

func TestRateLimitedProviderBlocksUntilTick(t *testing.T) {
	inner := &countedProvider{}
	rl := NewRateLimitedProvider(inner, 5*time.Millisecond, nil).(*rateLimitedProvider)
	defer rl.Close()

	start := time.Now()
	if _, err := rl.FetchMatch(context.Background(), "m1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	elapsed := time.Since(start)
	if elapsed < 5*time.Millisecond {
		t.Fatalf("expected call to wait for ticker, elapsed %s", elapsed)
	}
	if inner.calls.Load() != 1 {
		t.Fatalf("expected inner provider called once, got %d", inner.calls.Load())
	}
}

func TestRateLimitedProviderRespectsCanceledContext(t *testing.T) {
	inner := &countedProvider{}
	rl := NewRateLimitedProvider(inner, time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rl.FetchMatch(ctx, "m1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
	if inner.calls.Load() != 0 {
		t.Fatalf("expected inner provider not called on canceled context")
	}
}

func TestRateLimitedProviderHandlesNilInner(t *testing.T) {
	var inner MatchProvider
	rl := NewRateLimitedProvider(inner, time.Millisecond, nil)

	_, err := rl.FetchMatch(context.Background(), "m1")
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestRateLimitedProviderCloseStopsTicker(t *testing.T) {
	rl := NewRateLimitedProvider(&countedProvider{}, time.Millisecond, nil).(*rateLimitedProvider)
	rl.Close() // ensure no panic and ticker stopped
}

func TestRateLimitedProviderDefaultsInterval(t *testing.T) {
	rl := NewRateLimitedProvider(&countedProvider{}, 0, nil).(*rateLimitedProvider)
	if rl.interval != time.Minute {
		t.Fatalf("expected default interval 1m, got %s", rl.interval)
	}
	rl.Close()
}
