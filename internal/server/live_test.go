package server

import (
	"context"
	"testing"
	"time"

	"pickleball-ticker-service/internal/config"
	domainmatch "pickleball-ticker-service/internal/domain/match"
	"pickleball-ticker-service/internal/store"
)

func TestNewLiveFeedsRequiresPbtrackWithLiveURL(t *testing.T) {
	cache := store.NewMemoryStore()

	if l := newLiveFeeds(config.Config{Provider: "fixture"}, cache, nil, nil); l != nil {
		t.Fatalf("expected no live feeds for fixture provider")
	}
	if l := newLiveFeeds(config.Config{Provider: "pbtrack"}, cache, nil, nil); l != nil {
		t.Fatalf("expected no live feeds without a live url")
	}

	cfg := config.Config{
		Provider: "pbtrack",
		Pbtrack:  config.PbtrackConfig{LiveURL: "ws://example.com/live", APIKey: "token"},
	}
	l := newLiveFeeds(cfg, cache, nil, nil)
	if l == nil {
		t.Fatalf("expected live feeds when pbtrack live url is configured")
	}
	if l.cfg.URL != "ws://example.com/live" || l.cfg.APIKey != "token" {
		t.Fatalf("unexpected live config %+v", l.cfg)
	}
}

func TestNilLiveFeedsStartStopAreSafe(t *testing.T) {
	var l *liveFeeds
	l.Start(context.Background())
	if err := l.Stop(context.Background()); err != nil {
		t.Fatalf("expected nil stop to succeed, got %v", err)
	}
}

func TestLiveFeedsReconcileTracksCache(t *testing.T) {
	cache := store.NewMemoryStore()
	cfg := config.Config{
		Provider:        "pbtrack",
		RefreshInterval: time.Hour, // reconcile manually
		Pbtrack:         config.PbtrackConfig{LiveURL: "ws://127.0.0.1:1/live"},
	}
	l := newLiveFeeds(cfg, cache, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l.reconcile(ctx)
	l.mu.Lock()
	if len(l.cancels) != 0 {
		l.mu.Unlock()
		t.Fatalf("expected no subscriptions for empty cache")
	}
	l.mu.Unlock()

	cache.SetMatch(domainmatch.Match{MatchID: "m1"})
	l.reconcile(ctx)
	l.mu.Lock()
	if len(l.cancels) != 1 {
		l.mu.Unlock()
		t.Fatalf("expected one subscription, got %d", len(l.cancels))
	}
	l.mu.Unlock()

	cache.DropMatch("m1")
	l.reconcile(ctx)
	l.mu.Lock()
	if len(l.cancels) != 0 {
		l.mu.Unlock()
		t.Fatalf("expected subscription to be dropped with the match")
	}
	l.mu.Unlock()

	cancel()
	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := l.Stop(stopCtx); err != nil {
		t.Fatalf("expected stop to succeed, got %v", err)
	}
}
