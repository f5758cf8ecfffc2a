package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pickleball-ticker-service/internal/config"
	domainmatch "pickleball-ticker-service/internal/domain/match"
	"pickleball-ticker-service/internal/logging"
	"pickleball-ticker-service/internal/metrics"
	"pickleball-ticker-service/internal/providers/pbtrack"
	"pickleball-ticker-service/internal/store"
)

// liveFeeds keeps one websocket subscription running per followed match.
// The followed set is whatever the match cache currently holds: matches
// enter it when first fetched over HTTP and leave it when the refresher
// drops them, so subscriptions track the cache without extra bookkeeping.
type liveFeeds struct {
	cfg      pbtrack.LiveConfig
	cache    *store.MemoryStore
	logger   *slog.Logger
	recorder *metrics.Recorder
	scan     time.Duration

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
}

func newLiveFeeds(cfg config.Config, cache *store.MemoryStore, logger *slog.Logger, recorder *metrics.Recorder) *liveFeeds {
	if cfg.Provider != "pbtrack" || cfg.Pbtrack.LiveURL == "" {
		return nil
	}
	scan := cfg.RefreshInterval
	if scan <= 0 {
		scan = 15 * time.Second
	}
	return &liveFeeds{
		cfg:      pbtrack.LiveConfig{URL: cfg.Pbtrack.LiveURL, APIKey: cfg.Pbtrack.APIKey},
		cache:    cache,
		logger:   logger,
		recorder: recorder,
		scan:     scan,
		cancels:  map[string]context.CancelFunc{},
	}
}

// Start launches the reconciliation loop. Safe to call on a nil receiver
// so callers can skip the liveURL check.
func (l *liveFeeds) Start(ctx context.Context) {
	if l == nil {
		return
	}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ticker := time.NewTicker(l.scan)
		defer ticker.Stop()
		l.reconcile(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.reconcile(ctx)
			}
		}
	}()
}

// Stop cancels every subscription and waits for their goroutines.
func (l *liveFeeds) Stop(ctx context.Context) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	for _, cancel := range l.cancels {
		cancel()
	}
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *liveFeeds) reconcile(ctx context.Context) {
	followed := map[string]bool{}
	for _, id := range l.cache.MatchIDs() {
		followed[id] = true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for id, cancel := range l.cancels {
		if !followed[id] {
			cancel()
			delete(l.cancels, id)
		}
	}
	for id := range followed {
		if _, running := l.cancels[id]; running {
			continue
		}
		subCtx, cancel := context.WithCancel(ctx)
		l.cancels[id] = cancel
		l.wg.Add(1)
		go l.subscribe(subCtx, id)
	}
}

func (l *liveFeeds) subscribe(ctx context.Context, matchID string) {
	defer l.wg.Done()
	sub := pbtrack.NewLiveSubscriber(l.cfg, l.logger, l.apply)
	if err := sub.Run(ctx, matchID); err != nil && ctx.Err() == nil {
		logging.Warn(l.logger, "live subscription ended",
			slog.String(logging.FieldMatchID, matchID), "error", err)
	}
}

// apply folds a pushed games payload into the cached match, carrying the
// match-level metadata the games feed does not repeat.
func (l *liveFeeds) apply(matchID string, payload pbtrack.GamesPayload) {
	opts := pbtrack.NormalizeOptions{MatchID: matchID}
	if prev, ok := l.cache.GetMatch(matchID); ok {
		opts.TournamentName = prev.TournamentName
		opts.Rules = prev.Rules
		opts.BestOf = prev.BestOf
		opts.RoundOf = prev.RoundOf
		if len(prev.Games) > 0 {
			g := prev.Games[0]
			opts.TeamOne = domainmatch.TeamOption{Name: g.T1Name, Logo: g.T1Logo}
			opts.TeamTwo = domainmatch.TeamOption{Name: g.T2Name, Logo: g.T2Logo}
		}
	}

	m, err := pbtrack.Normalize(&payload, opts)
	if err != nil {
		logging.Warn(l.logger, "live payload rejected",
			slog.String(logging.FieldMatchID, matchID), "error", err)
		return
	}
	l.cache.SetMatch(m)
	l.recorder.RecordLiveUpdate("pbtrack")
}
