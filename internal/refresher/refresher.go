package refresher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domainmatch "pickleball-ticker-service/internal/domain/match"
	"pickleball-ticker-service/internal/logging"
	"pickleball-ticker-service/internal/metrics"
	"pickleball-ticker-service/internal/providers"
)

const defaultInterval = 15 * time.Second

// MatchCache is where refreshed canonical matches land.
type MatchCache interface {
	MatchIDs() []string
	SetMatch(m domainmatch.Match)
	DropMatch(id string)
}

// Refresher re-fetches every followed match on an interval so the sync
// API serves reasonably fresh canonical snapshots between live pushes.
type Refresher struct {
	provider providers.MatchProvider
	cache    MatchCache
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the refresher has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Refresher with sane defaults.
func New(provider providers.MatchProvider, cache MatchCache, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Refresher{
		provider: provider,
		cache:    cache,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins refreshing until the context is cancelled or Stop is called.
func (r *Refresher) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	r.ticker = time.NewTicker(r.interval)

	go func() {
		r.logInfo("refresher started", slog.Int64(logging.FieldDurationMS, r.interval.Milliseconds()))
		// Initial cycle to warm data on boot.
		r.refreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				r.stopTicker()
				r.logInfo("refresher stopped")
				return
			case <-r.done:
				r.stopTicker()
				r.logInfo("refresher stopped")
				return
			case <-r.ticker.C:
				r.refreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop.
func (r *Refresher) Stop(ctx context.Context) error {
	_ = ctx
	r.stopOnce.Do(func() {
		close(r.done)
		r.stopTicker()
	})
	return nil
}

func (r *Refresher) refreshOnce(ctx context.Context) {
	start := time.Now()
	r.recordAttempt(start)

	var lastErr error
	ids := r.cache.MatchIDs()
	refreshed := 0
	for _, id := range ids {
		m, err := r.provider.FetchMatch(ctx, id)
		if err != nil {
			lastErr = err
			r.logError("refresher fetch failed", err, slog.String(logging.FieldMatchID, id))
			if _, ok := providers.AsInvalidPayloadError(err); ok {
				// The upstream will keep sending garbage for this match;
				// stop following it.
				r.cache.DropMatch(id)
			}
			continue
		}
		r.cache.SetMatch(m)
		refreshed++
	}

	if r.metrics != nil {
		r.metrics.RecordRefreshCycle(time.Since(start), lastErr)
	}
	if lastErr != nil {
		r.recordFailure(lastErr, start)
		return
	}
	r.recordSuccess(start)
	r.logInfo("refresher cycle complete",
		logging.FieldCount, refreshed,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (r *Refresher) stopTicker() {
	if r.ticker != nil {
		r.ticker.Stop()
	}
}

func (r *Refresher) logInfo(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}

func (r *Refresher) logError(msg string, err error, attrs ...any) {
	if r.logger != nil {
		r.logger.Error(msg, append(attrs, "error", err)...)
	}
}

func (r *Refresher) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Refresher) recordSuccess(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
}

func (r *Refresher) recordFailure(err error, at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.status.LastAttempt = at
}

// Status returns a snapshot of the refresher's recent health.
func (r *Refresher) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}

// Provider exposes the underlying provider (primarily for cleanup in callers).
func (r *Refresher) Provider() providers.MatchProvider {
	return r.provider
}
