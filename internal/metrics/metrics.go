package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

type tickerStats struct {
	saves       int
	deletes     int
	liveUpdates int
}

// Recorder captures lightweight, in-memory metrics about provider calls
// and ticker sync activity. It is intentionally simple so it can be
// swapped for a real backend later.
type Recorder struct {
	mu      sync.Mutex
	stats   map[string]*providerStats
	tickers tickerStats
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordTickerSave tracks one persisted ticker configuration write.
func (r *Recorder) RecordTickerSave(store string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.tickers.saves++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordTickerSave(store)
	}
}

// RecordTickerDelete tracks one ticker configuration removal.
func (r *Recorder) RecordTickerDelete(store string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.tickers.deletes++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordTickerDelete(store)
	}
}

// RecordLiveUpdate tracks one games payload delivered by the live feed.
func (r *Recorder) RecordLiveUpdate(provider string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.tickers.liveUpdates++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordLiveUpdate(provider)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordRefreshCycle tracks match refresher cycles and errors.
func (r *Recorder) RecordRefreshCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordRefresh(duration, err)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// TickerSaves returns the total recorded configuration writes.
func (r *Recorder) TickerSaves() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tickers.saves
}

// LiveUpdates returns the total recorded live feed deliveries.
func (r *Recorder) LiveUpdates() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tickers.liveUpdates
}

// Snapshot is a copy of the current stats for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(provider)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

func (r *Recorder) ensureStats(provider string) *providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

func (r *Recorder) snapshot(provider string) providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[provider]; ok && stats != nil {
		return *stats
	}
	return providerStats{}
}
