package testutil

import (
	"pickleball-ticker-service/internal/app/tickers"
	"pickleball-ticker-service/internal/store"
)

// NewTickerService builds a ticker service over a fresh in-memory store,
// returning both so tests can inspect what was persisted.
func NewTickerService() (*tickers.Service, *store.MemoryStore) {
	ms := store.NewMemoryStore()
	return tickers.NewService(ms, nil, nil), ms
}
