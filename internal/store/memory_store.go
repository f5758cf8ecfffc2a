package store

import (
	"encoding/json"
	"sync"
	"time"

	domainmatch "pickleball-ticker-service/internal/domain/match"
)

// TickerRecord is one persisted ticker configuration. Payload holds the
// flat sync snapshot exactly as the client sent it; last write wins.
type TickerRecord struct {
	ID        string          `json:"id"`
	Slug      string          `json:"slug,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// MemoryStore keeps a thread-safe snapshot of ticker configurations and
// canonical matches in memory. It backs the sync API when no database is
// configured and serves as the match cache either way.
type MemoryStore struct {
	mu      sync.RWMutex
	tickers map[string]TickerRecord
	slugs   map[string]string
	matches map[string]domainmatch.Match
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tickers: make(map[string]TickerRecord),
		slugs:   make(map[string]string),
		matches: make(map[string]domainmatch.Match),
	}
}

// GetTicker retrieves a ticker configuration by ID.
func (s *MemoryStore) GetTicker(id string) (TickerRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.tickers[id]
	return rec, ok, nil
}

// SaveTicker stores a ticker configuration, replacing any previous value.
func (s *MemoryStore) SaveTicker(rec TickerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.tickers[rec.ID]; ok && prev.Slug != "" && prev.Slug != rec.Slug {
		delete(s.slugs, prev.Slug)
	}
	s.tickers[rec.ID] = rec
	if rec.Slug != "" {
		s.slugs[rec.Slug] = rec.ID
	}
	return nil
}

// DeleteTicker removes a ticker configuration.
func (s *MemoryStore) DeleteTicker(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.tickers[id]; ok && rec.Slug != "" {
		delete(s.slugs, rec.Slug)
	}
	delete(s.tickers, id)
	return nil
}

// ResolveSlug maps a slug to its ticker ID.
func (s *MemoryStore) ResolveSlug(slug string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.slugs[slug]
	return id, ok, nil
}

// SetMatch caches a canonical match snapshot.
func (s *MemoryStore) SetMatch(m domainmatch.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matches[m.MatchID] = m
}

// GetMatch retrieves a cached canonical match by ID.
func (s *MemoryStore) GetMatch(id string) (domainmatch.Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	return m, ok
}

// MatchIDs returns the IDs of every cached match.
func (s *MemoryStore) MatchIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.matches))
	for id := range s.matches {
		ids = append(ids, id)
	}
	return ids
}

// DropMatch evicts a cached match.
func (s *MemoryStore) DropMatch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.matches, id)
}
