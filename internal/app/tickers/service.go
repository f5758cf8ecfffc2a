package tickers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"pickleball-ticker-service/internal/logging"
	"pickleball-ticker-service/internal/store"
	"pickleball-ticker-service/internal/ticker"
)

// ErrInvalidPayload indicates a configuration document that is not a JSON
// object. Anything parseable is accepted; unknown keys are dropped and
// out-of-range values clamped.
var ErrInvalidPayload = errors.New("ticker payload is not a JSON object")

// Store defines the contract for persisting and retrieving ticker
// configurations.
type Store interface {
	GetTicker(id string) (store.TickerRecord, bool, error)
	SaveTicker(rec store.TickerRecord) error
	DeleteTicker(id string) error
	ResolveSlug(slug string) (string, bool, error)
}

// ThemeStore persists the themed subset of a configuration outside the
// primary store, so a wiped database still restores a ticker's look.
type ThemeStore interface {
	Load(tickerID string) (ticker.ThemeSnapshot, bool)
	Save(tickerID string, snapshot ticker.ThemeSnapshot) error
	Delete(tickerID string) error
}

// Service coordinates ticker configuration operations using a Store.
// Concurrent saves to the same ticker follow last-write-wins; there is no
// merge conflict detection.
type Service struct {
	store  Store
	themes ThemeStore
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewService constructs a Service with the provided Store. themes may be
// nil, in which case theme snapshots are not persisted separately.
func NewService(s Store, themes ThemeStore, logger *slog.Logger) *Service {
	return &Service{
		store:  s,
		themes: themes,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Get returns a stored ticker configuration. On a primary-store miss it
// falls back to the persisted theme snapshot, returning a configuration
// carrying only themed fields.
func (s *Service) Get(id string) (store.TickerRecord, bool, error) {
	rec, ok, err := s.store.GetTicker(id)
	if err != nil || ok {
		return rec, ok, err
	}
	if s.themes == nil {
		return store.TickerRecord{}, false, nil
	}

	theme, found := s.themes.Load(id)
	if !found {
		return store.TickerRecord{}, false, nil
	}
	payload := ticker.NewState(nil, &theme).SyncPayload()
	data, err := json.Marshal(payload)
	if err != nil {
		return store.TickerRecord{}, false, err
	}
	return store.TickerRecord{ID: id, Payload: data}, true, nil
}

// Save normalizes and stores a configuration snapshot under the given ID.
// The payload passes through the state machine's construction rules, so
// whatever lands in the store already has colors, scales, and indices
// inside their valid domains.
func (s *Service) Save(id, slug string, payload []byte) (store.TickerRecord, error) {
	snapshot, ok := ticker.ParseSyncPayload(payload)
	if !ok {
		return store.TickerRecord{}, ErrInvalidPayload
	}

	state := ticker.NewState(&snapshot, nil)
	data, err := json.Marshal(state.SyncPayload())
	if err != nil {
		return store.TickerRecord{}, err
	}

	rec := store.TickerRecord{
		ID:        id,
		Slug:      slug,
		Payload:   data,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.store.SaveTicker(rec); err != nil {
		return store.TickerRecord{}, err
	}

	if s.themes != nil {
		if err := s.themes.Save(id, state.ThemeSnapshot()); err != nil {
			logging.Warn(s.logger, "theme snapshot save failed", slog.String(logging.FieldTickerID, id), "error", err)
		}
	}
	return rec, nil
}

// Create stores a configuration under a freshly generated ticker ID.
func (s *Service) Create(slug string, payload []byte) (store.TickerRecord, error) {
	return s.Save(s.newID(), slug, payload)
}

// Delete removes a stored configuration and its persisted theme.
func (s *Service) Delete(id string) error {
	if err := s.store.DeleteTicker(id); err != nil {
		return err
	}
	if s.themes != nil {
		if err := s.themes.Delete(id); err != nil {
			logging.Warn(s.logger, "theme snapshot delete failed", slog.String(logging.FieldTickerID, id), "error", err)
		}
	}
	return nil
}

// ResolveSlug maps a human-editable slug to its ticker ID.
func (s *Service) ResolveSlug(slug string) (string, bool, error) {
	return s.store.ResolveSlug(slug)
}
