package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"pickleball-ticker-service/internal/app/tickers"
	domainmatch "pickleball-ticker-service/internal/domain/match"
	"pickleball-ticker-service/internal/logging"
	"pickleball-ticker-service/internal/metrics"
	"pickleball-ticker-service/internal/providers"
	"pickleball-ticker-service/internal/refresher"
)

// Request bodies are ticker configuration documents; anything bigger than
// this is not a configuration.
const maxBodyBytes = 1 << 20

// MatchCache is the slice of the store the match endpoint needs.
type MatchCache interface {
	GetMatch(id string) (domainmatch.Match, bool)
	SetMatch(m domainmatch.Match)
}

// Handler wires HTTP routes to the ticker sync service and match cache.
type Handler struct {
	svc       *tickers.Service
	matches   MatchCache
	provider  providers.MatchProvider
	logger    *slog.Logger
	recorder  *metrics.Recorder
	storeName string
	statusFn  func() refresher.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc *tickers.Service, matches MatchCache, provider providers.MatchProvider, logger *slog.Logger, recorder *metrics.Recorder, storeName string, statusFn func() refresher.Status) *Handler {
	return &Handler{
		svc:       svc,
		matches:   matches,
		provider:  provider,
		logger:    logger,
		recorder:  recorder,
		storeName: storeName,
		statusFn:  statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	if h.statusFn().IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := h.statusFn().LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// GetTicker returns a stored ticker configuration.
func (h *Handler) GetTicker(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !validTickerID(id) {
		writeError(w, r, http.StatusBadRequest, "invalid ticker id", h.logger)
		return
	}

	rec, ok, err := h.svc.Get(id)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "storage unavailable", h.logger)
		return
	}
	if !ok {
		writeError(w, r, http.StatusNotFound, "ticker not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, rec, h.logger)
}

// PutTicker stores a ticker configuration under the given ID, replacing
// any previous value (last write wins).
func (h *Handler) PutTicker(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !validTickerID(id) {
		writeError(w, r, http.StatusBadRequest, "invalid ticker id", h.logger)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "unreadable body", h.logger)
		return
	}

	rec, err := h.svc.Save(id, r.URL.Query().Get("slug"), body)
	if err != nil {
		if errors.Is(err, tickers.ErrInvalidPayload) {
			writeError(w, r, http.StatusBadRequest, "payload is not a JSON object", h.logger)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "storage unavailable", h.logger)
		return
	}

	h.recorder.RecordTickerSave(h.storeName)
	if logger := loggerFromContext(r, h.logger); logger != nil {
		logger.Info("ticker saved", slog.String(logging.FieldTickerID, id))
	}
	writeJSON(w, http.StatusOK, rec, h.logger)
}

// CreateTicker stores a configuration under a new generated ID.
func (h *Handler) CreateTicker(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "unreadable body", h.logger)
		return
	}

	rec, err := h.svc.Create(r.URL.Query().Get("slug"), body)
	if err != nil {
		if errors.Is(err, tickers.ErrInvalidPayload) {
			writeError(w, r, http.StatusBadRequest, "payload is not a JSON object", h.logger)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "storage unavailable", h.logger)
		return
	}

	h.recorder.RecordTickerSave(h.storeName)
	writeJSON(w, http.StatusCreated, rec, h.logger)
}

// DeleteTicker removes a stored ticker configuration.
func (h *Handler) DeleteTicker(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !validTickerID(id) {
		writeError(w, r, http.StatusBadRequest, "invalid ticker id", h.logger)
		return
	}

	if err := h.svc.Delete(id); err != nil {
		writeError(w, r, http.StatusInternalServerError, "storage unavailable", h.logger)
		return
	}
	h.recorder.RecordTickerDelete(h.storeName)
	w.WriteHeader(http.StatusNoContent)
}

// GetTickerBySlug resolves a slug and returns the configuration it names.
func (h *Handler) GetTickerBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if !validTickerID(slug) {
		writeError(w, r, http.StatusBadRequest, "invalid slug", h.logger)
		return
	}

	id, ok, err := h.svc.ResolveSlug(slug)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "storage unavailable", h.logger)
		return
	}
	if !ok {
		writeError(w, r, http.StatusNotFound, "slug not found", h.logger)
		return
	}

	rec, ok, err := h.svc.Get(id)
	if err != nil || !ok {
		writeError(w, r, http.StatusNotFound, "ticker not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, rec, h.logger)
}

// GetMatch serves a canonical match, from cache when fresh enough and
// from the upstream provider on a miss. Fetched matches join the
// refresher's followed set.
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "invalid match id", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)

	if m, ok := h.matches.GetMatch(id); ok && r.URL.Query().Get("fresh") == "" {
		writeJSON(w, http.StatusOK, m, h.logger)
		return
	}

	if h.provider == nil {
		writeError(w, r, http.StatusNotFound, "match not found", h.logger)
		return
	}

	m, err := h.provider.FetchMatch(r.Context(), id)
	if err != nil {
		if _, ok := providers.AsInvalidPayloadError(err); ok {
			writeError(w, r, http.StatusBadGateway, "upstream sent an unusable match payload", h.logger)
			return
		}
		writeError(w, r, http.StatusBadGateway, "upstream match fetch failed", h.logger)
		return
	}

	h.matches.SetMatch(m)
	if logger != nil {
		logger.Info("match fetched", slog.String(logging.FieldMatchID, id), slog.Int(logging.FieldCount, len(m.Games)))
	}
	writeJSON(w, http.StatusOK, m, h.logger)
}

var validIDChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_"

func validTickerID(id string) bool {
	if id == "" || len(id) > 100 {
		return false
	}
	for _, c := range id {
		if !strings.ContainsRune(validIDChars, c) {
			return false
		}
	}
	return true
}
