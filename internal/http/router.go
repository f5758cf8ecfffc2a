package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"pickleball-ticker-service/internal/http/handlers"
	"pickleball-ticker-service/internal/http/middleware"
	"pickleball-ticker-service/internal/metrics"
)

// RouterDeps carries everything the router needs beyond the handlers.
type RouterDeps struct {
	Logger      *slog.Logger
	Recorder    *metrics.Recorder
	CORSOrigins []string
}

// NewRouter builds the service's HTTP routing table and wraps it with
// request logging and CORS. The overlay frontend is served from a
// different origin, so CORS is part of the contract, not a nicety.
func NewRouter(h *handlers.Handler, deps RouterDeps) nethttp.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", h.Ready).Methods(nethttp.MethodGet)

	r.HandleFunc("/tickers", h.CreateTicker).Methods(nethttp.MethodPost)
	r.HandleFunc("/tickers/slug/{slug}", h.GetTickerBySlug).Methods(nethttp.MethodGet)
	r.HandleFunc("/tickers/{id}", h.GetTicker).Methods(nethttp.MethodGet)
	r.HandleFunc("/tickers/{id}", h.PutTicker).Methods(nethttp.MethodPut)
	r.HandleFunc("/tickers/{id}", h.DeleteTicker).Methods(nethttp.MethodDelete)

	r.HandleFunc("/matches/{id}", h.GetMatch).Methods(nethttp.MethodGet)

	handler := middleware.LoggingMiddleware(deps.Logger, deps.Recorder, r)

	c := cors.New(cors.Options{
		AllowedOrigins: deps.CORSOrigins,
		AllowedMethods: []string{
			nethttp.MethodGet,
			nethttp.MethodPost,
			nethttp.MethodPut,
			nethttp.MethodDelete,
			nethttp.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-Id"},
		MaxAge:         300,
	})
	return c.Handler(handler)
}
