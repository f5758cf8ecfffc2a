package server

import (
	"log/slog"
	"time"

	"pickleball-ticker-service/internal/config"
	"pickleball-ticker-service/internal/metrics"
	"pickleball-ticker-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.MatchProvider {
	base := selectProvider(cfg, f.logger)
	// Shared rate limiter to respect upstream quota; live scores still
	// arrive over the websocket between poll windows.
	limited := providers.NewRateLimitedProvider(base, 10*time.Second, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), 0, 0)
}
