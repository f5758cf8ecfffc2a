package server

import (
	"log/slog"

	"pickleball-ticker-service/internal/config"
	"pickleball-ticker-service/internal/providers"
	"pickleball-ticker-service/internal/providers/fixture"
	"pickleball-ticker-service/internal/providers/pbtrack"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.MatchProvider {
	switch cfg.Provider {
	case "fixture", "":
		return fixture.New()
	case "pbtrack":
		return pbtrack.NewClient(pbtrack.Config{
			BaseURL: cfg.Pbtrack.BaseURL,
			APIKey:  cfg.Pbtrack.APIKey,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
