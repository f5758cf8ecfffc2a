package config

import "time"

const (
	envPort            = "PORT"
	envProvider        = "PROVIDER"
	envRefreshInterval = "REFRESH_INTERVAL"
	envDatabaseURL     = "DATABASE_URL"
	envThemesPath      = "THEMES_PATH"
	envCORSOrigins     = "CORS_ORIGINS"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort     = "4100"
	defaultProvider = "fixture"
	// Conservative default refresh interval to respect upstream quotas.
	defaultRefreshInterval = 15 * Duration(time.Second)
	defaultThemesPath      = "data/themes"
	defaultMetricsPort     = "9090"
)

// Browser tickers are served from anywhere during development.
var defaultCORSOrigins = []string{"*"}
