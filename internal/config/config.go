package config

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	Provider        string
	RefreshInterval Duration
	DatabaseURL     string
	ThemesPath      string
	CORSOrigins     []string
	Pbtrack         PbtrackConfig
	Metrics         MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		Provider:        envOrDefault(envProvider, defaultProvider),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		DatabaseURL:     envOrDefault(envDatabaseURL, ""),
		ThemesPath:      envOrDefault(envThemesPath, defaultThemesPath),
		CORSOrigins:     listEnvOrDefault(envCORSOrigins, defaultCORSOrigins),
		Pbtrack:         loadPbtrack(),
		Metrics:         loadMetrics(),
	}
}
