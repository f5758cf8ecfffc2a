package config

const (
	envPbtrackBaseURL = "PBTRACK_BASE_URL"
	envPbtrackAPIKey  = "PBTRACK_API_KEY"
	envPbtrackLiveURL = "PBTRACK_LIVE_URL"

	defaultPbtrackBaseURL = "https://api.pbtrack.net/v1"
	defaultPbtrackLiveURL = "wss://api.pbtrack.net/v1/live"
)

// PbtrackConfig controls how we talk to the tournament API.
type PbtrackConfig struct {
	BaseURL string
	APIKey  string
	LiveURL string
}

func loadPbtrack() PbtrackConfig {
	return PbtrackConfig{
		BaseURL: envOrDefault(envPbtrackBaseURL, defaultPbtrackBaseURL),
		APIKey:  envOrDefault(envPbtrackAPIKey, ""),
		LiveURL: envOrDefault(envPbtrackLiveURL, defaultPbtrackLiveURL),
	}
}
