package pbtrack

import "time"

const providerName = "pbtrack"

const (
	defaultBaseURL     = "https://api.pbtrack.net/v1"
	defaultHTTPTimeout = 10 * time.Second
)

const (
	defaultTeamOneName = "Team One"
	defaultTeamTwoName = "Team Two"
	defaultTeamLogo    = "/img/team-placeholder.png"
	defaultRules       = "First to 11 (win by 2)"
	defaultBestOf      = 3

	// Games end at the target score only once the leader is ahead by at
	// least this much, regardless of what the upstream rules text claims.
	minWinMargin = 2
)
