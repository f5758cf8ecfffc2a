package match

// GameStatus mirrors the shared contract for game lifecycle states.
type GameStatus string

const (
	StatusScheduled  GameStatus = "scheduled"
	StatusInProgress GameStatus = "in_progress"
	StatusFinal      GameStatus = "final"
)

// TeamOption is the fully-resolved team shape used across games. Every
// field is always populated; defaults fill anything the upstream payload
// leaves out.
type TeamOption struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Logo      string `json:"logo"`
	TeamID    string `json:"teamId"`
}

// Game is one normalized game within a match. Number is assigned by
// position in the source game list (1-based), never taken from upstream.
type Game struct {
	Number    int        `json:"number"`
	Status    GameStatus `json:"status"`
	T1Name    string     `json:"t1_name"`
	T1Score   int        `json:"t1_score"`
	T1Logo    string     `json:"t1_logo"`
	T1Players []string   `json:"t1_players"`
	T2Name    string     `json:"t2_name"`
	T2Score   int        `json:"t2_score"`
	T2Logo    string     `json:"t2_logo"`
	T2Players []string   `json:"t2_players"`
}

// Match is the canonical match shape exposed by the service, independent
// of any upstream API's payload layout. Rules always documents a win
// margin of at least 2.
type Match struct {
	MatchID         string  `json:"match_id"`
	TournamentName  string  `json:"tournament_name"`
	BestOf          int     `json:"best_of"`
	Rules           string  `json:"rules"`
	Winning         string  `json:"winning"`
	WinnerTeamID    *string `json:"winner_team_id"`
	Games           []Game  `json:"games"`
	RoundOf         int     `json:"roundOf,omitempty"`
	ActiveGameIndex *int    `json:"activeGameIndex,omitempty"`
}

// TeamMetadata carries team and event details extracted from the
// match-info payload, which arrives separately from the games payload.
type TeamMetadata struct {
	TeamOne        *TeamOption `json:"teamOne,omitempty"`
	TeamTwo        *TeamOption `json:"teamTwo,omitempty"`
	TournamentName string      `json:"tournamentName,omitempty"`
	EventType      string      `json:"eventType,omitempty"`
	BracketName    string      `json:"bracketName,omitempty"`
	NumTeams       int         `json:"numTeams,omitempty"`
}
