package pbtrack

// Upstream payload shapes. Everything is optional; pointers distinguish
// "absent" from zero values, which matters for score/winner handling.

type rawPlayer struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type rawGame struct {
	T1Score   *int        `json:"t1score"`
	T2Score   *int        `json:"t2score"`
	Winner    *int        `json:"winner"`
	T1Players []rawPlayer `json:"t1_players"`
	T2Players []rawPlayer `json:"t2_players"`
}

type rawGamesInfo struct {
	Games       []rawGame `json:"games"`
	TargetScore *int      `json:"target_score"`
	WinMargin   *int      `json:"win_margin"`
	Rules       *string   `json:"rules"`
	RoundOf     *int      `json:"round_of"`
	TotalGames  *int      `json:"total_games"`
	Winner      *int      `json:"winner"`
	T1Wins      *int      `json:"t1_wins"`
	T2Wins      *int      `json:"t2_wins"`
}

// GamesPayload is the games feed for one match, delivered by the initial
// fetch and re-delivered verbatim by live updates.
type GamesPayload struct {
	Info *rawGamesInfo `json:"info"`
}

type rawTeam struct {
	Ind               *int    `json:"ind"`
	TeamName          *string `json:"team_name"`
	UniversityName    *string `json:"university_name"`
	UniversityPicture *string `json:"university_picture"`
}

type rawMatchInfo struct {
	T1          *rawTeam `json:"t1"`
	T2          *rawTeam `json:"t2"`
	Tournament  *string  `json:"tournament"`
	EventType   *string  `json:"event_type"`
	BracketName *string  `json:"bracket_name"`
	NumTeams    *int     `json:"num_teams"`
}

// TeamsPayload is the match-info feed, delivered once per match load from
// an endpoint independent of the games feed.
type TeamsPayload struct {
	MatchInfo *rawMatchInfo `json:"match_info"`
}
