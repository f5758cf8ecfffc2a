package ticker

import (
	"encoding/json"

	domainmatch "pickleball-ticker-service/internal/domain/match"
)

// Position is the badge logo offset in pixels.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Overrides holds per-field display text overrides. An empty string means
// "use the computed default" for that field.
type Overrides struct {
	HeaderTitle    string `json:"headerTitle"`
	HeaderSubtitle string `json:"headerSubtitle"`
	T1Name         string `json:"t1Name"`
	T1Players      string `json:"t1Players"`
	T1Score        string `json:"t1Score"`
	T2Name         string `json:"t2Name"`
	T2Players      string `json:"t2Players"`
	T2Score        string `json:"t2Score"`
	Footer         string `json:"footer"`
}

// State is the full display configuration for one ticker session. It is a
// value: actions produce new State values and never mutate in place. One
// logical session owns a State; callers serialize concurrent triggers.
type State struct {
	// Match data.
	MatchInfo       *domainmatch.Match `json:"matchInfo"`
	InputMatchID    string             `json:"inputMatchId"`
	ActiveMatchID   string             `json:"activeMatchId"`
	ActiveGameIndex int                `json:"activeGameIndex"`
	Loading         bool               `json:"loading"`
	ErrorMessage    string             `json:"errorMessage"`
	CachedGames     json.RawMessage    `json:"cachedGames,omitempty"`
	CachedMatchInfo json.RawMessage    `json:"cachedMatchInfo,omitempty"`

	// Theme colors. Always valid HSL triples.
	PrimaryColor     HSL  `json:"primaryColor"`
	SecondaryColor   HSL  `json:"secondaryColor"`
	ScoreBackground  HSL  `json:"scoreBackground"`
	BadgeBackground  HSL  `json:"badgeBackground"`
	TickerBackground HSL  `json:"tickerBackground"`
	TextColor        HSL  `json:"textColor"`
	ManualTextColor  bool `json:"manualTextColor"`

	// Theme flags.
	BadgeTransparent  bool `json:"badgeTransparent"`
	TickerTransparent bool `json:"tickerTransparent"`
	ShowBorder        bool `json:"showBorder"`
	FullTeamNames     bool `json:"fullTeamNames"`

	// Logo.
	LogoImage       string   `json:"logoImage"`
	LogoTransparent bool     `json:"logoTransparent"`
	HideDefaultLogo bool     `json:"hideDefaultLogo"`
	LogoPosition    Position `json:"logoPosition"`
	LogoScale       float64  `json:"logoScale"`
	TeamLogoScale   float64  `json:"teamLogoScale"`

	Overrides Overrides `json:"overrides"`
}

// NewState builds the initial state for a ticker session. Sources are
// layered per field, highest priority first: an incoming shared snapshot,
// a previously persisted theme, hardcoded defaults. Either source may be
// nil.
func NewState(shared *SyncPayload, persisted *ThemeSnapshot) State {
	s := defaultState()
	if persisted != nil {
		s = applyTheme(s, *persisted)
	}
	if shared != nil {
		s = applySync(s, *shared)
	}
	return s
}

// gameCount reports how many games the current match carries.
func (s State) gameCount() int {
	if s.MatchInfo == nil {
		return 0
	}
	return len(s.MatchInfo.Games)
}

// clampActiveIndex keeps the active game index inside the current games
// list. With no games the index pins to zero.
func clampActiveIndex(index, games int) int {
	if games <= 0 {
		return 0
	}
	return clampInt(index, 0, games-1)
}
