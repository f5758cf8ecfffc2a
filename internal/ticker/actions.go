package ticker

import (
	"math"

	domainmatch "pickleball-ticker-service/internal/domain/match"
)

// ColorField names a color slot in State.
type ColorField string

const (
	ColorPrimary          ColorField = "primaryColor"
	ColorSecondary        ColorField = "secondaryColor"
	ColorScoreBackground  ColorField = "scoreBackground"
	ColorBadgeBackground  ColorField = "badgeBackground"
	ColorTickerBackground ColorField = "tickerBackground"
	ColorText             ColorField = "textColor"
)

// FlagField names a boolean toggle in State.
type FlagField string

const (
	FlagManualTextColor   FlagField = "manualTextColor"
	FlagBadgeTransparent  FlagField = "badgeTransparent"
	FlagTickerTransparent FlagField = "tickerTransparent"
	FlagShowBorder        FlagField = "showBorder"
	FlagFullTeamNames     FlagField = "fullTeamNames"
	FlagLogoTransparent   FlagField = "logoTransparent"
	FlagHideDefaultLogo   FlagField = "hideDefaultLogo"
)

// OverrideField names a text-override slot in State.
type OverrideField string

const (
	OverrideHeaderTitle    OverrideField = "headerTitle"
	OverrideHeaderSubtitle OverrideField = "headerSubtitle"
	OverrideT1Name         OverrideField = "t1Name"
	OverrideT1Players      OverrideField = "t1Players"
	OverrideT1Score        OverrideField = "t1Score"
	OverrideT2Name         OverrideField = "t2Name"
	OverrideT2Players      OverrideField = "t2Players"
	OverrideT2Score        OverrideField = "t2Score"
	OverrideFooter         OverrideField = "footer"
)

// Action is the closed set of state transitions. Every variant is handled
// exhaustively by Apply; no action fails, invalid inputs are normalized or
// clamped instead.
type Action interface{ isAction() }

// SetMatch replaces the match record. A nil match clears it.
type SetMatch struct{ Match *domainmatch.Match }

// SetActiveGame changes which game is displayed.
type SetActiveGame struct{ Index int }

// SetInputMatchID records the match id typed by the operator.
type SetInputMatchID struct{ ID string }

// SetActiveMatchID records the match id currently being followed.
type SetActiveMatchID struct{ ID string }

// SetLoading toggles the match-fetch loading flag.
type SetLoading struct{ Loading bool }

// SetError records a user-facing fetch error ("" clears it).
type SetError struct{ Message string }

// SetColor replaces one theme color.
type SetColor struct {
	Field ColorField
	Value HSL
}

// SetFlag replaces one boolean toggle.
type SetFlag struct {
	Field FlagField
	Value bool
}

// SetOverride replaces one text override ("" means no override).
type SetOverride struct {
	Field OverrideField
	Value string
}

// ResetOverrides clears every text override.
type ResetOverrides struct{}

// SetLogoImage replaces the uploaded badge logo image data.
type SetLogoImage struct{ Data string }

// SetLogoPosition moves the badge logo.
type SetLogoPosition struct{ Position Position }

// SetLogoScale rescales the badge logo.
type SetLogoScale struct{ Scale float64 }

// SetTeamLogoScale rescales the team logos.
type SetTeamLogoScale struct{ Scale float64 }

// ApplySync merges a partial external snapshot into the state.
type ApplySync struct{ Payload SyncPayload }

func (SetMatch) isAction()         {}
func (SetActiveGame) isAction()    {}
func (SetInputMatchID) isAction()  {}
func (SetActiveMatchID) isAction() {}
func (SetLoading) isAction()       {}
func (SetError) isAction()         {}
func (SetColor) isAction()         {}
func (SetFlag) isAction()          {}
func (SetOverride) isAction()      {}
func (ResetOverrides) isAction()   {}
func (SetLogoImage) isAction()     {}
func (SetLogoPosition) isAction()  {}
func (SetLogoScale) isAction()     {}
func (SetTeamLogoScale) isAction() {}
func (ApplySync) isAction()        {}

// Apply produces the next state for an action. It never mutates s and
// never fails; unknown inputs fall through to the unchanged state.
func Apply(s State, a Action) State {
	switch a := a.(type) {
	case SetMatch:
		return applyMatch(s, a.Match)
	case SetActiveGame:
		if s.gameCount() == 0 {
			return s
		}
		s.ActiveGameIndex = clampActiveIndex(a.Index, s.gameCount())
		return s
	case SetInputMatchID:
		s.InputMatchID = a.ID
		return s
	case SetActiveMatchID:
		s.ActiveMatchID = a.ID
		return s
	case SetLoading:
		s.Loading = a.Loading
		return s
	case SetError:
		s.ErrorMessage = a.Message
		return s
	case SetColor:
		return applyColor(s, a.Field, a.Value)
	case SetFlag:
		return applyFlag(s, a.Field, a.Value)
	case SetOverride:
		return applyOverride(s, a.Field, a.Value)
	case ResetOverrides:
		s.Overrides = Overrides{}
		return s
	case SetLogoImage:
		s.LogoImage = a.Data
		return s
	case SetLogoPosition:
		s.LogoPosition = a.Position
		return s
	case SetLogoScale:
		s.LogoScale = clampScale(a.Scale)
		return s
	case SetTeamLogoScale:
		s.TeamLogoScale = clampScale(a.Scale)
		return s
	case ApplySync:
		return applySync(s, a.Payload)
	default:
		return s
	}
}

// applyMatch replaces the match record. When the incoming record carries
// no explicit active-game index the previously active index is preserved,
// clamped to the new games list.
func applyMatch(s State, m *domainmatch.Match) State {
	if m == nil {
		s.MatchInfo = nil
		return s
	}
	copied := *m
	s.MatchInfo = &copied
	if copied.ActiveGameIndex != nil {
		s.ActiveGameIndex = clampActiveIndex(*copied.ActiveGameIndex, len(copied.Games))
	} else {
		s.ActiveGameIndex = clampActiveIndex(s.ActiveGameIndex, len(copied.Games))
	}
	return s
}

func applyColor(s State, field ColorField, value HSL) State {
	value = clampHSL(value)
	switch field {
	case ColorPrimary:
		s.PrimaryColor = value
	case ColorSecondary:
		s.SecondaryColor = value
	case ColorScoreBackground:
		s.ScoreBackground = value
	case ColorBadgeBackground:
		s.BadgeBackground = value
	case ColorTickerBackground:
		s.TickerBackground = value
	case ColorText:
		s.TextColor = value
	}
	return s
}

func applyFlag(s State, field FlagField, value bool) State {
	switch field {
	case FlagManualTextColor:
		s.ManualTextColor = value
	case FlagBadgeTransparent:
		s.BadgeTransparent = value
	case FlagTickerTransparent:
		s.TickerTransparent = value
	case FlagShowBorder:
		s.ShowBorder = value
	case FlagFullTeamNames:
		s.FullTeamNames = value
	case FlagLogoTransparent:
		s.LogoTransparent = value
	case FlagHideDefaultLogo:
		s.HideDefaultLogo = value
	}
	return s
}

func applyOverride(s State, field OverrideField, value string) State {
	switch field {
	case OverrideHeaderTitle:
		s.Overrides.HeaderTitle = value
	case OverrideHeaderSubtitle:
		s.Overrides.HeaderSubtitle = value
	case OverrideT1Name:
		s.Overrides.T1Name = value
	case OverrideT1Players:
		s.Overrides.T1Players = value
	case OverrideT1Score:
		s.Overrides.T1Score = value
	case OverrideT2Name:
		s.Overrides.T2Name = value
	case OverrideT2Players:
		s.Overrides.T2Players = value
	case OverrideT2Score:
		s.Overrides.T2Score = value
	case OverrideFooter:
		s.Overrides.Footer = value
	}
	return s
}

// clampScale keeps scale factors inside the valid range. Non-finite input
// falls back to the default scale rather than a clamp boundary.
func clampScale(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return defaultLogoScale
	}
	if v < minScale {
		return minScale
	}
	if v > maxScale {
		return maxScale
	}
	return v
}
