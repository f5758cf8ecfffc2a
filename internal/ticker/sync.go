package ticker

import (
	"encoding/json"

	domainmatch "pickleball-ticker-service/internal/domain/match"
)

// SyncPayload is the wire shape exchanged with the sync server and with
// other ticker sessions. Every field is optional; absent fields leave the
// corresponding state untouched when merged. Unrecognized keys in an
// incoming document are ignored by JSON decoding.
type SyncPayload struct {
	MatchInfo       *domainmatch.Match `json:"matchInfo,omitempty"`
	InputMatchID    *string            `json:"inputMatchId,omitempty"`
	ActiveMatchID   *string            `json:"activeMatchId,omitempty"`
	ActiveGameIndex *int               `json:"activeGameIndex,omitempty"`

	PrimaryColor     *HSL  `json:"primaryColor,omitempty"`
	SecondaryColor   *HSL  `json:"secondaryColor,omitempty"`
	ScoreBackground  *HSL  `json:"scoreBackground,omitempty"`
	BadgeBackground  *HSL  `json:"badgeBackground,omitempty"`
	TickerBackground *HSL  `json:"tickerBackground,omitempty"`
	TextColor        *HSL  `json:"textColor,omitempty"`
	ManualTextColor  *bool `json:"manualTextColor,omitempty"`

	BadgeTransparent  *bool `json:"badgeTransparent,omitempty"`
	TickerTransparent *bool `json:"tickerTransparent,omitempty"`
	ShowBorder        *bool `json:"showBorder,omitempty"`
	FullTeamNames     *bool `json:"fullTeamNames,omitempty"`

	LogoImage       *string   `json:"logoImage,omitempty"`
	LogoTransparent *bool     `json:"logoTransparent,omitempty"`
	HideDefaultLogo *bool     `json:"hideDefaultLogo,omitempty"`
	LogoPosition    *Position `json:"logoPosition,omitempty"`
	LogoScale       *float64  `json:"logoScale,omitempty"`
	TeamLogoScale   *float64  `json:"teamLogoScale,omitempty"`

	Overrides *Overrides `json:"tickerOverrides,omitempty"`
}

// ParseSyncPayload decodes a sync snapshot. Malformed or wrong-shape data
// is treated as absent, never an error.
func ParseSyncPayload(data []byte) (SyncPayload, bool) {
	var p SyncPayload
	if len(data) == 0 || json.Unmarshal(data, &p) != nil {
		return SyncPayload{}, false
	}
	return p, true
}

// SyncPayload builds the full outgoing snapshot for this state, the
// "build payload" operation consumed by the sync transport.
func (s State) SyncPayload() SyncPayload {
	return SyncPayload{
		MatchInfo:         s.MatchInfo,
		InputMatchID:      &s.InputMatchID,
		ActiveMatchID:     &s.ActiveMatchID,
		ActiveGameIndex:   &s.ActiveGameIndex,
		PrimaryColor:      &s.PrimaryColor,
		SecondaryColor:    &s.SecondaryColor,
		ScoreBackground:   &s.ScoreBackground,
		BadgeBackground:   &s.BadgeBackground,
		TickerBackground:  &s.TickerBackground,
		TextColor:         &s.TextColor,
		ManualTextColor:   &s.ManualTextColor,
		BadgeTransparent:  &s.BadgeTransparent,
		TickerTransparent: &s.TickerTransparent,
		ShowBorder:        &s.ShowBorder,
		FullTeamNames:     &s.FullTeamNames,
		LogoImage:         &s.LogoImage,
		LogoTransparent:   &s.LogoTransparent,
		HideDefaultLogo:   &s.HideDefaultLogo,
		LogoPosition:      &s.LogoPosition,
		LogoScale:         &s.LogoScale,
		TeamLogoScale:     &s.TeamLogoScale,
		Overrides:         &s.Overrides,
	}
}

// applySync merges a partial snapshot into the state. Each present field
// overwrites its counterpart using the same normalization and clamping as
// initial construction; absent fields are left untouched.
func applySync(s State, p SyncPayload) State {
	if p.MatchInfo != nil {
		s = applyMatch(s, p.MatchInfo)
	}
	if p.InputMatchID != nil {
		s.InputMatchID = *p.InputMatchID
	}
	if p.ActiveMatchID != nil {
		s.ActiveMatchID = *p.ActiveMatchID
	}
	if p.ActiveGameIndex != nil {
		s.ActiveGameIndex = clampActiveIndex(*p.ActiveGameIndex, s.gameCount())
	}

	if p.PrimaryColor != nil {
		s.PrimaryColor = clampHSL(*p.PrimaryColor)
	}
	if p.SecondaryColor != nil {
		s.SecondaryColor = clampHSL(*p.SecondaryColor)
	}
	if p.ScoreBackground != nil {
		s.ScoreBackground = clampHSL(*p.ScoreBackground)
	}
	if p.BadgeBackground != nil {
		s.BadgeBackground = clampHSL(*p.BadgeBackground)
	}
	if p.TickerBackground != nil {
		s.TickerBackground = clampHSL(*p.TickerBackground)
	}
	if p.TextColor != nil {
		s.TextColor = clampHSL(*p.TextColor)
	}
	if p.ManualTextColor != nil {
		s.ManualTextColor = *p.ManualTextColor
	}

	if p.BadgeTransparent != nil {
		s.BadgeTransparent = *p.BadgeTransparent
	}
	if p.TickerTransparent != nil {
		s.TickerTransparent = *p.TickerTransparent
	}
	if p.ShowBorder != nil {
		s.ShowBorder = *p.ShowBorder
	}
	if p.FullTeamNames != nil {
		s.FullTeamNames = *p.FullTeamNames
	}

	if p.LogoImage != nil {
		s.LogoImage = *p.LogoImage
	}
	if p.LogoTransparent != nil {
		s.LogoTransparent = *p.LogoTransparent
	}
	if p.HideDefaultLogo != nil {
		s.HideDefaultLogo = *p.HideDefaultLogo
	}
	if p.LogoPosition != nil {
		s.LogoPosition = *p.LogoPosition
	}
	if p.LogoScale != nil {
		s.LogoScale = clampScale(*p.LogoScale)
	}
	if p.TeamLogoScale != nil {
		s.TeamLogoScale = clampScale(*p.TeamLogoScale)
	}

	if p.Overrides != nil {
		s.Overrides = *p.Overrides
	}
	return s
}
