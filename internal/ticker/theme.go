package ticker

import "encoding/json"

// ThemeSnapshot is the persisted subset of a ticker's state: colors,
// toggles, logo configuration, and text overrides. Match data and the
// loading/error flags deliberately never persist.
type ThemeSnapshot struct {
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

// ThemeSnapshot extracts the full persisted subset from the state.
func (s State) ThemeSnapshot() ThemeSnapshot {
	return ThemeSnapshot{
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

// Fingerprint returns a stable serialization of exactly the persisted
// subset, so callers can detect "should persist now" without diffing
// whole states.
func (s State) Fingerprint() string {
	data, err := json.Marshal(s.ThemeSnapshot())
	if err != nil {
		return ""
	}
	return string(data)
}

// ParseTheme decodes a persisted theme snapshot. Malformed or wrong-shape
// data is treated as absent; no error reaches the caller.
func ParseTheme(data []byte) (ThemeSnapshot, bool) {
	var t ThemeSnapshot
	if len(data) == 0 || json.Unmarshal(data, &t) != nil {
		return ThemeSnapshot{}, false
	}
	return t, true
}

// applyTheme merges a persisted theme into the state, field by field,
// with the same normalization as sync merges.
func applyTheme(s State, t ThemeSnapshot) State {
	if t.PrimaryColor != nil {
		s.PrimaryColor = clampHSL(*t.PrimaryColor)
	}
	if t.SecondaryColor != nil {
		s.SecondaryColor = clampHSL(*t.SecondaryColor)
	}
	if t.ScoreBackground != nil {
		s.ScoreBackground = clampHSL(*t.ScoreBackground)
	}
	if t.BadgeBackground != nil {
		s.BadgeBackground = clampHSL(*t.BadgeBackground)
	}
	if t.TickerBackground != nil {
		s.TickerBackground = clampHSL(*t.TickerBackground)
	}
	if t.TextColor != nil {
		s.TextColor = clampHSL(*t.TextColor)
	}
	if t.ManualTextColor != nil {
		s.ManualTextColor = *t.ManualTextColor
	}
	if t.BadgeTransparent != nil {
		s.BadgeTransparent = *t.BadgeTransparent
	}
	if t.TickerTransparent != nil {
		s.TickerTransparent = *t.TickerTransparent
	}
	if t.ShowBorder != nil {
		s.ShowBorder = *t.ShowBorder
	}
	if t.FullTeamNames != nil {
		s.FullTeamNames = *t.FullTeamNames
	}
	if t.LogoImage != nil {
		s.LogoImage = *t.LogoImage
	}
	if t.LogoTransparent != nil {
		s.LogoTransparent = *t.LogoTransparent
	}
	if t.HideDefaultLogo != nil {
		s.HideDefaultLogo = *t.HideDefaultLogo
	}
	if t.LogoPosition != nil {
		s.LogoPosition = *t.LogoPosition
	}
	if t.LogoScale != nil {
		s.LogoScale = clampScale(*t.LogoScale)
	}
	if t.TeamLogoScale != nil {
		s.TeamLogoScale = clampScale(*t.TeamLogoScale)
	}
	if t.Overrides != nil {
		s.Overrides = *t.Overrides
	}
	return s
}
