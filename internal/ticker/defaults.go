package ticker

const (
	defaultLogoScale = 1.0
	minScale         = 0.5
	maxScale         = 10.0
)

// Hardcoded theme defaults, the lowest-priority initialization layer.
var (
	defaultPrimaryColor     = HSL{H: 210, S: 64, L: 28}
	defaultSecondaryColor   = HSL{H: 0, S: 0, L: 100}
	defaultScoreBackground  = HSL{H: 0, S: 0, L: 13}
	defaultBadgeBackground  = HSL{H: 210, S: 64, L: 22}
	defaultTickerBackground = HSL{H: 0, S: 0, L: 98}
	defaultTextColor        = HSL{H: 0, S: 0, L: 100}
)

func defaultState() State {
	return State{
		PrimaryColor:     defaultPrimaryColor,
		SecondaryColor:   defaultSecondaryColor,
		ScoreBackground:  defaultScoreBackground,
		BadgeBackground:  defaultBadgeBackground,
		TickerBackground: defaultTickerBackground,
		TextColor:        defaultTextColor,
		LogoScale:        defaultLogoScale,
		TeamLogoScale:    defaultLogoScale,
	}
}
