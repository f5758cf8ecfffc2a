package fixture

import (
	"context"

	domainmatch "pickleball-ticker-service/internal/domain/match"
)

// Provider returns a static match useful for local testing and bootstrapping.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// FetchMatch returns a deterministic example match. The requested ID is
// echoed back so downstream wiring behaves like the real provider.
func (p *Provider) FetchMatch(ctx context.Context, matchID string) (domainmatch.Match, error) {
	_ = ctx
	if matchID == "" {
		matchID = "fixture-1"
	}

	teamOne := domainmatch.TeamOption{Name: "Lakeside Smash", ShortName: "Lakeside", Logo: "/img/lakeside.png", TeamID: "team_1"}
	teamTwo := domainmatch.TeamOption{Name: "Harbor Dinks", ShortName: "Harbor", Logo: "/img/harbor.png", TeamID: "team_2"}

	return domainmatch.Match{
		MatchID:        matchID,
		TournamentName: "Fixture Invitational",
		BestOf:         3,
		Rules:          "First to 11 (win by 2)",
		Winning:        "Lakeside Smash leads 1-0",
		WinnerTeamID:   nil,
		Games: []domainmatch.Game{
			{
				Number:    1,
				Status:    domainmatch.StatusFinal,
				T1Name:    teamOne.Name,
				T1Score:   11,
				T1Logo:    teamOne.Logo,
				T1Players: []string{"Avery Cole", "Jordan Reyes"},
				T2Name:    teamTwo.Name,
				T2Score:   8,
				T2Logo:    teamTwo.Logo,
				T2Players: []string{"Sam Porter", "Riley Nakamura"},
			},
			{
				Number:    2,
				Status:    domainmatch.StatusInProgress,
				T1Name:    teamOne.Name,
				T1Score:   7,
				T1Logo:    teamOne.Logo,
				T1Players: []string{"Avery Cole", "Jordan Reyes"},
				T2Name:    teamTwo.Name,
				T2Score:   9,
				T2Logo:    teamTwo.Logo,
				T2Players: []string{"Sam Porter", "Riley Nakamura"},
			},
			{
				Number:    3,
				Status:    domainmatch.StatusScheduled,
				T1Name:    teamOne.Name,
				T1Logo:    teamOne.Logo,
				T1Players: []string{"Avery Cole", "Jordan Reyes"},
				T2Name:    teamTwo.Name,
				T2Logo:    teamTwo.Logo,
				T2Players: []string{"Sam Porter", "Riley Nakamura"},
			},
		},
	}, nil
}
