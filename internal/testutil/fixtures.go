package testutil

import (
	domainmatch "pickleball-ticker-service/internal/domain/match"
)

// SampleMatch returns a minimal in-progress match fixture with the provided id.
func SampleMatch(id string) domainmatch.Match {
	return domainmatch.Match{
		MatchID:        id,
		TournamentName: "Test Open",
		BestOf:         3,
		Rules:          "First to 11 (win by 2)",
		Games: []domainmatch.Game{
			{
				Number:  1,
				Status:  domainmatch.StatusInProgress,
				T1Name:  "Alpha",
				T1Score: 5,
				T2Name:  "Bravo",
				T2Score: 3,
			},
		},
	}
}
