package pbtrack

import (
	"fmt"
	"regexp"
	"strings"

	domainmatch "pickleball-ticker-service/internal/domain/match"
	"pickleball-ticker-service/internal/providers"
)

// NormalizeOptions carries caller-known overrides applied on top of the
// raw games payload. Zero values mean "no override".
type NormalizeOptions struct {
	MatchID        string
	TournamentName string
	Rules          string
	BestOf         int
	TeamOne        domainmatch.TeamOption
	TeamTwo        domainmatch.TeamOption
	Winning        string
	RoundOf        int
}

// Normalize converts a raw games payload into the canonical match shape.
// It is pure: no I/O, no mutation of its inputs, identical output for
// identical input. A nil payload yields an InvalidPayloadError and no
// partial result.
func Normalize(raw *GamesPayload, opts NormalizeOptions) (domainmatch.Match, error) {
	if raw == nil {
		return domainmatch.Match{}, &providers.InvalidPayloadError{Provider: providerName, Reason: "games payload is not an object"}
	}

	info := raw.Info
	var rawGames []rawGame
	if info != nil {
		rawGames = info.Games
	}

	teamOne := resolveTeam(opts.TeamOne, defaultTeamOneName, "team_one")
	teamTwo := resolveTeam(opts.TeamTwo, defaultTeamTwoName, "team_two")
	rules := resolveRules(info, opts.Rules)
	cond := resolveWinCondition(rules, info)

	games := make([]domainmatch.Game, 0, len(rawGames))
	for i, rg := range rawGames {
		games = append(games, domainmatch.Game{
			Number:    i + 1,
			Status:    deriveStatus(rg, cond),
			T1Name:    teamOne.Name,
			T1Score:   scoreOrZero(rg.T1Score),
			T1Logo:    teamOne.Logo,
			T1Players: formatPlayers(rg.T1Players),
			T2Name:    teamTwo.Name,
			T2Score:   scoreOrZero(rg.T2Score),
			T2Logo:    teamTwo.Logo,
			T2Players: formatPlayers(rg.T2Players),
		})
	}

	return domainmatch.Match{
		MatchID:        opts.MatchID,
		TournamentName: opts.TournamentName,
		BestOf:         resolveBestOf(opts.BestOf, len(rawGames), info),
		Rules:          rules,
		Winning:        resolveWinning(opts.Winning, info, teamOne, teamTwo),
		WinnerTeamID:   resolveWinnerTeamID(info, teamOne, teamTwo),
		Games:          games,
		RoundOf:        resolveRoundOf(opts.RoundOf, info),
	}, nil
}

// deriveStatus classifies one game. No scores means the game has not
// started; a missing winner means it is still running; a recorded winner
// is only trusted once the resolved win condition is actually met.
func deriveStatus(rg rawGame, cond winCondition) domainmatch.GameStatus {
	if rg.T1Score == nil && rg.T2Score == nil {
		return domainmatch.StatusScheduled
	}
	if rg.Winner == nil {
		return domainmatch.StatusInProgress
	}
	if cond.target <= 0 {
		return domainmatch.StatusFinal
	}

	leading, trailing := scoreOrZero(rg.T1Score), scoreOrZero(rg.T2Score)
	if trailing > leading {
		leading, trailing = trailing, leading
	}
	if leading < cond.target {
		return domainmatch.StatusInProgress
	}
	if leading-trailing < cond.margin {
		return domainmatch.StatusInProgress
	}
	return domainmatch.StatusFinal
}

func resolveTeam(override domainmatch.TeamOption, defaultName, defaultID string) domainmatch.TeamOption {
	team := domainmatch.TeamOption{
		Name:      defaultName,
		ShortName: defaultName,
		Logo:      defaultTeamLogo,
		TeamID:    defaultID,
	}
	if override.Name != "" {
		team.Name = override.Name
		team.ShortName = override.Name
	}
	if override.ShortName != "" {
		team.ShortName = override.ShortName
	}
	if override.Logo != "" {
		team.Logo = override.Logo
	}
	if override.TeamID != "" {
		team.TeamID = override.TeamID
	}
	return team
}

func resolveBestOf(override, gameCount int, info *rawGamesInfo) int {
	if override > 0 {
		return override
	}
	if gameCount > 0 {
		return gameCount
	}
	if info != nil && info.TotalGames != nil && *info.TotalGames > 0 {
		return *info.TotalGames
	}
	return defaultBestOf
}

func resolveRoundOf(override int, info *rawGamesInfo) int {
	if override > 0 {
		return override
	}
	if info != nil && info.RoundOf != nil && *info.RoundOf > 0 {
		return *info.RoundOf
	}
	return 0
}

// resolveWinning builds the human summary of the match state. Win counts
// come from the upstream t1_wins/t2_wins fields, not from the games list;
// when the upstream omits them both default to zero, which reads as
// "Match tied" even if finished games say otherwise. Aggregating wins
// across games is the caller's job.
func resolveWinning(override string, info *rawGamesInfo, teamOne, teamTwo domainmatch.TeamOption) string {
	if override != "" {
		return override
	}

	t1Wins, t2Wins := 0, 0
	if info != nil {
		if info.T1Wins != nil {
			t1Wins = *info.T1Wins
		}
		if info.T2Wins != nil {
			t2Wins = *info.T2Wins
		}
	}

	if info != nil && info.Winner != nil {
		switch *info.Winner {
		case 0:
			return fmt.Sprintf("%s wins %d-%d", teamOne.Name, t1Wins, t2Wins)
		case 1:
			return fmt.Sprintf("%s wins %d-%d", teamTwo.Name, t2Wins, t1Wins)
		}
	}

	switch {
	case t1Wins == t2Wins:
		return "Match tied"
	case t1Wins > t2Wins:
		return fmt.Sprintf("%s leads %d-%d", teamOne.Name, t1Wins, t2Wins)
	default:
		return fmt.Sprintf("%s leads %d-%d", teamTwo.Name, t2Wins, t1Wins)
	}
}

func resolveWinnerTeamID(info *rawGamesInfo, teamOne, teamTwo domainmatch.TeamOption) *string {
	if info == nil || info.Winner == nil {
		return nil
	}
	var team domainmatch.TeamOption
	switch *info.Winner {
	case 0:
		team = teamOne
	case 1:
		team = teamTwo
	default:
		return nil
	}
	id := team.TeamID
	if id == "" {
		id = team.ShortName
	}
	return &id
}

// formatPlayers joins trimmed first and last names, dropping players
// whose name comes out empty.
func formatPlayers(players []rawPlayer) []string {
	formatted := make([]string, 0, len(players))
	for _, p := range players {
		first, last := "", ""
		if p.FirstName != nil {
			first = strings.TrimSpace(*p.FirstName)
		}
		if p.LastName != nil {
			last = strings.TrimSpace(*p.LastName)
		}
		name := strings.TrimSpace(first + " " + last)
		if name == "" {
			continue
		}
		formatted = append(formatted, name)
	}
	return formatted
}

func scoreOrZero(score *int) int {
	if score == nil || *score < 0 {
		return 0
	}
	return *score
}

// ExtractTeamMetadata pulls team and event details out of the match-info
// payload. A nil payload yields the zero value; otherwise every team
// field individually falls back to the built-in placeholders. It never
// returns an error.
func ExtractTeamMetadata(raw *TeamsPayload) domainmatch.TeamMetadata {
	if raw == nil {
		return domainmatch.TeamMetadata{}
	}

	var meta domainmatch.TeamMetadata
	info := raw.MatchInfo

	var t1, t2 *rawTeam
	if info != nil {
		t1, t2 = info.T1, info.T2
		if info.Tournament != nil {
			meta.TournamentName = strings.TrimSpace(*info.Tournament)
		}
		if info.EventType != nil {
			meta.EventType = strings.TrimSpace(*info.EventType)
		}
		if info.BracketName != nil {
			meta.BracketName = strings.TrimSpace(*info.BracketName)
		}
		if info.NumTeams != nil && *info.NumTeams > 0 {
			meta.NumTeams = *info.NumTeams
		}
	}

	one := extractTeam(t1, defaultTeamOneName)
	two := extractTeam(t2, defaultTeamTwoName)
	meta.TeamOne = &one
	meta.TeamTwo = &two
	return meta
}

func extractTeam(t *rawTeam, defaultName string) domainmatch.TeamOption {
	team := domainmatch.TeamOption{
		Name:      defaultName,
		ShortName: defaultName,
		Logo:      defaultTeamLogo,
	}
	if t == nil {
		return team
	}
	if t.TeamName != nil && strings.TrimSpace(*t.TeamName) != "" {
		team.Name = strings.TrimSpace(*t.TeamName)
		team.ShortName = team.Name
	}
	if t.UniversityName != nil && strings.TrimSpace(*t.UniversityName) != "" {
		team.ShortName = strings.TrimSpace(*t.UniversityName)
	}
	if t.UniversityPicture != nil && strings.TrimSpace(*t.UniversityPicture) != "" {
		team.Logo = strings.TrimSpace(*t.UniversityPicture)
	}
	switch {
	case t.Ind != nil:
		team.TeamID = fmt.Sprintf("team_%d", *t.Ind)
	case t.TeamName != nil && slugify(*t.TeamName) != "":
		team.TeamID = slugify(*t.TeamName)
	}
	return team
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lowercases a name and collapses non-alphanumeric runs into
// single hyphens.
func slugify(name string) string {
	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
