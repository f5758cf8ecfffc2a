package pbtrack

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The two patterns we recognize in free-text rules. Rule parsing is
// deliberately best-effort; anything fancier than these belongs upstream.
var (
	raceToPattern = regexp.MustCompile(`(?i)\b(?:first|race)\s+to\s+(\d+)`)
	winByPattern  = regexp.MustCompile(`(?i)\bwin\s+by\s+(\d+)`)
)

// resolveRules picks the rules text for a match. Priority: synthesized
// from numeric fields when target_score is positive, then the caller
// override, then upstream text, then the built-in default. Whatever wins
// is passed through the win-margin enforcement pass.
func resolveRules(info *rawGamesInfo, override string) string {
	var rules string
	switch {
	case info != nil && info.TargetScore != nil && *info.TargetScore > 0:
		margin := minWinMargin
		if info.WinMargin != nil && *info.WinMargin > margin {
			margin = *info.WinMargin
		}
		rules = fmt.Sprintf("First to %d (win by %d)", *info.TargetScore, margin)
	case override != "":
		rules = override
	case info != nil && info.Rules != nil && strings.TrimSpace(*info.Rules) != "":
		rules = strings.TrimSpace(*info.Rules)
	default:
		rules = defaultRules
	}
	return enforceWinMargin(rules)
}

// enforceWinMargin guarantees the rules string documents a win margin of
// at least minWinMargin. A smaller stated margin is rewritten; a larger
// one is preserved; a missing clause is appended, inside a trailing
// parenthetical when one exists.
func enforceWinMargin(rules string) string {
	if loc := winByPattern.FindStringSubmatchIndex(rules); loc != nil {
		margin, err := strconv.Atoi(rules[loc[2]:loc[3]])
		if err == nil && margin >= minWinMargin {
			return rules
		}
		return rules[:loc[2]] + strconv.Itoa(minWinMargin) + rules[loc[3]:]
	}
	trimmed := strings.TrimRight(rules, " ")
	if strings.HasSuffix(trimmed, ")") {
		return trimmed[:len(trimmed)-1] + fmt.Sprintf(", win by %d)", minWinMargin)
	}
	return trimmed + fmt.Sprintf(" (win by %d)", minWinMargin)
}

// winCondition is the numeric interpretation of a match's rules, used for
// per-game status derivation.
type winCondition struct {
	target int // 0 when no target score is resolvable
	margin int // always >= minWinMargin
}

// resolveWinCondition merges the patterns parsed out of the rules text
// with the upstream numeric fields, text first.
func resolveWinCondition(rules string, info *rawGamesInfo) winCondition {
	cond := winCondition{margin: minWinMargin}

	if m := raceToPattern.FindStringSubmatch(rules); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			cond.target = n
		}
	}
	if cond.target == 0 && info != nil && info.TargetScore != nil && *info.TargetScore > 0 {
		cond.target = *info.TargetScore
	}

	margin := 0
	if m := winByPattern.FindStringSubmatch(rules); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			margin = n
		}
	}
	if margin == 0 && info != nil && info.WinMargin != nil && *info.WinMargin > 0 {
		margin = *info.WinMargin
	}
	if margin > cond.margin {
		cond.margin = margin
	}
	return cond
}
