package providers

import (
	"context"

	domainmatch "pickleball-ticker-service/internal/domain/match"
)

// MatchProvider defines how upstream match data is fetched and normalized.
// The matchID identifies the match in the upstream tournament system;
// implementations return the canonical match shape, never raw payloads.
type MatchProvider interface {
	FetchMatch(ctx context.Context, matchID string) (domainmatch.Match, error)
}
