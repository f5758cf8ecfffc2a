package testutil

import (
	"context"

	domainmatch "pickleball-ticker-service/internal/domain/match"
	"pickleball-ticker-service/internal/providers"
)

// GoodProvider returns the configured match with no error.
type GoodProvider struct {
	Match domainmatch.Match
}

func (p GoodProvider) FetchMatch(ctx context.Context, matchID string) (domainmatch.Match, error) {
	_ = ctx
	m := p.Match
	m.MatchID = matchID
	return m, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchMatch(ctx context.Context, matchID string) (domainmatch.Match, error) {
	return domainmatch.Match{}, p.Err
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchMatch(ctx context.Context, matchID string) (domainmatch.Match, error) {
	return domainmatch.Match{}, providers.ErrProviderUnavailable
}

// NotifyingProvider returns a match and closes the notify channel on first fetch.
type NotifyingProvider struct {
	Match  domainmatch.Match
	Notify chan struct{}
}

func (p *NotifyingProvider) FetchMatch(ctx context.Context, matchID string) (domainmatch.Match, error) {
	_ = ctx
	if p.Notify != nil {
		select {
		case <-p.Notify:
		default:
			close(p.Notify)
		}
	}
	m := p.Match
	m.MatchID = matchID
	return m, nil
}

// CountingProvider records how many fetches occurred.
type CountingProvider struct {
	Calls int
	Match domainmatch.Match
	Err   error
}

func (p *CountingProvider) FetchMatch(ctx context.Context, matchID string) (domainmatch.Match, error) {
	p.Calls++
	if p.Err != nil {
		return domainmatch.Match{}, p.Err
	}
	m := p.Match
	m.MatchID = matchID
	return m, nil
}
