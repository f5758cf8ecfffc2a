package pbtrack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	domainmatch "pickleball-ticker-service/internal/domain/match"
	"pickleball-ticker-service/internal/providers"
)

// Config controls how the client reaches the upstream tournament API.
// Everything is injected here; nothing is read from ambient globals.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client fetches match data from the tournament API and normalizes it to
// the canonical match shape. The games and match-info endpoints are
// independent calls; the client combines both through the normalizer.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
}

// NewClient constructs a tournament API client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// FetchMatch retrieves the games and match-info payloads for a match and
// returns the normalized result.
func (c *Client) FetchMatch(ctx context.Context, matchID string) (domainmatch.Match, error) {
	if strings.TrimSpace(matchID) == "" {
		return domainmatch.Match{}, fmt.Errorf("%s: match id required", providerName)
	}

	var games GamesPayload
	if err := c.getJSON(ctx, c.gamesPath(matchID), &games); err != nil {
		return domainmatch.Match{}, err
	}

	opts := NormalizeOptions{MatchID: matchID}
	var teams TeamsPayload
	if err := c.getJSON(ctx, c.matchInfoPath(matchID), &teams); err == nil {
		meta := ExtractTeamMetadata(&teams)
		opts.TournamentName = meta.TournamentName
		if meta.TeamOne != nil {
			opts.TeamOne = *meta.TeamOne
		}
		if meta.TeamTwo != nil {
			opts.TeamTwo = *meta.TeamTwo
		}
	}
	// Match-info failures are non-fatal: the normalizer fills placeholder
	// teams and the scoreboard stays usable.

	return Normalize(&games, opts)
}

// FetchGamesPayload retrieves just the games payload, un-normalized.
// Live-update consumers re-normalize it with metadata they already hold.
func (c *Client) FetchGamesPayload(ctx context.Context, matchID string) (GamesPayload, error) {
	var games GamesPayload
	if err := c.getJSON(ctx, c.gamesPath(matchID), &games); err != nil {
		return GamesPayload{}, err
	}
	return games, nil
}

func (c *Client) gamesPath(matchID string) string {
	return c.baseURL + "/matches/" + url.PathEscape(matchID) + "/games"
}

func (c *Client) matchInfoPath(matchID string) string {
	return c.baseURL + "/matches/" + url.PathEscape(matchID)
}

func (c *Client) getJSON(ctx context.Context, rawURL string, payload any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: unexpected status %d: %s", providerName, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(payload); err != nil {
		return &providers.InvalidPayloadError{Provider: providerName, Reason: "malformed response body"}
	}
	return nil
}
