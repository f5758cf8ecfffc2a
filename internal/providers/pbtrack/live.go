package pbtrack

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
)

const (
	defaultHandshakeTimeout = 10 * time.Second
	maxReconnectInterval    = 30 * time.Second
)

// GamesHandler receives each games payload pushed by the live feed. The
// payload carries the same info.games shape as the initial fetch.
type GamesHandler func(matchID string, payload GamesPayload)

// LiveConfig controls the live-update subscription.
type LiveConfig struct {
	URL    string // websocket endpoint, e.g. wss://api.pbtrack.net/v1/live
	APIKey string
	Dialer *websocket.Dialer
}

// LiveSubscriber maintains a websocket subscription to a match's live
// score feed, reconnecting with exponential backoff when the connection
// drops. Payloads are delivered to the handler in arrival order; merge
// serialization is the handler's responsibility.
type LiveSubscriber struct {
	url     string
	apiKey  string
	dialer  *websocket.Dialer
	logger  *slog.Logger
	handler GamesHandler
}

// NewLiveSubscriber constructs a subscriber delivering payloads to handler.
func NewLiveSubscriber(cfg LiveConfig, logger *slog.Logger, handler GamesHandler) *LiveSubscriber {
	dialer := cfg.Dialer
	if dialer == nil {
		dialer = &websocket.Dialer{HandshakeTimeout: defaultHandshakeTimeout}
	}
	return &LiveSubscriber{
		url:     cfg.URL,
		apiKey:  cfg.APIKey,
		dialer:  dialer,
		logger:  logger,
		handler: handler,
	}
}

// Run subscribes to live updates for the given match until ctx is
// canceled. Connection failures are retried with exponential backoff;
// only context cancellation ends the loop.
func (s *LiveSubscriber) Run(ctx context.Context, matchID string) error {
	target, err := s.subscribeURL(matchID)
	if err != nil {
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxInterval = maxReconnectInterval
	policy.MaxElapsedTime = 0 // retry until canceled

	return backoff.Retry(func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		if err := s.readLoop(ctx, target, matchID, policy); err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			if s.logger != nil {
				s.logger.Warn("live feed disconnected, reconnecting",
					slog.String("provider", providerName),
					slog.String("match_id", matchID),
					"err", err)
			}
			return err
		}
		return nil
	}, backoff.WithContext(policy, ctx))
}

func (s *LiveSubscriber) subscribeURL(matchID string) (string, error) {
	u, err := url.Parse(s.url)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("match_id", matchID)
	if s.apiKey != "" {
		q.Set("token", s.apiKey)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (s *LiveSubscriber) readLoop(ctx context.Context, target, matchID string, policy *backoff.ExponentialBackOff) error {
	conn, _, err := s.dialer.DialContext(ctx, target, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	policy.Reset()
	if s.logger != nil {
		s.logger.Info("live feed connected",
			slog.String("provider", providerName),
			slog.String("match_id", matchID))
	}

	// Unblock ReadJSON when the context is canceled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var payload GamesPayload
		if err := conn.ReadJSON(&payload); err != nil {
			return err
		}
		if s.handler != nil {
			s.handler(matchID, payload)
		}
	}
}
