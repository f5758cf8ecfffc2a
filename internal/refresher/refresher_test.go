package refresher

import (
	"context"
	"errors"
	"testing"
	"time"

	domainmatch "pickleball-ticker-service/internal/domain/match"
	"pickleball-ticker-service/internal/metrics"
	"pickleball-ticker-service/internal/providers"
	"pickleball-ticker-service/internal/store"
	"pickleball-ticker-service/internal/testutil"
)

func TestRefreshOnceUpdatesCache(t *testing.T) {
	cache := store.NewMemoryStore()
	cache.SetMatch(testutil.SampleMatch("m1"))
	cache.SetMatch(testutil.SampleMatch("m2"))

	fresh := testutil.SampleMatch("ignored")
	fresh.Winning = "refreshed"
	r := New(testutil.GoodProvider{Match: fresh}, cache, nil, metrics.NewRecorder(), time.Hour)

	r.refreshOnce(context.Background())

	for _, id := range []string{"m1", "m2"} {
		m, ok := cache.GetMatch(id)
		if !ok || m.Winning != "refreshed" {
			t.Fatalf("match %s not refreshed: %+v ok=%v", id, m, ok)
		}
	}
	if !r.Status().IsReady() {
		t.Fatalf("expected ready status, got %+v", r.Status())
	}
}

func TestRefreshOnceRecordsFailure(t *testing.T) {
	cache := store.NewMemoryStore()
	cache.SetMatch(testutil.SampleMatch("m1"))

	r := New(testutil.ErrProvider{Err: errors.New("upstream down")}, cache, nil, metrics.NewRecorder(), time.Hour)
	r.refreshOnce(context.Background())

	status := r.Status()
	if status.ConsecutiveFailures != 1 || status.LastError != "upstream down" {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.IsReady() {
		t.Fatal("failed refresher with no prior success must not be ready")
	}

	// The cached snapshot survives a failed refresh.
	if _, ok := cache.GetMatch("m1"); !ok {
		t.Fatal("failed refresh must not evict the match")
	}
}

func TestRefreshOnceDropsInvalidMatches(t *testing.T) {
	cache := store.NewMemoryStore()
	cache.SetMatch(testutil.SampleMatch("m1"))

	bad := testutil.ErrProvider{Err: &providers.InvalidPayloadError{Provider: "test", Reason: "garbage"}}
	r := New(bad, cache, nil, metrics.NewRecorder(), time.Hour)
	r.refreshOnce(context.Background())

	if _, ok := cache.GetMatch("m1"); ok {
		t.Fatal("a match the upstream cannot describe must stop being followed")
	}
}

func TestRefresherStartRunsInitialCycle(t *testing.T) {
	cache := store.NewMemoryStore()
	cache.SetMatch(testutil.SampleMatch("m1"))

	notify := make(chan struct{})
	provider := &testutil.NotifyingProvider{Match: testutil.SampleMatch("m1"), Notify: notify}
	r := New(provider, cache, nil, metrics.NewRecorder(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)
	defer r.Stop(context.Background())

	select {
	case <-notify:
	case <-time.After(5 * time.Second):
		t.Fatal("expected an initial refresh cycle on start")
	}
}

func TestRefresherStartIsIdempotent(t *testing.T) {
	r := New(testutil.GoodProvider{}, store.NewMemoryStore(), nil, metrics.NewRecorder(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)
	r.Start(ctx)

	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	// Stop twice should also be safe.
	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("second stop failed: %v", err)
	}
}

func TestStatusReadiness(t *testing.T) {
	cases := []struct {
		name   string
		status Status
		want   bool
	}{
		{"never succeeded", Status{}, false},
		{"recent success", Status{LastSuccess: time.Now()}, true},
		{"a couple failures", Status{LastSuccess: time.Now(), ConsecutiveFailures: 2}, true},
		{"failing repeatedly", Status{LastSuccess: time.Now(), ConsecutiveFailures: 3}, false},
	}
	for _, tc := range cases {
		if got := tc.status.IsReady(); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestRefreshSuccessClearsError(t *testing.T) {
	cache := store.NewMemoryStore()
	cache.SetMatch(testutil.SampleMatch("m1"))

	failing := &flipProvider{err: errors.New("blip")}
	r := New(failing, cache, nil, metrics.NewRecorder(), time.Hour)

	r.refreshOnce(context.Background())
	if r.Status().LastError == "" {
		t.Fatal("expected recorded error")
	}

	failing.err = nil
	r.refreshOnce(context.Background())
	status := r.Status()
	if status.LastError != "" || status.ConsecutiveFailures != 0 {
		t.Fatalf("success must clear failure state: %+v", status)
	}
}

type flipProvider struct {
	err error
}

func (p *flipProvider) FetchMatch(ctx context.Context, matchID string) (domainmatch.Match, error) {
	if p.err != nil {
		return domainmatch.Match{}, p.err
	}
	return domainmatch.Match{MatchID: matchID}, nil
}
