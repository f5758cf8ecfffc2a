package pbtrack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	domainmatch "pickleball-ticker-service/internal/domain/match"
	"pickleball-ticker-service/internal/providers"
)

func TestFetchMatchCombinesEndpoints(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/matches/m1/games":
			w.Write([]byte(`{"info":{"games":[{"t1score":11,"t2score":7,"winner":0}],"target_score":11,"t1_wins":1}}`))
		case "/matches/m1":
			w.Write([]byte(`{"match_info":{"t1":{"team_name":"Lakeside Smash"},"t2":{"team_name":"Harbor Dinks"},"tournament":"Fall Brawl"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, APIKey: "secret"})
	m, err := client.FetchMatch(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer secret" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if m.TournamentName != "Fall Brawl" {
		t.Fatalf("match-info metadata lost: %+v", m)
	}
	if m.Games[0].T1Name != "Lakeside Smash" || m.Games[0].T2Name != "Harbor Dinks" {
		t.Fatalf("team names lost: %+v", m.Games[0])
	}
	if m.Games[0].Status != domainmatch.StatusFinal {
		t.Fatalf("expected final game, got %s", m.Games[0].Status)
	}
	if m.Winning != "Lakeside Smash leads 1-0" {
		t.Fatalf("unexpected winning summary: %q", m.Winning)
	}
}

func TestFetchMatchInfoFailureIsNonFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/matches/m1/games":
			w.Write([]byte(`{"info":{"games":[{"t1score":2,"t2score":1}]}}`))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	m, err := client.FetchMatch(context.Background(), "m1")
	if err != nil {
		t.Fatalf("match-info failure must not fail the fetch: %v", err)
	}
	if m.Games[0].T1Name != defaultTeamOneName || m.Games[0].T2Name != defaultTeamTwoName {
		t.Fatalf("expected placeholder teams, got %+v", m.Games[0])
	}
}

func TestFetchMatchGamesFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	if _, err := client.FetchMatch(context.Background(), "m1"); err == nil {
		t.Fatal("expected error when the games endpoint fails")
	}
}

func TestFetchMatchMalformedGamesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{broken"))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.FetchMatch(context.Background(), "m1")
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
	if _, ok := providers.AsInvalidPayloadError(err); !ok {
		t.Fatalf("expected invalid payload error, got %v", err)
	}
}

func TestFetchMatchRequiresID(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://localhost:0"})
	if _, err := client.FetchMatch(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank match id")
	}
}

func TestFetchGamesPayloadSkipsNormalization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/matches/m1/games" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"info":{"games":[{"t1score":9,"t2score":9}]}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	payload, err := client.FetchGamesPayload(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Info == nil || len(payload.Info.Games) != 1 || *payload.Info.Games[0].T1Score != 9 {
		t.Fatalf("unexpected payload: %+v", payload.Info)
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	if got := normalizeBaseURL(""); got != defaultBaseURL {
		t.Fatalf("empty base url must default, got %q", got)
	}
	if got := normalizeBaseURL("https://example.test/v1/"); got != "https://example.test/v1" {
		t.Fatalf("trailing slash must be trimmed, got %q", got)
	}
}
