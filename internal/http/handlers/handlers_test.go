package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"pickleball-ticker-service/internal/app/tickers"
	"pickleball-ticker-service/internal/metrics"
	"pickleball-ticker-service/internal/refresher"
	"pickleball-ticker-service/internal/store"
	"pickleball-ticker-service/internal/testutil"
)

func newTestHandler(statusFn func() refresher.Status) (*Handler, *store.MemoryStore) {
	cache := store.NewMemoryStore()
	svc := tickers.NewService(store.NewMemoryStore(), nil, nil)
	h := NewHandler(svc, cache, testutil.GoodProvider{Match: testutil.SampleMatch("any")}, nil, metrics.NewRecorder(), "memory", statusFn)
	return h, cache
}

func serveVars(h http.HandlerFunc, method, path string, vars map[string]string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req = mux.SetURLVars(req, vars)
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(nil)
	rr := serveVars(h.Health, http.MethodGet, "/health", nil, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestReadyStates(t *testing.T) {
	h, _ := newTestHandler(func() refresher.Status {
		return refresher.Status{}
	})
	rr := serveVars(h.Ready, http.MethodGet, "/ready", nil, nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	h, _ = newTestHandler(func() refresher.Status {
		return refresher.Status{LastSuccess: testutil.MustParseRFC3339("2026-03-01T00:00:00Z")}
	})
	rr = serveVars(h.Ready, http.MethodGet, "/ready", nil, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	// No refresher wired at all still reports ready.
	h, _ = newTestHandler(nil)
	rr = serveVars(h.Ready, http.MethodGet, "/ready", nil, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestPutThenGetTicker(t *testing.T) {
	h, _ := newTestHandler(nil)

	rr := serveVars(h.PutTicker, http.MethodPut, "/tickers/t1", map[string]string{"id": "t1"}, []byte(`{"showBorder":true}`))
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = serveVars(h.GetTicker, http.MethodGet, "/tickers/t1", map[string]string{"id": "t1"}, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var rec store.TickerRecord
	testutil.DecodeJSON(t, rr, &rec)
	if rec.ID != "t1" || len(rec.Payload) == 0 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestPutTickerRejectsBadInput(t *testing.T) {
	h, _ := newTestHandler(nil)

	rr := serveVars(h.PutTicker, http.MethodPut, "/tickers/t1", map[string]string{"id": "t1"}, []byte(`[1,2]`))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	rr = serveVars(h.PutTicker, http.MethodPut, "/tickers/bad%20id", map[string]string{"id": "bad id"}, []byte(`{}`))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestPutTickerWithSlug(t *testing.T) {
	h, _ := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodPut, "/tickers/t1?slug=court-one", bytes.NewReader([]byte(`{}`)))
	req = mux.SetURLVars(req, map[string]string{"id": "t1"})
	rr := httptest.NewRecorder()
	h.PutTicker(rr, req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = serveVars(h.GetTickerBySlug, http.MethodGet, "/tickers/slug/court-one", map[string]string{"slug": "court-one"}, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var rec store.TickerRecord
	testutil.DecodeJSON(t, rr, &rec)
	if rec.ID != "t1" {
		t.Fatalf("slug resolved to wrong ticker: %+v", rec)
	}
}

func TestGetTickerNotFound(t *testing.T) {
	h, _ := newTestHandler(nil)
	rr := serveVars(h.GetTicker, http.MethodGet, "/tickers/missing", map[string]string{"id": "missing"}, nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestCreateTicker(t *testing.T) {
	h, _ := newTestHandler(nil)

	rr := serveVars(h.CreateTicker, http.MethodPost, "/tickers", nil, []byte(`{"showBorder":true}`))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	var rec store.TickerRecord
	testutil.DecodeJSON(t, rr, &rec)
	if rec.ID == "" {
		t.Fatal("created ticker must carry a generated id")
	}
}

func TestDeleteTicker(t *testing.T) {
	h, _ := newTestHandler(nil)

	serveVars(h.PutTicker, http.MethodPut, "/tickers/t1", map[string]string{"id": "t1"}, []byte(`{}`))
	rr := serveVars(h.DeleteTicker, http.MethodDelete, "/tickers/t1", map[string]string{"id": "t1"}, nil)
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	rr = serveVars(h.GetTicker, http.MethodGet, "/tickers/t1", map[string]string{"id": "t1"}, nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestGetMatchFromCache(t *testing.T) {
	h, cache := newTestHandler(nil)
	cached := testutil.SampleMatch("m1")
	cached.Winning = "cached"
	cache.SetMatch(cached)

	rr := serveVars(h.GetMatch, http.MethodGet, "/matches/m1", map[string]string{"id": "m1"}, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var m struct {
		Winning string `json:"winning"`
	}
	testutil.DecodeJSON(t, rr, &m)
	if m.Winning != "cached" {
		t.Fatalf("expected the cached snapshot, got %+v", m)
	}
}

func TestGetMatchFetchesOnMiss(t *testing.T) {
	h, cache := newTestHandler(nil)

	rr := serveVars(h.GetMatch, http.MethodGet, "/matches/m9", map[string]string{"id": "m9"}, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	// The fetched match joins the followed set.
	if _, ok := cache.GetMatch("m9"); !ok {
		t.Fatal("fetched match must land in the cache")
	}
}

func TestGetMatchUpstreamFailure(t *testing.T) {
	cache := store.NewMemoryStore()
	svc := tickers.NewService(store.NewMemoryStore(), nil, nil)
	h := NewHandler(svc, cache, testutil.ErrProvider{Err: errors.New("down")}, nil, metrics.NewRecorder(), "memory", nil)

	rr := serveVars(h.GetMatch, http.MethodGet, "/matches/m1", map[string]string{"id": "m1"}, nil)
	testutil.AssertStatus(t, rr, http.StatusBadGateway)
}

func TestValidTickerID(t *testing.T) {
	cases := map[string]bool{
		"t1":           true,
		"court-one_2":  true,
		"":             false,
		"has space":    false,
		"slash/attack": false,
	}
	for id, want := range cases {
		if got := validTickerID(id); got != want {
			t.Fatalf("validTickerID(%q) expected %v, got %v", id, want, got)
		}
	}
}
