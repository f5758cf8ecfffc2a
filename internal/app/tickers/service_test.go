package tickers

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pickleball-ticker-service/internal/store"
	"pickleball-ticker-service/internal/ticker"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService() (*Service, *store.MemoryStore) {
	ms := store.NewMemoryStore()
	svc := NewService(ms, nil, nil)
	svc.now = func() time.Time { return fixedNow }
	svc.newID = func() string { return "generated-id" }
	return svc, ms
}

func TestSaveNormalizesPayload(t *testing.T) {
	svc, _ := newTestService()

	rec, err := svc.Save("t1", "court-one", []byte(`{"primaryColor":{"h":500,"s":-2,"l":50},"logoScale":0.01}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "t1" || rec.Slug != "court-one" {
		t.Fatalf("unexpected record identity: %+v", rec)
	}
	if !rec.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected timestamp: %v", rec.UpdatedAt)
	}

	var stored ticker.SyncPayload
	if err := json.Unmarshal(rec.Payload, &stored); err != nil {
		t.Fatalf("stored payload must be valid JSON: %v", err)
	}
	if stored.PrimaryColor == nil || *stored.PrimaryColor != (ticker.HSL{H: 360, S: 0, L: 50}) {
		t.Fatalf("stored color not clamped: %+v", stored.PrimaryColor)
	}
	if stored.LogoScale == nil || *stored.LogoScale != 0.5 {
		t.Fatalf("stored scale not clamped: %+v", stored.LogoScale)
	}
}

func TestSaveRejectsNonObject(t *testing.T) {
	svc, _ := newTestService()

	for _, payload := range [][]byte{nil, []byte("not json"), []byte(`[1,2]`), []byte(`"str"`)} {
		if _, err := svc.Save("t1", "", payload); !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("payload %q: expected ErrInvalidPayload, got %v", payload, err)
		}
	}
}

func TestSaveLastWriteWins(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Save("t1", "", []byte(`{"showBorder":true}`)); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if _, err := svc.Save("t1", "", []byte(`{"showBorder":false}`)); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	rec, ok, err := svc.Get("t1")
	if err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
	var stored ticker.SyncPayload
	if err := json.Unmarshal(rec.Payload, &stored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if stored.ShowBorder == nil || *stored.ShowBorder {
		t.Fatalf("second write must win: %+v", stored.ShowBorder)
	}
}

func TestCreateGeneratesID(t *testing.T) {
	svc, _ := newTestService()

	rec, err := svc.Create("", []byte(`{}`))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rec.ID != "generated-id" {
		t.Fatalf("unexpected id: %q", rec.ID)
	}
}

func TestDeleteAndGetMiss(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Save("t1", "", []byte(`{}`)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := svc.Delete("t1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, err := svc.Get("t1"); err != nil || ok {
		t.Fatalf("expected miss after delete: ok=%v err=%v", ok, err)
	}
	// Deleting a missing ticker is not an error.
	if err := svc.Delete("t1"); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
}

func TestResolveSlug(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Save("t1", "court-one", []byte(`{}`)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	id, ok, err := svc.ResolveSlug("court-one")
	if err != nil || !ok || id != "t1" {
		t.Fatalf("expected t1, got id=%q ok=%v err=%v", id, ok, err)
	}
	if _, ok, _ := svc.ResolveSlug("nope"); ok {
		t.Fatal("unknown slug must miss")
	}
}

type fakeThemes struct {
	saved   map[string]ticker.ThemeSnapshot
	deleted []string
}

func (f *fakeThemes) Load(id string) (ticker.ThemeSnapshot, bool) {
	snap, ok := f.saved[id]
	return snap, ok
}

func (f *fakeThemes) Save(id string, snapshot ticker.ThemeSnapshot) error {
	if f.saved == nil {
		f.saved = map[string]ticker.ThemeSnapshot{}
	}
	f.saved[id] = snapshot
	return nil
}

func (f *fakeThemes) Delete(id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestSavePersistsThemeSnapshot(t *testing.T) {
	themes := &fakeThemes{}
	svc := NewService(store.NewMemoryStore(), themes, nil)

	if _, err := svc.Save("t1", "", []byte(`{"showBorder":true}`)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	snap, ok := themes.saved["t1"]
	if !ok {
		t.Fatal("expected a persisted theme snapshot")
	}
	if snap.ShowBorder == nil || !*snap.ShowBorder {
		t.Fatalf("theme snapshot lost the flag: %+v", snap)
	}
}

func TestGetFallsBackToTheme(t *testing.T) {
	themes := &fakeThemes{}
	svc := NewService(store.NewMemoryStore(), themes, nil)

	border := true
	themes.Save("t1", ticker.ThemeSnapshot{ShowBorder: &border})

	rec, ok, err := svc.Get("t1")
	if err != nil || !ok {
		t.Fatalf("expected theme fallback hit: ok=%v err=%v", ok, err)
	}
	var stored ticker.SyncPayload
	if err := json.Unmarshal(rec.Payload, &stored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if stored.ShowBorder == nil || !*stored.ShowBorder {
		t.Fatalf("fallback payload lost the flag: %+v", stored)
	}
	if !rec.UpdatedAt.Equal(time.Time{}) {
		t.Fatalf("fallback record must carry no timestamp, got %v", rec.UpdatedAt)
	}
}

func TestDeleteRemovesTheme(t *testing.T) {
	themes := &fakeThemes{}
	svc := NewService(store.NewMemoryStore(), themes, nil)

	if _, err := svc.Save("t1", "", []byte(`{}`)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := svc.Delete("t1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(themes.deleted) != 1 || themes.deleted[0] != "t1" {
		t.Fatalf("theme not deleted: %v", themes.deleted)
	}
}
