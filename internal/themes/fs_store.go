package themes

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"pickleball-ticker-service/internal/ticker"
)

// Store defines how persisted theme snapshots are loaded and saved.
type Store interface {
	Load(tickerID string) (ticker.ThemeSnapshot, bool)
	Save(tickerID string, snapshot ticker.ThemeSnapshot) error
}

// FSStore persists theme snapshots on the filesystem, one JSON file per
// ticker. Loads are tolerant: a missing, unreadable, or malformed file
// reads as "no persisted theme" and never surfaces an error.
type FSStore struct {
	basePath string
	logger   *slog.Logger
}

// NewFSStore constructs an FS-backed theme store rooted at basePath.
func NewFSStore(basePath string, logger *slog.Logger) *FSStore {
	return &FSStore{basePath: basePath, logger: logger}
}

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func (s *FSStore) path(tickerID string) string {
	safe := unsafePathChars.ReplaceAllString(tickerID, "_")
	return filepath.Join(s.basePath, "themes", safe+".json")
}

// Load reads the persisted theme for a ticker, reporting whether one was
// usable. Malformed contents are logged at warn level and treated as
// absent.
func (s *FSStore) Load(tickerID string) (ticker.ThemeSnapshot, bool) {
	if s == nil || tickerID == "" {
		return ticker.ThemeSnapshot{}, false
	}

	data, err := os.ReadFile(s.path(tickerID))
	if err != nil {
		return ticker.ThemeSnapshot{}, false
	}

	snapshot, ok := ticker.ParseTheme(data)
	if !ok && s.logger != nil {
		s.logger.Warn("discarding malformed theme snapshot",
			slog.String("ticker_id", tickerID))
	}
	return snapshot, ok
}

// Save writes the theme snapshot for a ticker atomically, skipping the
// write when the stored bytes already match.
func (s *FSStore) Save(tickerID string, snapshot ticker.ThemeSnapshot) error {
	if s == nil {
		return os.ErrInvalid
	}

	target := s.path(tickerID)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return nil
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return err
	}

	return s.updateManifest(tickerID)
}

// Delete removes a persisted theme; missing files are not an error.
func (s *FSStore) Delete(tickerID string) error {
	err := os.Remove(s.path(tickerID))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
