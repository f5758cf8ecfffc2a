package themes

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Manifest tracks which tickers have persisted themes.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	TickerIDs   []string  `json:"tickerIds"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version:   1,
		TickerIDs: []string{},
	}
}

func (s *FSStore) manifestPath() string {
	return filepath.Join(s.basePath, "manifest.json")
}

func (s *FSStore) updateManifest(tickerID string) error {
	m, _ := readManifest(s.manifestPath())

	ids, err := s.listThemeIDs()
	if err != nil {
		return err
	}
	if !containsID(ids, tickerID) {
		ids = append(ids, tickerID)
	}
	sort.Strings(ids)
	m.TickerIDs = ids

	return writeManifest(s.manifestPath(), m)
}

func (s *FSStore) listThemeIDs() ([]string, error) {
	dir := filepath.Join(s.basePath, "themes")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func readManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(), err
	}
	defer f.Close()

	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(), err
	}
	return m, nil
}

func writeManifest(path string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
