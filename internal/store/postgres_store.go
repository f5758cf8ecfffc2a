package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore persists ticker configurations in a single tickers table.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects to the database, verifies the connection, and
// runs the schema migration.
func OpenPostgres(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	s := &PostgresStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS tickers (
			id VARCHAR(100) PRIMARY KEY,
			slug VARCHAR(100) UNIQUE,
			payload JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tickers_slug ON tickers(slug)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// GetTicker retrieves a ticker configuration by ID.
func (s *PostgresStore) GetTicker(id string) (TickerRecord, bool, error) {
	var (
		rec  TickerRecord
		slug sql.NullString
	)
	row := s.db.QueryRow(`SELECT id, slug, payload, updated_at FROM tickers WHERE id = $1`, id)
	if err := row.Scan(&rec.ID, &slug, &rec.Payload, &rec.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TickerRecord{}, false, nil
		}
		return TickerRecord{}, false, err
	}
	rec.Slug = slug.String
	return rec, true, nil
}

// SaveTicker upserts a ticker configuration; the newest write wins.
func (s *PostgresStore) SaveTicker(rec TickerRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO tickers (id, slug, payload, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET slug = EXCLUDED.slug, payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		rec.ID, rec.Slug, []byte(rec.Payload), rec.UpdatedAt)
	return err
}

// DeleteTicker removes a ticker configuration.
func (s *PostgresStore) DeleteTicker(id string) error {
	_, err := s.db.Exec(`DELETE FROM tickers WHERE id = $1`, id)
	return err
}

// ResolveSlug maps a slug to its ticker ID.
func (s *PostgresStore) ResolveSlug(slug string) (string, bool, error) {
	var id string
	row := s.db.QueryRow(`SELECT id FROM tickers WHERE slug = $1`, slug)
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return id, true, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
