package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/Conte777/tgmedia-bot/internal/domain/media/entities"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS media_cache (
	key        TEXT PRIMARY KEY,
	file_id    TEXT NOT NULL,
	kind       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);`

// SQLiteStore persists the cache across restarts in a local sqlite file
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewSQLiteStore opens (and if needed initializes) the sqlite cache store
func NewSQLiteStore(path string, logger zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	logger.Info().Str("path", path).Msg("SQLite cache store opened")

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Get returns the cached entry for key, or (nil, nil) on a miss
func (s *SQLiteStore) Get(ctx context.Context, key string) (*entities.CacheEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT key, file_id, kind, created_at FROM media_cache WHERE key = ?`, key)

	var entry entities.CacheEntry
	var kind string
	if err := row.Scan(&entry.Key, &entry.FileID, &kind, &entry.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	entry.Kind = entities.MediaKind(kind)
	return &entry, nil
}

// Put stores an entry, overwriting any previous value for its key
func (s *SQLiteStore) Put(ctx context.Context, entry *entities.CacheEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO media_cache (key, file_id, kind, created_at) VALUES (?, ?, ?, ?)`,
		entry.Key, entry.FileID, string(entry.Kind), entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	return nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	s.logger.Debug().Msg("SQLite cache store closed")
	return s.db.Close()
}
