package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.BlobStore = (*Blobs)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS blobs (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

// Blobs is a named-blob store over an embedded SQLite database, the
// local-storage slot for cart and wishlist state.
type Blobs struct {
	db *sql.DB
}

func NewBlobs(path string) (Blobs, error) {
	const op = "Blobs.New"

	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return Blobs{}, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := db.Exec(schema); err != nil {
		return Blobs{}, fmt.Errorf("%s: failed to init schema: %w", op, err)
	}
	return Blobs{db}, nil
}

// Load reads and decodes the blob for key into v. A missing row or an
// undecodable value yields false, not an error: both are expected on
// first run and after a format change, and callers fall back to empty
// state.
func (b Blobs) Load(ctx context.Context, key string, v any) bool {
	const op = "Blobs.Load"
	log := slog.With("op", op, "key", key)

	var value string
	err := b.db.QueryRowContext(
		ctx, `SELECT value FROM blobs WHERE key = ?`, key,
	).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Warn("failed to read blob", "err", err)
		}
		return false
	}

	if err := json.Unmarshal([]byte(value), v); err != nil {
		log.Debug("stored blob is not decodable, treating as empty", "err", err)
		return false
	}
	return true
}

// Save serializes v and upserts it under key.
func (b Blobs) Save(ctx context.Context, key string, v any) error {
	const op = "Blobs.Save"

	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = b.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at;`,
		key, string(value), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (b Blobs) Close() {
	const op = "Blobs.Close"
	log := slog.With("op", op)

	log.Info("closing blob storage...")
	if err := b.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("blob storage is closed")
}
