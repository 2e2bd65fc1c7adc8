package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abduss/memorial/internal/media"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repoTimeout = 5 * time.Second

const schema = `
CREATE TABLE IF NOT EXISTS uploads (
    id         TEXT PRIMARY KEY,
    folder     TEXT NOT NULL,
    kind       TEXT NOT NULL,
    format     TEXT NOT NULL,
    size_bytes BIGINT NOT NULL,
    tags       JSONB,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS uploads_created_at_idx ON uploads (created_at DESC);`

// Repository persists upload entries in Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new ledger repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the uploads table when missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure ledger schema: %w", err)
	}
	return nil
}

// Record inserts an entry. Recording the same id twice is a no-op.
func (r *Repository) Record(ctx context.Context, entry Entry) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	var tags []byte
	if len(entry.Tags) > 0 {
		encoded, err := json.Marshal(entry.Tags)
		if err != nil {
			return fmt.Errorf("encode tags: %w", err)
		}
		tags = encoded
	}

	query := `
INSERT INTO uploads (id, folder, kind, format, size_bytes, tags, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO NOTHING;`

	if _, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.Folder,
		string(entry.Kind),
		entry.Format,
		entry.SizeBytes,
		tags,
		entry.CreatedAt,
	); err != nil {
		return fmt.Errorf("record upload: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT id, folder, kind, format, size_bytes, tags, created_at
FROM uploads
ORDER BY created_at DESC
LIMIT $1;`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e    Entry
			kind string
			tags []byte
		)
		if err := rows.Scan(&e.ID, &e.Folder, &kind, &e.Format, &e.SizeBytes, &tags, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		e.Kind = media.Kind(kind)
		if len(tags) > 0 {
			if err := json.Unmarshal(tags, &e.Tags); err != nil {
				return nil, fmt.Errorf("decode tags of %s: %w", e.ID, err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate uploads: %w", err)
	}
	return entries, nil
}
