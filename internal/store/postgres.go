package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobclassify-engine/internal/domain"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS postings (
  id          BIGINT PRIMARY KEY,
  title       TEXT NOT NULL,
  description TEXT NOT NULL,
  location    TEXT NOT NULL,
  source      TEXT NOT NULL,
  scraped_at  TIMESTAMPTZ NOT NULL,
  url         TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_postings_location ON postings(location);`

var pgColumns = []string{"id", "title", "description", "location", "source", "scraped_at", "url"}

// PostgresStore keeps postings in a shared Postgres database so several
// engine processes can serve the same scrape.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Load(ctx context.Context) ([]domain.Posting, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, title, description, location, source, scraped_at, url
FROM postings
ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query postings: %w", err)
	}
	defer rows.Close()

	out := []domain.Posting{}
	for rows.Next() {
		var p domain.Posting
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Location, &p.Source, &p.ScrapedAt, &p.URL); err != nil {
			return nil, err
		}
		p.ScrapedAt = p.ScrapedAt.UTC()
		out = append(out, p)
	}
	return out, rows.Err()
}

// Save truncates and bulk-copies in one transaction; readers see either
// the old set or the new one.
func (s *PostgresStore) Save(ctx context.Context, postings []domain.Posting) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM postings`); err != nil {
		return fmt.Errorf("clear postings: %w", err)
	}
	rows := make([][]any, 0, len(postings))
	for _, p := range postings {
		rows = append(rows, []any{p.ID, p.Title, p.Description, p.Location, p.Source, p.ScrapedAt.UTC(), p.URL})
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"postings"}, pgColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy postings: %w", err)
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) Close() error {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
	return nil
}
