package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"jobclassify-engine/internal/domain"
)

// SQLiteStore keeps postings in a single table, one row per posting.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens the database at path, creating its directory, and
// migrates it to SchemaVersion.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one writer; Save holds it for the whole replace
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]domain.Posting, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, title, description, location, source, scraped_at, url
FROM postings
ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("query postings: %w", err)
	}
	defer rows.Close()

	out := []domain.Posting{}
	for rows.Next() {
		var (
			p         domain.Posting
			scrapedAt string
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Location, &p.Source, &scrapedAt, &p.URL); err != nil {
			return nil, err
		}
		p.ScrapedAt, _ = time.Parse(time.RFC3339Nano, scrapedAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Save replaces all rows in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, postings []domain.Posting) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM postings;`); err != nil {
		return fmt.Errorf("clear postings: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO postings (id, title, description, location, source, scraped_at, url)
VALUES (?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range postings {
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.Title, p.Description, p.Location, p.Source,
			p.ScrapedAt.UTC().Format(time.RFC3339Nano), p.URL,
		); err != nil {
			return fmt.Errorf("insert posting %d: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
