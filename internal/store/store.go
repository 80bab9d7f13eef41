package store

import (
	"context"
	"fmt"

	"jobclassify-engine/internal/config"
	"jobclassify-engine/internal/domain"
)

// PostingStore persists the whole set of scraped postings. Save replaces
// whatever was stored before.
type PostingStore interface {
	Load(ctx context.Context) ([]domain.Posting, error)
	Save(ctx context.Context, postings []domain.Posting) error
	Close() error
}

// Open picks the backend named by cfg.Driver. Paths must already be resolved.
func Open(cfg config.Storage) (PostingStore, error) {
	switch cfg.Driver {
	case "", "file":
		return NewFileStore(cfg.PostingsPath), nil
	case "sqlite":
		st, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		return st, nil
	case "postgres":
		st, err := OpenPostgres(context.Background(), cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
