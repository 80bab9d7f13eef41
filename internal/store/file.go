package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"jobclassify-engine/internal/domain"
)

const lockRetry = 50 * time.Millisecond

// FileStore keeps postings as one JSON array on disk.
type FileStore struct {
	Path string
	lock *flock.Flock
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path, lock: flock.New(path + ".lock")}
}

// Load returns an empty set when the file is missing or unreadable as JSON.
func (s *FileStore) Load(ctx context.Context) ([]domain.Posting, error) {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return nil, err
	}
	ok, err := s.lock.TryRLockContext(ctx, lockRetry)
	if err != nil || !ok {
		return nil, fmt.Errorf("lock %s: %w", s.lock.Path(), err)
	}
	defer func() { _ = s.lock.Unlock() }()

	b, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.Posting{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read postings: %w", err)
	}

	var out []domain.Posting
	if err := json.Unmarshal(b, &out); err != nil {
		log.Printf("[store] level=warn msg=%q path=%s err=%v", "malformed postings file, treating as empty", s.Path, err)
		return []domain.Posting{}, nil
	}
	if out == nil {
		out = []domain.Posting{}
	}
	return out, nil
}

func (s *FileStore) Save(ctx context.Context, postings []domain.Posting) error {
	if postings == nil {
		postings = []domain.Posting{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(postings); err != nil {
		return fmt.Errorf("encode postings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	ok, err := s.lock.TryLockContext(ctx, lockRetry)
	if err != nil || !ok {
		return fmt.Errorf("lock %s: %w", s.lock.Path(), err)
	}
	defer func() { _ = s.lock.Unlock() }()

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write postings: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("replace postings: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
