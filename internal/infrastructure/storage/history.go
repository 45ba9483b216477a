// Package storage persists the per-source last-seen-article pointer. Each
// source owns one small JSON file; an absent file means empty history.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// History is the persisted record for one source.
type History struct {
	LastArticleLink string `json:"last_article_link"`
}

// FileStore keeps one history file per source under a fixed directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the history directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Load reads the history file; a missing file is empty history, not an
// error.
func (s *FileStore) Load(file string) (History, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, file))
	if os.IsNotExist(err) {
		return History{}, nil
	}
	if err != nil {
		return History{}, fmt.Errorf("read history %s: %w", file, err)
	}

	var h History
	if err := json.Unmarshal(raw, &h); err != nil {
		return History{}, fmt.Errorf("decode history %s: %w", file, err)
	}
	return h, nil
}

// Save overwrites the history file.
func (s *FileStore) Save(file string, h History) error {
	raw, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encode history %s: %w", file, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, file), raw, 0o644); err != nil {
		return fmt.Errorf("write history %s: %w", file, err)
	}
	return nil
}

// IsNew reports whether link differs from the stored pointer. No stored
// pointer counts as different.
func (s *FileStore) IsNew(file, link string) (bool, error) {
	h, err := s.Load(file)
	if err != nil {
		return false, err
	}
	return h.LastArticleLink != link, nil
}

// Record persists link as the last seen article for the source.
func (s *FileStore) Record(file, link string) error {
	return s.Save(file, History{LastArticleLink: link})
}
