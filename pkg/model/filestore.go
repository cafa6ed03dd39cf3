package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore is a Store backed by a single JSON snapshot file. It gives the CLI
// a working end-to-end path without a database: import writes the snapshot,
// export reads it back.
type FileStore struct {
	path string
}

// NewFileStore creates a store that persists to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the snapshot file path.
func (s *FileStore) Path() string {
	return s.path
}

// SaveGraph writes the graph snapshot. The write goes through a temp file in
// the same directory followed by a rename, so readers never observe a
// half-written snapshot.
func (s *FileStore) SaveGraph(_ context.Context, people []Person, relationships []Relationship) error {
	snap := Snapshot{People: people, Relationships: relationships}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".gedkit-store-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing snapshot: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

// LoadGraph reads the snapshot. A missing file is an empty graph, not an
// error, so export works on a fresh store.
func (s *FileStore) LoadGraph(_ context.Context) ([]Person, []Relationship, error) {
	data, err := os.ReadFile(s.path) // #nosec G304 -- user-provided store path is expected
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil, fmt.Errorf("decoding snapshot %s: %w", s.path, err)
	}
	return snap.People, snap.Relationships, nil
}
