package wizard

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// SnapshotStore persists form data between wizard runs.
type SnapshotStore interface {
	Load() (FormData, bool, error)
	Save(FormData) error
	Clear() error
}

// FileSnapshotStore keeps the snapshot as a JSON file.
type FileSnapshotStore struct {
	Path string
}

// NewFileSnapshotStore builds a store rooted at path.
func NewFileSnapshotStore(path string) *FileSnapshotStore {
	return &FileSnapshotStore{Path: path}
}

// Load reads the snapshot. The second return is false when no snapshot
// exists yet.
func (s *FileSnapshotStore) Load() (FormData, bool, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FormData{}, false, nil
		}
		return FormData{}, false, err
	}
	var data FormData
	if err := json.Unmarshal(raw, &data); err != nil {
		return FormData{}, false, err
	}
	return data, true, nil
}

// Save writes the snapshot atomically via a temp file rename.
func (s *FileSnapshotStore) Save(data FormData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}

// Clear removes the snapshot if present.
func (s *FileSnapshotStore) Clear() error {
	err := os.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
