package resultscache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"picki-backend/internal/recommendations"
)

// FilePersister stores the cache as a JSON file named after the
// "recommendation-results" namespace.
type FilePersister struct {
	Path string
}

// NewFilePersister roots the cache file under dir.
func NewFilePersister(dir string) *FilePersister {
	return &FilePersister{Path: filepath.Join(dir, "recommendation-results.json")}
}

// Load reads the persisted cache. A missing file yields an empty map.
func (p *FilePersister) Load() (map[string]recommendations.Result, error) {
	raw, err := os.ReadFile(p.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]recommendations.Result{}, nil
		}
		return nil, err
	}
	byID := map[string]recommendations.Result{}
	if err := json.Unmarshal(raw, &byID); err != nil {
		return nil, err
	}
	return byID, nil
}

// Save writes the full cache atomically via a temp file rename.
func (p *FilePersister) Save(byID map[string]recommendations.Result) error {
	raw, err := json.MarshalIndent(byID, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.Path), 0o755); err != nil {
		return err
	}
	tmp := p.Path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, p.Path)
}
