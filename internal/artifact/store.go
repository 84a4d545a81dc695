package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/solharvest/harvester/api"
)

// Store writes per-contest harvest results as zstd-compressed JSON
// files for downstream analysis. Files are keyed by contest slug and
// overwritten on re-harvest.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// path confines the file to the store directory: the slug comes from
// the remote listing payload and must not smuggle in path separators.
func (s *Store) path(slug string) string {
	return filepath.Join(s.dir, filepath.Base(slug)+".json.zst")
}

func (s *Store) Save(result api.ContestResult) error {
	slug := result.Slug
	if slug == "" {
		slug = fmt.Sprintf("contest-%d", result.ContestID)
	}

	f, err := os.Create(s.path(slug))
	if err != nil {
		return fmt.Errorf("failed to create artifact file: %w", err)
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}

	if err := json.NewEncoder(enc).Encode(result); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("failed to encode artifact for %s: %w", slug, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finish artifact for %s: %w", slug, err)
	}
	return f.Close()
}

// Load reads a previously saved contest result back; the downstream
// analysis feed uses this, and tests verify the roundtrip.
func (s *Store) Load(slug string) (api.ContestResult, error) {
	var result api.ContestResult

	f, err := os.Open(s.path(slug))
	if err != nil {
		return result, fmt.Errorf("failed to open artifact file: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return result, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer dec.Close()

	if err := json.NewDecoder(dec).Decode(&result); err != nil {
		return result, fmt.Errorf("failed to decode artifact %s: %w", slug, err)
	}
	return result, nil
}
