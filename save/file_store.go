package save

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const slotExt = ".yaml"

// FileStore keeps one YAML file per slot under Dir.
type FileStore struct {
	Dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("save: empty save dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("save: create dir %s: %w", dir, err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) path(slot string) string {
	return filepath.Join(s.Dir, SanitizeSlot(slot)+slotExt)
}

// Save writes rec to the slot file, replacing it atomically.
func (s *FileStore) Save(ctx context.Context, slot string, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("save: marshal slot %q: %w", slot, err)
	}
	path := s.path(slot)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("save: write slot %q: %w", slot, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("save: write slot %q: %w", slot, err)
	}
	return nil
}

// Load reads the slot file.
func (s *FileStore) Load(ctx context.Context, slot string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	data, err := os.ReadFile(s.path(slot))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, fmt.Errorf("save: load slot %q: %w", slot, ErrSlotNotFound)
		}
		return Record{}, fmt.Errorf("save: load slot %q: %w", slot, err)
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("save: unmarshal slot %q: %w", slot, err)
	}
	return rec, nil
}

// List returns the slot names present on disk, sorted.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("save: list %s: %w", s.Dir, err)
	}
	slots := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, slotExt) {
			continue
		}
		slots = append(slots, strings.TrimSuffix(name, slotExt))
	}
	sort.Strings(slots)
	return slots, nil
}

func (s *FileStore) Close() error { return nil }
