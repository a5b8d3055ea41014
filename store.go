package mealpress

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const recordExt = ".md"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("content not found")
	// ErrExists is returned when a create would clobber an existing slug.
	ErrExists = errors.New("content already exists")
)

// ContentStore persists content records by kind and slug. Implementations
// keep an independent slug namespace per kind.
type ContentStore interface {
	Create(kind Kind, slug string, data []byte) error
	Read(kind Kind, slug string) (ContentRecord, error)
	Delete(kind Kind, slug string) error
	List(kind Kind) ([]ContentRecord, error)
	Exists(kind Kind, slug string) bool
}

// FileStore keeps one file per record at {root}/{kind}/{slug}.md.
//
// Create is exclusive, so two concurrent creates of the same slug cannot
// both succeed. A concurrent create/delete pair on one slug still races;
// the last operation wins.
type FileStore struct {
	root string
}

// NewFileStore ensures the content root and per-kind directories exist.
func NewFileStore(root string) (*FileStore, error) {
	for _, kind := range []Kind{KindRecipe, KindPost} {
		if err := os.MkdirAll(filepath.Join(root, string(kind)), 0o755); err != nil {
			return nil, fmt.Errorf("create content dir: %w", err)
		}
	}
	return &FileStore{root: root}, nil
}

// KindDir returns the directory backing the given kind.
func (s *FileStore) KindDir(kind Kind) string {
	return filepath.Join(s.root, string(kind))
}

func (s *FileStore) path(kind Kind, slug string) string {
	return filepath.Join(s.root, string(kind), slug+recordExt)
}

// Create writes a new record. The slug is reserved with an exclusive
// create, then the full contents are renamed into place so a reader never
// observes a half-written record.
func (s *FileStore) Create(kind Kind, slug string, data []byte) error {
	if slug == "" || slug != Slugify(slug) {
		return fmt.Errorf("invalid slug %q", slug)
	}
	path := s.path(kind, slug)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrExists
		}
		return fmt.Errorf("create record: %w", err)
	}
	f.Close()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(path)
		return fmt.Errorf("write record: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		os.Remove(path)
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// Read loads and parses a single record.
func (s *FileStore) Read(kind Kind, slug string) (ContentRecord, error) {
	data, err := os.ReadFile(s.path(kind, slug))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ContentRecord{}, ErrNotFound
		}
		return ContentRecord{}, fmt.Errorf("read record: %w", err)
	}
	rec, err := ParseRecord(data)
	if err != nil {
		return ContentRecord{}, err
	}
	rec.Kind = kind
	if rec.Slug == "" {
		rec.Slug = slug
	}
	return rec, nil
}

// Delete removes a record. Absence is reported as ErrNotFound, distinct
// from a storage failure.
func (s *FileStore) Delete(kind Kind, slug string) error {
	path := s.path(kind, slug)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("stat record: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// Exists reports whether a record is present for kind+slug.
func (s *FileStore) Exists(kind Kind, slug string) bool {
	_, err := os.Stat(s.path(kind, slug))
	return err == nil
}

// List returns every record of a kind, newest first. Files that fail to
// parse are skipped rather than taking the whole listing down.
func (s *FileStore) List(kind Kind) ([]ContentRecord, error) {
	entries, err := os.ReadDir(s.KindDir(kind))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	var records []ContentRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), recordExt) {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), recordExt)
		rec, err := s.Read(kind, slug)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
	return records, nil
}
