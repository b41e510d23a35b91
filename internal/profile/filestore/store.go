// Package filestore keeps the profile as a YAML document on local disk.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// document is the on-disk layout
type document struct {
	Profiles []domain.Profile `yaml:"profiles"`
}

// Store is a single-writer YAML file store
type Store struct {
	path string

	mu          sync.Mutex
	initialized bool
}

// New returns a store for path; nothing touches disk until Init
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location
func (s *Store) Path() string {
	return s.path
}

// Init creates the parent directory and an empty document if needed
func (s *Store) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("filestore: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("filestore: create directory: %w", err)
	}

	_, err := os.Stat(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := s.write(&document{}); err != nil {
			return err
		}
	case err != nil:
		return fmt.Errorf("filestore: stat: %w", err)
	default:
		// Refuse to adopt a file we cannot parse.
		if _, err := s.read(); err != nil {
			return err
		}
	}

	s.initialized = true
	return nil
}

func (s *Store) Get(ctx context.Context) (*domain.Profile, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(doc.Profiles) == 0 {
		return nil, nil
	}
	p := doc.Profiles[0]
	return &p, nil
}

// Upsert replaces the first record, or appends when the file is empty
func (s *Store) Upsert(ctx context.Context, p *domain.Profile) error {
	if p == nil {
		return fmt.Errorf("%w: profile is required", domain.ErrInvalidProfile)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return domain.ErrStoreNotInitialized
	}

	doc, err := s.read()
	if err != nil {
		return err
	}
	if len(doc.Profiles) == 0 {
		doc.Profiles = append(doc.Profiles, *p)
	} else {
		doc.Profiles[0] = *p
	}
	return s.write(doc)
}

func (s *Store) List(ctx context.Context) ([]domain.Profile, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Profiles, nil
}

func (s *Store) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return domain.ErrStoreNotInitialized
	}
	return s.write(&document{})
}

// Close marks the store unusable until the next Init
func (s *Store) Close() error {
	s.mu.Lock()
	s.initialized = false
	s.mu.Unlock()
	return nil
}

func (s *Store) load(ctx context.Context) (*document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return nil, domain.ErrStoreNotInitialized
	}
	return s.read()
}

// read must be called with mu held
func (s *Store) read() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("filestore: read %s: %w", s.path, err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("filestore: parse %s: %w", s.path, err)
	}
	return &doc, nil
}

// write must be called with mu held
func (s *Store) write(doc *document) error {
	if doc.Profiles == nil {
		doc.Profiles = []domain.Profile{}
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("filestore: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".profile-*.yaml")
	if err != nil {
		return fmt.Errorf("filestore: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("filestore: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filestore: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("filestore: replace %s: %w", s.path, err)
	}
	return nil
}
