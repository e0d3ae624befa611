package presets

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"

	ferrors "github.com/matzehuels/frosting/pkg/errors"
)

// FileStore keeps user presets in a TOML file:
//
//	[[preset]]
//	name = "Lemon"
//	background = "#CCA995"
//	frosting_top = "#FFF59D"
//	frosting_bottom = "#FBC02D"
//	sprinkles = ["#FFFFFF", "#8D6E63"]
//
// A missing file is an empty store.
type FileStore struct {
	path string
	mu   sync.Mutex
}

type presetFile struct {
	Preset []Preset `toml:"preset"`
}

// NewFileStore returns a store backed by path. The file is created on the
// first Put.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) List(_ context.Context) ([]Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Get(_ context.Context, name string) (Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.load()
	if err != nil {
		return Preset{}, err
	}
	i := slices.IndexFunc(all, func(p Preset) bool { return p.Name == name })
	if i < 0 {
		return Preset{}, notFound(name)
	}
	return all[i], nil
}

// Put inserts p or replaces the preset with the same name.
func (s *FileStore) Put(_ context.Context, p Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.load()
	if err != nil {
		return err
	}
	if i := slices.IndexFunc(all, func(q Preset) bool { return q.Name == p.Name }); i >= 0 {
		all[i] = p
	} else {
		all = append(all, p)
	}
	return s.save(all)
}

func (s *FileStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.load()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(all, func(p Preset) bool { return p.Name == name })
	if i < 0 {
		return notFound(name)
	}
	return s.save(slices.Delete(all, i, i+1))
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) load() ([]Preset, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var f presetFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidPreset, err, "parse %s", s.path)
	}
	return f.Preset, nil
}

func (s *FileStore) save(all []Preset) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(presetFile{Preset: all}); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

var _ Store = (*FileStore)(nil)
