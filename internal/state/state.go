// Package state persists small UI preferences between runs.
package state

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// Store reads and writes boolean preferences by key.
type Store interface {
	// GetBool returns the stored value and whether the key exists.
	GetBool(key string) (bool, bool)
	SetBool(key string, value bool) error
}

// fileState is the on-disk layout.
type fileState struct {
	Flags map[string]bool `toml:"flags"`
}

// File is a Store backed by a TOML file. Every SetBool rewrites the file.
type File struct {
	mu    sync.RWMutex
	path  string
	flags map[string]bool
}

// DefaultPath returns the state file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "tidemark", "state.toml"), nil
}

// Open loads the state file at path. A missing file yields an empty store.
func Open(path string) (*File, error) {
	f := &File{path: path, flags: make(map[string]bool)}
	if err := f.Load(); err != nil {
		return nil, err
	}
	return f, nil
}

// Load re-reads the file from disk, replacing in-memory values.
func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.flags = make(map[string]bool)
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading state %s: %w", f.path, err)
	}

	var st fileState
	if _, err := toml.Decode(string(data), &st); err != nil {
		return fmt.Errorf("decoding state %s: %w", f.path, err)
	}
	for k, v := range st.Flags {
		f.flags[k] = v
	}
	return nil
}

func (f *File) GetBool(key string) (bool, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.flags[key]
	return v, ok
}

func (f *File) SetBool(key string, value bool) error {
	f.mu.Lock()
	f.flags[key] = value
	f.mu.Unlock()
	return f.Save()
}

// Save writes the current values to disk.
func (f *File) Save() error {
	f.mu.RLock()
	st := fileState{Flags: make(map[string]bool, len(f.flags))}
	for k, v := range f.flags {
		st.Flags[k] = v
	}
	f.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(st); err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	return os.WriteFile(f.path, buf.Bytes(), 0644)
}

// Memory is a Store that keeps values in memory only.
type Memory struct {
	mu    sync.RWMutex
	flags map[string]bool
	// Err, when set, is returned from SetBool after the value is stored.
	Err error
}

func NewMemory() *Memory {
	return &Memory{flags: make(map[string]bool)}
}

func (m *Memory) GetBool(key string) (bool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.flags[key]
	return v, ok
}

func (m *Memory) SetBool(key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[key] = value
	return m.Err
}
