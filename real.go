package seam

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// OSEnv is the real environment boundary, delegating to the os package.
type OSEnv struct{}

// Lookup returns the process environment variable's value and presence.
func (OSEnv) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Set assigns a process environment variable.
func (OSEnv) Set(name, value string) error {
	return os.Setenv(name, value)
}

// Unset removes a process environment variable.
func (OSEnv) Unset(name string) error {
	return os.Unsetenv(name)
}

// OSFS is the real filesystem boundary, delegating to the os package.
type OSFS struct{}

// ReadFile reads the named file from disk.
func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile writes data to the named file on disk.
func (OSFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// Remove deletes the named file from disk.
func (OSFS) Remove(name string) error {
	return os.Remove(name)
}

// Exists reports whether the path exists on disk.
func (OSFS) Exists(name string) (bool, error) {
	_, err := os.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// List walks prefix on disk and returns the contained file paths in
// lexical order. A missing prefix yields an empty result, matching the
// fake's no-entries behavior.
func (OSFS) List(prefix string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(prefix, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return paths, nil
}

// MkdirAll creates a directory on disk along with any missing parents.
func (OSFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// memSession is the default real session store: a process-local map.
// Applications with a production session backend install their own via
// WithRealSession.
type memSession struct {
	mu     sync.RWMutex
	values map[string]any
}

func newMemSession() *memSession {
	return &memSession{values: make(map[string]any)}
}

func (s *memSession) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *memSession) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *memSession) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

func (s *memSession) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
