// Package presetfile implements prompt.Store over the host application's
// preset JSON file. The host owns the file and may rewrite it at any time;
// every read goes back to disk so the store never serves a stale list.
package presetfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/NemoVonNirgend/promptdeck/internal/core/prompt"
)

// File is the root JSON structure of a preset file.
type File struct {
	Name    string        `json:"name,omitempty"`
	Prompts []prompt.Item `json:"prompts"`
}

// Store implements prompt.Store using the host preset file for persistence.
type Store struct {
	path string
	mu   sync.RWMutex
}

// New creates a preset store for the given file path. The file does not need
// to exist yet; a missing file reads as an empty list.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the preset file location.
func (s *Store) Path() string { return s.path }

// Exists reports whether the preset file is present on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Name returns the preset's display name, or the empty string.
func (s *Store) Name() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return "", err
	}
	return file.Name, nil
}

// ListItems returns all prompt entries in preset order.
func (s *Store) ListItems(context.Context) ([]prompt.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}
	return file.Prompts, nil
}

// IsEnabled reports the live enabled flag for an item.
func (s *Store) IsEnabled(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return false, err
	}

	for _, item := range file.Prompts {
		if item.Identifier == id {
			return item.Enabled, nil
		}
	}
	return false, fmt.Errorf("preset %q: %w", id, prompt.ErrNotFound)
}

// SetEnabled toggles an item's enabled flag and writes the file.
func (s *Store) SetEnabled(_ context.Context, id string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	for i := range file.Prompts {
		if file.Prompts[i].Identifier == id {
			file.Prompts[i].Enabled = enabled
			return s.save(file)
		}
	}
	return fmt.Errorf("preset %q: %w", id, prompt.ErrNotFound)
}

// GetContent returns the prompt body for an item.
func (s *Store) GetContent(_ context.Context, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return "", err
	}

	for _, item := range file.Prompts {
		if item.Identifier == id {
			return item.Content, nil
		}
	}
	return "", fmt.Errorf("preset %q: %w", id, prompt.ErrNotFound)
}

// SaveOrder rewrites the prompt list in the given identifier order. Every
// identifier must refer to an existing entry and appear exactly once.
func (s *Store) SaveOrder(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}
	if len(ids) != len(file.Prompts) {
		return fmt.Errorf("save order: got %d ids, preset has %d prompts", len(ids), len(file.Prompts))
	}

	byID := make(map[string]prompt.Item, len(file.Prompts))
	for _, item := range file.Prompts {
		byID[item.Identifier] = item
	}

	reordered := make([]prompt.Item, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok || seen[id] {
			return fmt.Errorf("save order %q: %w", id, prompt.ErrNotFound)
		}
		seen[id] = true
		reordered = append(reordered, item)
	}

	file.Prompts = reordered
	return s.save(file)
}

// load reads the preset file from disk. A missing file reads as empty.
func (s *Store) load() (File, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("read preset: %w", err)
	}

	if len(data) == 0 {
		return File{}, nil
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("parse preset: %w", err)
	}
	return file, nil
}

// save writes the preset file atomically so the host never observes a
// half-written list.
func (s *Store) save(file File) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preset: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write preset: %w", err)
	}
	return os.Rename(tmp, s.path)
}
