// ABOUTME: Key/value storage backends for persisted session state
// ABOUTME: FileStorage keeps a JSON object on disk; MemoryStorage is for tests

package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Storage is the single persistence medium for session state. Every read
// goes to the medium so separate processes always agree.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(keys ...string) error
}

// FileStorage persists key/value pairs as a JSON object in one file
type FileStorage struct {
	path string
	mu   sync.Mutex
}

// NewFileStorage creates a file-backed storage at path. The file and its
// directory are created on first write.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Path returns the backing file path
func (fs *FileStorage) Path() string {
	return fs.path
}

func (fs *FileStorage) Get(key string) (string, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.read()
	if err != nil {
		slog.Warn("Session file unreadable, treating as empty", "path", fs.path, "error", err)
		return "", false
	}
	v, ok := values[key]
	return v, ok
}

func (fs *FileStorage) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.read()
	if err != nil {
		// A corrupt file is replaced rather than blocking login forever
		values = map[string]string{}
	}
	values[key] = value
	return fs.write(values)
}

func (fs *FileStorage) Delete(keys ...string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.read()
	if err != nil {
		values = map[string]string{}
	}
	for _, k := range keys {
		delete(values, k)
	}
	if len(values) == 0 {
		if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
		return nil
	}
	return fs.write(values)
}

func (fs *FileStorage) read() (map[string]string, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("invalid session file: %w", err)
	}
	return values, nil
}

// write replaces the file atomically so a crash never leaves half a token
func (fs *FileStorage) write(values map[string]string) error {
	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, fs.path)
}

// MemoryStorage keeps values in a map
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]string{}}
}

func (ms *MemoryStorage) Get(key string) (string, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	v, ok := ms.values[key]
	return v, ok
}

func (ms *MemoryStorage) Set(key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.values[key] = value
	return nil
}

func (ms *MemoryStorage) Delete(keys ...string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for _, k := range keys {
		delete(ms.values, k)
	}
	return nil
}

// Len reports how many keys are stored
func (ms *MemoryStorage) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.values)
}
