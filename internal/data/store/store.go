// Package store implements a small persistent key-value store addressed by
// integer keys, holding either an int32 or an opaque byte value per key.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/codeGROOVE-dev/retry"
	"github.com/penwyp/go-stampwatch/internal/core/constants"
	"github.com/penwyp/go-stampwatch/internal/util"
)

var (
	ErrNotFound       = errors.New("key not found")
	ErrValueTooLarge  = errors.New("value too large")
	ErrTypeMismatch   = errors.New("value has a different type")
	ErrCorrupt        = errors.New("store file is corrupt")
	ErrUnknownVersion = errors.New("unsupported store version")
)

const fileVersion = 1

// Store is the key-value interface used by the persistence layer
type Store interface {
	Exists(key uint32) bool
	ReadInt(key uint32) (int32, error)
	WriteInt(key uint32, value int32) error
	ReadData(key uint32) ([]byte, error)
	WriteData(key uint32, data []byte) error
	Delete(key uint32) error
	Flush() error
}

// Value holds exactly one of Int or Data
type Value struct {
	Int  *int32 `json:"int,omitempty"`
	Data []byte `json:"data,omitempty"`
}

type fileData struct {
	Version   int              `json:"version"`
	Values    map[string]Value `json:"values"`
	Revision  int64            `json:"revision"`
	Writer    int              `json:"writer"`
	UpdatedAt string           `json:"updated_at"`
}

// FileStore is a Store persisted as a single JSON file
type FileStore struct {
	path     string
	values   map[uint32]Value
	dirty    bool
	revision int64 // Revision of the last file content we wrote or read
	pid      int
	mu       sync.RWMutex
}

var _ Store = (*FileStore)(nil)

// Open loads the store at path; a missing file yields an empty store
func Open(path string) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		values: make(map[uint32]Value),
		pid:    os.Getpid(),
	}

	data, err := s.readFile()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			util.LogInfo("No existing store found, starting fresh", util.F("path", path))
			return s, nil
		}
		return nil, err
	}

	s.values = data.values
	s.revision = data.revision
	util.LogDebugf("Loaded %d values from %s", len(s.values), path)
	return s, nil
}

type loaded struct {
	values   map[uint32]Value
	revision int64
	writer   int
}

func (s *FileStore) readFile() (*loaded, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var file fileData
	if err := sonic.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	if file.Version != fileVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVersion, file.Version)
	}

	values := make(map[uint32]Value, len(file.Values))
	for k, v := range file.Values {
		key, err := strconv.ParseUint(k, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: bad key %q", ErrCorrupt, k)
		}
		if len(v.Data) > constants.MaxDataSize {
			return nil, fmt.Errorf("%w: key %d holds %d bytes, limit %d", ErrValueTooLarge, key, len(v.Data), constants.MaxDataSize)
		}
		values[uint32(key)] = v
	}
	return &loaded{values: values, revision: file.Revision, writer: file.Writer}, nil
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// Exists reports whether key holds a value
func (s *FileStore) Exists(key uint32) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

// ReadInt returns the int value at key
func (s *FileStore) ReadInt(key uint32) (int32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNotFound, key)
	}
	if v.Int == nil {
		return 0, fmt.Errorf("%w: key %d is not an int", ErrTypeMismatch, key)
	}
	return *v.Int, nil
}

// WriteInt stores an int value at key
func (s *FileStore) WriteInt(key uint32, value int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := value
	s.values[key] = Value{Int: &v}
	s.dirty = true
	return nil
}

// ReadData returns a copy of the data value at key
func (s *FileStore) ReadData(key uint32) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, key)
	}
	if v.Int != nil {
		return nil, fmt.Errorf("%w: key %d is not data", ErrTypeMismatch, key)
	}
	return append([]byte(nil), v.Data...), nil
}

// WriteData stores a data value at key
func (s *FileStore) WriteData(key uint32, data []byte) error {
	if len(data) > constants.MaxDataSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrValueTooLarge, len(data), constants.MaxDataSize)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = Value{Data: append([]byte{}, data...)}
	s.dirty = true
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (s *FileStore) Delete(key uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		s.dirty = true
	}
	return nil
}

// Flush writes pending changes to disk using atomic write
func (s *FileStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	revision := time.Now().UnixNano()
	if revision <= s.revision {
		revision = s.revision + 1
	}

	file := fileData{
		Version:   fileVersion,
		Values:    make(map[string]Value, len(s.values)),
		Revision:  revision,
		Writer:    s.pid,
		UpdatedAt: time.Unix(0, revision).Format(time.RFC3339),
	}
	for k, v := range s.values {
		file.Values[strconv.FormatUint(uint64(k), 10)] = v
	}

	data, err := sonic.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	err = retry.Do(
		func() error {
			return s.writeAtomic(data)
		},
		retry.Attempts(constants.FlushAttempts),
		retry.Delay(constants.FlushDelay),
		retry.OnRetry(func(n uint, err error) {
			util.LogWarn("retrying store flush", util.F("attempt", n+1), util.F("error", err))
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to save store: %w", err)
	}

	s.revision = revision
	s.dirty = false
	util.LogDebugf("Saved %d values to %s", len(s.values), s.path)
	return nil
}

func (s *FileStore) writeAtomic(data []byte) error {
	if err := util.EnsureDir(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	// Atomic write: write to temp file first, then rename
	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace store: %w", err)
	}
	return nil
}

// Reload re-reads the file when another process changed it.
// It reports whether the in-memory values were replaced.
func (s *FileStore) Reload() (bool, error) {
	data, err := s.readFile()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if data.revision == s.revision {
		return false, nil
	}
	if data.writer == s.pid && data.revision < s.revision {
		return false, nil
	}

	s.values = data.values
	s.revision = data.revision
	s.dirty = false
	util.LogInfo("Store reloaded after external change", util.F("path", s.path), util.F("writer", data.writer))
	return true, nil
}
