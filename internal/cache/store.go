package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// entryFileExtension is the file extension used for cache entries.
const entryFileExtension = ".json"

// Lookup errors. All of them mean "treat as a cache miss" to callers; they
// are distinct so logs can say why the miss happened.
var (
	ErrEntryNotFound = errors.New("cache entry not found")
	ErrEntryExpired  = errors.New("cache entry expired")
	ErrEntryCorrupt  = errors.New("cache entry corrupt")
	ErrEmptyCommand  = errors.New("command cannot be empty")
)

// Config holds the store's construction parameters. The cache directory is
// passed in explicitly so tests can point the store at a temp dir.
type Config struct {
	// Dir is the directory holding one entry file per distinct command.
	Dir string
}

// FileStore persists command results as JSON files, one per distinct
// command, keyed by the SHA-256 hash of the command text.
//
// The store holds no locks across operations: a single invocation is
// strictly sequential, and racing invocations are resolved last-writer-wins
// by the atomic rename in Store.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at cfg.Dir, creating the directory if
// it does not exist. Creation is idempotent and safe to race with other
// invocations.
func NewFileStore(cfg Config) (*FileStore, error) {
	if cfg.Dir == "" {
		return nil, errors.New("cache directory cannot be empty")
	}

	if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return &FileStore{dir: cfg.Dir}, nil
}

// Dir returns the cache directory path.
func (s *FileStore) Dir() string {
	return s.dir
}

// Lookup returns the fresh entry for command, or an error describing why
// there is none: ErrEntryNotFound when no file exists, ErrEntryCorrupt when
// the file does not parse (e.g. a truncated write from a crashed process),
// and ErrEntryExpired when the entry is past its TTL. Lookup never mutates
// the store; expired entries stay in place until the next Store overwrites
// them.
func (s *FileStore) Lookup(command string) (*Entry, error) {
	if command == "" {
		return nil, ErrEmptyCommand
	}

	data, err := os.ReadFile(s.entryPath(command))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("reading cache entry: %w", err)
	}

	var entry Entry
	if unmarshalErr := json.Unmarshal(data, &entry); unmarshalErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntryCorrupt, unmarshalErr)
	}

	if entry.IsExpired() {
		return nil, ErrEntryExpired
	}

	return &entry, nil
}

// Store writes a new entry for command, replacing any previous one. The
// entry is written to a temp file in the cache directory and renamed into
// place, so a concurrent Lookup sees either the old entry or the new one,
// never a torn write.
func (s *FileStore) Store(command string, stdout, stderr []byte, exitCode int, ttlSeconds int64) error {
	if command == "" {
		return ErrEmptyCommand
	}

	entry := NewEntry(command, stdout, stderr, exitCode, ttlSeconds)
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}

	finalPath := s.entryPath(command)

	tmpFile, err := os.CreateTemp(s.dir, Key(command)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing cache entry: %w", writeErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp cache file: %w", closeErr)
	}

	if renameErr := os.Rename(tmpPath, finalPath); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing cache entry: %w", renameErr)
	}

	return nil
}

// Delete removes the entry for command. Removing an absent entry is not an
// error.
func (s *FileStore) Delete(command string) error {
	if command == "" {
		return ErrEmptyCommand
	}

	if err := os.Remove(s.entryPath(command)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	return nil
}

// Clear removes all entries and returns how many were removed. A missing
// cache directory is treated as an already-empty cache.
func (s *FileStore) Clear() (int, error) {
	removed := 0
	err := s.walkEntryFiles(func(path string) error {
		if removeErr := os.Remove(path); removeErr != nil {
			return fmt.Errorf("removing %s: %w", filepath.Base(path), removeErr)
		}
		removed++
		return nil
	})
	return removed, err
}

// CleanupExpired removes only the entries past their TTL and returns how
// many were removed. Unparseable files are removed as well since they can
// never be replayed.
func (s *FileStore) CleanupExpired() (int, error) {
	removed := 0
	err := s.walkEntryFiles(func(path string) error {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil // raced with a writer or reader, skip
		}

		var entry Entry
		if json.Unmarshal(data, &entry) == nil && entry.IsValid() {
			return nil
		}

		if removeErr := os.Remove(path); removeErr != nil && !os.IsNotExist(removeErr) {
			return fmt.Errorf("removing %s: %w", filepath.Base(path), removeErr)
		}
		removed++
		return nil
	})
	return removed, err
}

// Entries returns every parseable entry in the store, expired ones
// included, sorted by command text for deterministic listings.
func (s *FileStore) Entries() ([]*Entry, error) {
	var entries []*Entry
	err := s.walkEntryFiles(func(path string) error {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}

		var entry Entry
		if json.Unmarshal(data, &entry) != nil {
			return nil // corrupt files are invisible to listings
		}
		entries = append(entries, &entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Command < entries[j].Command
	})
	return entries, nil
}

// Size returns the total size in bytes of all entry files.
func (s *FileStore) Size() (int64, error) {
	var total int64
	err := s.walkEntryFiles(func(path string) error {
		info, statErr := os.Stat(path)
		if statErr != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	return total, err
}

// walkEntryFiles calls fn for every entry file in the cache directory,
// skipping subdirectories and non-entry files. A missing directory yields
// no calls and no error.
func (s *FileStore) walkEntryFiles(fn func(path string) error) error {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading cache directory: %w", err)
	}

	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !strings.HasSuffix(dirEntry.Name(), entryFileExtension) {
			continue
		}
		if err := fn(filepath.Join(s.dir, dirEntry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// entryPath returns the file path for a command's entry.
func (s *FileStore) entryPath(command string) string {
	return filepath.Join(s.dir, Key(command)+entryFileExtension)
}
