// Package session provides durable key-value persistence for the
// authenticated session (token, user record, and per-user caches).
//
// The store is deliberately forgiving: reads report missing or unreadable
// keys as absent, and writes log failures instead of returning them.
// Persistence is best-effort; callers must not assume durability.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/caresync/caresync/internal/log"
)

// Keys used by the auth session facade.
const (
	// KeyAuthToken holds the bearer token string.
	KeyAuthToken = "authToken"

	// KeyUserData holds the user record JSON blob.
	KeyUserData = "userData"

	// CachePrefix namespaces per-user local caches, cleared en masse at logout.
	CachePrefix = "cache."
)

// Store persists session fields as one file per key under a state directory.
// There is no in-memory cache at this layer; every read hits disk so a
// concurrent writer's result is visible on the next read.
type Store struct {
	dir    string
	logger *log.Logger
}

// NewStore creates a store rooted at dir.
func NewStore(dir string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the state directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Get reads the value for key. Any read failure is treated as absence.
func (s *Store) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set writes the value for key. Failures are logged and otherwise ignored.
func (s *Store) Set(key, value string) {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		s.logger.Warn("session store: failed to create state dir", "dir", s.dir, "error", err)
		return
	}
	if err := os.WriteFile(s.path(key), []byte(value), 0o600); err != nil {
		s.logger.Warn("session store: failed to write key", "key", key, "error", err)
	}
}

// Remove deletes the given keys, best-effort.
func (s *Store) Remove(keys ...string) {
	for _, key := range keys {
		if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("session store: failed to remove key", "key", key, "error", err)
		}
	}
}

// RemovePrefix deletes every key starting with prefix, best-effort.
func (s *Store) RemovePrefix(prefix string) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	sanitized := sanitize(prefix)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), sanitized) {
			if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
				s.logger.Warn("session store: failed to remove key", "key", entry.Name(), "error", err)
			}
		}
	}
}

// GetJSON reads and decodes the value for key into target.
// Returns false when the key is absent or the value does not decode.
func (s *Store) GetJSON(key string, target any) bool {
	raw, ok := s.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		s.logger.Warn("session store: corrupt value ignored", "key", key, "error", err)
		return false
	}
	return true
}

// SetJSON encodes value and writes it under key.
func (s *Store) SetJSON(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("session store: failed to encode value", "key", key, "error", err)
		return
	}
	s.Set(key, string(data))
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, sanitize(key))
}

// sanitize keeps keys usable as file names. Keys are short identifiers like
// "authToken" or "cache.u1.reminders"; anything else is mapped to '_'.
func sanitize(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_' || r == '@':
			return r
		default:
			return '_'
		}
	}, key)
}
