// package store implements the durable key/document state store
//
// One JSON document per key in the SQLite kv table, always replaced
// wholesale. The contract mirrors browser local storage: reads that find
// nothing (or garbage) yield the zero collection, writes are best effort and
// never fail the caller. In-memory state stays authoritative between
// successful writes.
package store

import (
	"database/sql"
	"encoding/json"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvx/internal/shared"
)

// Store is the key/document persistence interface consumed by the wishlist,
// session, and theme state owners.
type Store interface {
	// Load returns the raw document stored under key, or nil when absent.
	Load(key string) []byte

	// Save replaces the document stored under key. Failures are swallowed.
	Save(key string, value []byte)

	// Delete removes the document stored under key, if any.
	Delete(key string)
}

// KVStore implements [Store] over the kv table of the local state database.
type KVStore struct {
	db     *sql.DB
	logger *log.Logger
}

// NewKVStore creates a store backed by the given database connection.
func NewKVStore(db *sql.DB, logger *log.Logger) *KVStore {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &KVStore{db: db, logger: logger}
}

// Load returns the raw document stored under key, or nil when absent or unreadable.
func (s *KVStore) Load(key string) []byte {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		s.logger.Warnf("failed to load %q, treating as absent: %v", key, err)
		return nil
	}
	return []byte(value)
}

// Save replaces the document stored under key with value.
//
// A rejected write (locked file, full disk) is logged and dropped; the next
// successful save writes the full current state anyway.
func (s *KVStore) Save(key string, value []byte) {
	query := `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.Exec(query, key, string(value)); err != nil {
		s.logger.Warnf("failed to save %q, keeping in-memory state: %v", key, err)
	}
}

// Delete removes the document stored under key.
func (s *KVStore) Delete(key string) {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		s.logger.Warnf("failed to delete %q: %v", key, err)
	}
}

// LoadCollection decodes the sequence stored under key.
//
// A missing document and a corrupt one are the same thing to callers: the
// empty collection. Corruption never surfaces as an error.
func LoadCollection[T any](s Store, key string) []T {
	raw := s.Load(key)
	if raw == nil {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// SaveCollection serializes items and stores the whole sequence under key.
func SaveCollection[T any](s Store, key string, items []T) {
	raw, err := json.Marshal(items)
	if err != nil {
		// Only reachable with unmarshalable element types; collections here
		// are plain data structs.
		return
	}
	s.Save(key, raw)
}
