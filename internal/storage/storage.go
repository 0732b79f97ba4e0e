package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// Storage keys for the planning collections. Each key is an
// independent JSON document; there are no cross-key transactions.
const (
	KeyWeddingInfo      = "wedding-info"
	KeyFavorites        = "favorites"
	KeyQuotations       = "quotations"
	KeyBudgetCategories = "budget-categories"
	KeyBudgetExpenses   = "budget-expenses"
	KeyBudgetSettings   = "budget-settings"
	KeyGuests           = "guests"
	KeyGuestHouseholds  = "guest-households"
	KeyBookings         = "bookings"
)

const envelopeVersion = 1

// envelope wraps every persisted document so fields can be added
// later without guessing at the on-disk format.
type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Store is a key-value JSON document store over a data directory,
// one file per key. Reads never fail: missing or corrupt documents
// fall back to the caller's default and log a warning. Writes are
// atomic (temp file + rename).
type Store struct {
	mu  sync.RWMutex
	dir string
	log zerolog.Logger
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir, log: log.With().Str("component", "storage").Logger()}, nil
}

// Read decodes the document at key into a value of type T. On any
// failure (missing file, unreadable file, malformed JSON, shape
// mismatch) it returns fallback and logs a warning; it never errors.
func Read[T any](s *Store, key string, fallback T) T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("key", key).Msg("Unreadable document, using default")
		}
		return fallback
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fallback
	}

	payload := data
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Version > 0 && len(env.Data) > 0 {
		payload = env.Data
	}
	// Legacy documents written before the envelope are a raw
	// collection at the top level; decode them directly.

	var value T
	if err := json.Unmarshal(payload, &value); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Corrupt document, using default")
		return fallback
	}
	return value
}

// Write serializes value and atomically replaces the document at key.
// Serialization and I/O errors propagate; callers must not assume
// success.
func Write[T any](s *Store, key string, value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	data, err := json.MarshalIndent(envelope{Version: envelopeVersion, Data: payload}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s envelope: %w", key, err)
	}

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
