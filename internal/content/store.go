package content

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

// SectionVisiblePrefix is the key namespace for per-section visibility
// flags, e.g. "section_visible_hero".
const SectionVisiblePrefix = "section_visible_"

// hiddenValue is the only stored value that hides a section. Anything
// else, including a missing key, an empty string or "true", renders the
// section. Sections default to visible so a half-configured store can
// never blank out the storefront.
const hiddenValue = "false"

// Repository is the persistence boundary of the store: a single bulk
// read of every key/value row plus an upsert-by-key bulk write.
type Repository interface {
	GetAllContent(ctx context.Context) (map[string]string, error)
	UpsertContent(ctx context.Context, entries map[string]string) error
}

// Store supplies runtime-overridable page content with fallback to
// compiled-in defaults. It is loaded once at startup and the snapshot is
// immutable afterwards; admin writes swap in a fresh snapshot as a whole
// (see SaveAll), so readers always observe a complete, consistent map.
//
// Until Load succeeds every accessor returns the caller's default. All
// failure modes (missing key, malformed JSON, failed load) degrade to
// the default; nothing here is an error condition for callers. Do not
// reuse this for transactional data.
type Store struct {
	repo Repository

	mu      sync.RWMutex
	entries map[string]string
	loaded  bool
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Load performs the one bulk fetch of all content rows. On error the
// store stays unloaded and accessors keep serving defaults; the caller
// decides whether that is fatal (it is not, for a storefront).
func (s *Store) Load(ctx context.Context) error {
	entries, err := s.repo.GetAllContent(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries = entries
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Text returns the override for key, or def when the store is not
// loaded or holds no entry for key.
func (s *Store) Text(key, def string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return def
	}
	if v, ok := s.entries[key]; ok {
		return v
	}
	return def
}

// Structured unmarshals the override for key into dst and reports
// whether dst was populated. A missing key, empty value or malformed
// JSON leaves dst untouched and returns false; admin-entered JSON must
// never take a page down.
func (s *Store) Structured(key string, dst any) bool {
	s.mu.RLock()
	raw, ok := "", false
	if s.loaded {
		raw, ok = s.entries[key]
	}
	s.mu.RUnlock()

	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Printf("content: malformed JSON for key %q, using default: %v", key, err)
		return false
	}
	return true
}

// StructuredOr is the value-returning form of Structured: the parsed
// override when present and well-formed, def otherwise.
func StructuredOr[T any](s *Store, key string, def T) T {
	var v T
	if s.Structured(key, &v) {
		return v
	}
	return def
}

// SectionVisible reports whether the page section should render. The
// flag lives under SectionVisiblePrefix + section and only the exact
// stored string "false" hides it.
func (s *Store) SectionVisible(section string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return true
	}
	return s.entries[SectionVisiblePrefix+section] != hiddenValue
}

// SaveAll upserts the given entries (last write wins, no conflict
// detection) and then reloads the snapshot so subsequent requests see
// the new values. The reload is the explicit invalidate-on-write signal;
// reads never refetch on their own.
func (s *Store) SaveAll(ctx context.Context, entries map[string]string) error {
	if err := s.repo.UpsertContent(ctx, entries); err != nil {
		return err
	}
	return s.Load(ctx)
}

// All returns a copy of the loaded snapshot, keyed for the admin editor.
func (s *Store) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}
