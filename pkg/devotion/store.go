package devotion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// yearFilePattern is the on-disk name of one calendar year's store.
const yearFilePattern = "devotions_%d.json"

// dateKeys are the field names a list-form entry may carry its date under.
var dateKeys = []string{"date", "Date", "DATE", "day", "Day"}

// Store reads per-year devotion files from a directory. Loading is total:
// a missing, malformed, or wrong-shaped file loads as an empty year. Loaded
// years sit in a read-through cache; entries are read-only after population
// and stale content is acceptable.
type Store struct {
	dir   string
	cache *cache.Cache
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	// Default expiration 1 hour, expired years purged every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &Store{
		dir:   dir,
		cache: c,
	}
}

// YearPath returns the file a given year loads from.
func (s *Store) YearPath(year int) string {
	return filepath.Join(s.dir, fmt.Sprintf(yearFilePattern, year))
}

// LoadYear returns the year's day-blocks keyed by ISO date string. Keyed
// files are returned as-is; list files are keyed by each entry's own date
// field, normalized through the accepted formats, with undated or unparsable
// entries dropped and later duplicates overwriting earlier ones. Values are
// left untyped; callers deal with non-object values at resolve time.
func (s *Store) LoadYear(year int) map[string]any {
	key := strconv.Itoa(year)
	if x, found := s.cache.Get(key); found {
		return x.(map[string]any)
	}

	store := loadYearFile(s.YearPath(year))
	s.cache.Set(key, store, cache.DefaultExpiration)
	return store
}

func loadYearFile(path string) map[string]any {
	raw, err := os.ReadFile(path)
	if err != nil {
		return map[string]any{}
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return map[string]any{}
	}

	switch v := parsed.(type) {
	case map[string]any:
		return v
	case []any:
		return keyEntries(v)
	default:
		return map[string]any{}
	}
}

func keyEntries(entries []any) map[string]any {
	store := make(map[string]any, len(entries))
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		iso, ok := entryDate(entry)
		if !ok {
			continue
		}
		store[iso] = entry
	}
	return store
}

func entryDate(entry map[string]any) (string, bool) {
	for _, k := range dateKeys {
		v, ok := entry[k]
		if !ok {
			continue
		}
		str, ok := v.(string)
		if !ok {
			continue
		}
		if iso, ok := NormalizeDate(str); ok {
			return iso, true
		}
	}
	return "", false
}
