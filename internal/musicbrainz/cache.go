package musicbrainz

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"helictag/internal/herr"
)

// Cache is the on-disk, content-addressed JSON cache of spec.md §4.10,
// §6: release/{mbid}.json and release-search/{sha256}.json under a base
// directory. Writes are last-write-wins (spec.md §5) — no locking.
type Cache struct {
	baseDir string
}

// NewCache returns a Cache rooted at baseDir (e.g. $XDG_CACHE_HOME/helictag/musicbrainz).
func NewCache(baseDir string) *Cache {
	return &Cache{baseDir: baseDir}
}

// DefaultCacheDir returns $XDG_CACHE_HOME/helictag/musicbrainz, falling
// back to ~/.cache when XDG_CACHE_HOME is unset.
func DefaultCacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "helictag", "musicbrainz"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("musicbrainz: resolve cache dir: %w", err)
	}
	return filepath.Join(home, ".cache", "helictag", "musicbrainz"), nil
}

func (c *Cache) releasePath(mbid string) string {
	return filepath.Join(c.baseDir, "release", mbid+".json")
}

// SearchKey computes the content-address for a search cache entry:
// sha256(query_utf8 || 0x7C || limit_byte || 0x7C || offset_be_u16), per
// spec.md §8 scenario H.
func SearchKey(query string, limit int, offset int) string {
	h := sha256.New()
	h.Write([]byte(query))
	h.Write([]byte{0x7C})
	h.Write([]byte{byte(limit)})
	h.Write([]byte{0x7C})
	var offsetBytes [2]byte
	binary.BigEndian.PutUint16(offsetBytes[:], uint16(offset))
	h.Write(offsetBytes[:])
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) searchPath(key string) string {
	return filepath.Join(c.baseDir, "release-search", key+".json")
}

// GetRelease reads a cached release by MBID. Returns herr.ErrCacheMiss on
// absence; I/O or JSON errors are wrapped in herr.CacheError and treated
// as a miss by callers (spec.md §7).
func (c *Cache) GetRelease(mbid string) (*Release, error) {
	return readJSON[Release](c.releasePath(mbid))
}

// PutRelease writes r to the cache keyed by its MBID.
func (c *Cache) PutRelease(r *Release) error {
	return writeJSON(c.releasePath(r.ID), r)
}

// SearchResult is the cached shape of a search response: candidate
// releases plus the total result count MusicBrainz reported, for paging.
type SearchResult struct {
	Releases []*Release `json:"releases"`
	Count    int        `json:"count"`
}

// GetSearch reads a cached search result by its content-address key.
func (c *Cache) GetSearch(key string) (*SearchResult, error) {
	return readJSON[SearchResult](c.searchPath(key))
}

// PutSearch writes a search result to the cache under key.
func (c *Cache) PutSearch(key string, result *SearchResult) error {
	return writeJSON(c.searchPath(key), result)
}

// Stats reports the cache's on-disk footprint (spec.md §6 "cache"
// subcommand): number of cached releases and searches, plus total bytes.
type Stats struct {
	ReleaseCount     int
	ReleaseBytes     int64
	SearchCount      int
	SearchBytes      int64
}

// GetStats walks the release and release-search directories and totals
// their entry counts and sizes.
func (c *Cache) GetStats() (Stats, error) {
	var s Stats
	var err error
	s.ReleaseCount, s.ReleaseBytes, err = dirStats(filepath.Join(c.baseDir, "release"))
	if err != nil {
		return s, err
	}
	s.SearchCount, s.SearchBytes, err = dirStats(filepath.Join(c.baseDir, "release-search"))
	return s, err
}

func dirStats(dir string) (count int, bytes int64, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, &herr.CacheError{Op: "readdir", Err: err}
	}
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		count++
		bytes += info.Size()
	}
	return count, bytes, nil
}

// Clear removes every cached release and search result under baseDir.
func (c *Cache) Clear() error {
	for _, sub := range []string{"release", "release-search"} {
		if err := os.RemoveAll(filepath.Join(c.baseDir, sub)); err != nil {
			return &herr.CacheError{Op: "remove", Err: err}
		}
	}
	return nil
}

func readJSON[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, herr.ErrCacheMiss
		}
		return nil, &herr.CacheError{Op: "read", Err: err}
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &herr.CacheError{Op: "unmarshal", Err: err}
	}
	return &v, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &herr.CacheError{Op: "mkdir", Err: err}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return &herr.CacheError{Op: "marshal", Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &herr.CacheError{Op: "write", Err: err}
	}
	return nil
}
