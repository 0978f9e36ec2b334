package correct

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when cachePayload format changes
const cacheSchemaVersion uint16 = 1

// Digest identifies a rule file by content hash.
type Digest [sha256.Size]byte

// Cache stores compiled rule sets on disk keyed by the source file digest,
// so very large external rule files are parsed once, not on every run.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema        uint16            `msgpack:"schema"`
	Version       string            `msgpack:"version"`
	TotalRules    int               `msgpack:"total_rules"`
	Substitutions map[string]string `msgpack:"substitutions"`
	Patterns      []PatternRule     `msgpack:"patterns"`
	SavedAt       time.Time         `msgpack:"saved_at"`
}

// OpenCache initializes and returns a rule cache at the standard location.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "rules")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".bin")
}

// Load returns the cached rule set for key, if present and schema-current.
func (c *Cache) Load(key Digest) (*RuleSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	var payload cachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false
	}
	return &RuleSet{
		Version:       payload.Version,
		TotalRules:    payload.TotalRules,
		Substitutions: payload.Substitutions,
		Patterns:      payload.Patterns,
	}, true
}

// Store writes rs to the cache under key.
func (c *Cache) Store(key Digest, rs *RuleSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := cachePayload{
		Schema:        cacheSchemaVersion,
		Version:       rs.Version,
		TotalRules:    rs.TotalRules,
		Substitutions: rs.Substitutions,
		Patterns:      rs.Patterns,
		SavedAt:       time.Now().UTC(),
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode rule cache: %w", err)
	}
	path := c.pathFor(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadRulesCached reads a JSON rule file through the cache. A cache hit
// skips JSON parsing entirely; a miss parses and backfills the cache.
func LoadRulesCached(path string, cache *Cache) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}
	key := Digest(sha256.Sum256(data))
	if cache != nil {
		if rs, ok := cache.Load(key); ok {
			return rs, nil
		}
	}
	rs, err := LoadRules(path)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		_ = cache.Store(key, rs) // a cache write failure is not a load failure
	}
	return rs, nil
}
