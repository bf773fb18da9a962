package dialect

import (
	"strings"
	"sync"

	"github.com/rs/xid"
	"go.uber.org/zap"
)

// entry is one memoized registry slot: the resolved strategy plus an xid
// assigned at insertion time, purely so a caller tracing compiles through
// zap can correlate which cached strategy instance served a given compile
// (grounded on qbloq-graphjin-agentico's use of rs/xid for correlation ids).
type entry struct {
	strategy Strategy
	id       xid.ID
}

// Registry is the process-wide memoization of stateless dialect strategies
// (C11). Resolution is keyed by (dialect, version); overrides let a caller
// register a version-qualified replacement strategy (e.g. a MySQL-8.4
// specific renderer) without touching any call site. The zero value is not
// ready for use — call NewRegistry.
type Registry struct {
	mu        sync.RWMutex
	base      map[Name]Strategy
	overrides map[string]Strategy
	cache     map[string]entry
	logger    *zap.SugaredLogger
}

// NewRegistry builds a Registry pre-seeded with the three built-in
// strategies (MySQL also serving MariaDB).
func NewRegistry() *Registry {
	return &Registry{
		base: map[Name]Strategy{
			MySQL:      mysqlStrategy{},
			PostgreSQL: postgresStrategy{},
			SQLite:     sqliteStrategy{},
		},
		overrides: make(map[string]Strategy),
		cache:     make(map[string]entry),
		logger:    zap.NewNop().Sugar(),
	}
}

// SetLogger installs a logger used for cache hit/miss diagnostics. Passing
// nil restores the no-op logger.
func (r *Registry) SetLogger(l *zap.SugaredLogger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	r.logger = l
}

// RegisterOverride installs a version-qualified strategy override for a
// dialect. An empty version registers a dialect-wide override that applies
// regardless of the requested version.
func (r *Registry) RegisterOverride(name, version string, s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[overrideKey(Name(name), version)] = s
	// Any cached resolution for this (name, version) pair is now stale; a
	// dialect-wide override makes every cached version of the dialect stale.
	if version == "" {
		prefix := cacheKey(Name(name), "")
		for k := range r.cache {
			if strings.HasPrefix(k, prefix) {
				delete(r.cache, k)
			}
		}
		return
	}
	delete(r.cache, cacheKey(Name(name), version))
}

// Resolve returns the strategy for a (dialect, version) pair, preferring a
// version-qualified override, then a dialect-wide override, then the base
// strategy. Resolution is memoized; repeated calls after warm-up are O(1)
// under the read lock.
func (r *Registry) Resolve(name Name, version string) Strategy {
	family := name.family()
	key := cacheKey(family, version)

	r.mu.RLock()
	if e, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		r.logger.Debugw("dialect registry cache hit", "dialect", family, "version", version, "entry", e.id.String())
		return e.strategy
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check under the write lock in case another goroutine warmed it.
	if e, ok := r.cache[key]; ok {
		return e.strategy
	}

	strategy := r.overrides[overrideKey(family, version)]
	if strategy == nil {
		strategy = r.overrides[overrideKey(family, "")]
	}
	if strategy == nil {
		strategy = r.base[family]
	}

	id := xid.New()
	r.cache[key] = entry{strategy: strategy, id: id}
	r.logger.Debugw("dialect registry cache miss", "dialect", family, "version", version, "entry", id.String())
	return strategy
}

// Clear resets both the resolution cache and every registered override,
// returning the registry to its freshly-constructed state (base strategies
// only).
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides = make(map[string]Strategy)
	r.cache = make(map[string]entry)
}

func cacheKey(name Name, version string) string    { return string(name) + "|" + version }
func overrideKey(name Name, version string) string  { return string(name) + "|" + version }

// Default is the process-wide registry through which every qb statement
// builder resolves its dialect strategy. Guarded internally by Registry's own
// mutex, safe for concurrent use by multiple statement compiles (spec §5).
var Default = NewRegistry()
