package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Konsultn-Engineering/namedbind/placeholder"
	"github.com/Konsultn-Engineering/namedbind/utils"
)

// DefaultSize is used when NewQueryCache is given a non-positive size.
const DefaultSize = 1024

// ConvertFunc produces the converted form of a raw statement.
type ConvertFunc func(sql string) (*placeholder.Converted, error)

// QueryCache keeps converted statements keyed by dialect and raw SQL.
// Entries are shared between callers and must not be modified.
type QueryCache struct {
	cache  *lru.Cache[uint64, *placeholder.Converted]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// Stats is a snapshot of cache usage.
type Stats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

func NewQueryCache(size int) (*QueryCache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New[uint64, *placeholder.Converted](size)
	if err != nil {
		return nil, err
	}
	return &QueryCache{cache: c}, nil
}

// Key returns the fingerprint under which sql is stored for a dialect.
func Key(dialectName, sql string) uint64 {
	return utils.Mix64(utils.FingerprintString(dialectName), utils.FingerprintString(sql))
}

func (c *QueryCache) Get(dialectName, sql string) (*placeholder.Converted, bool) {
	q, ok := c.cache.Get(Key(dialectName, sql))
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return q, ok
}

func (c *QueryCache) Set(dialectName, sql string, q *placeholder.Converted) {
	c.cache.Add(Key(dialectName, sql), q)
}

// GetOrConvert returns the cached conversion of sql or runs convert and
// stores its result. Conversion errors are returned and not cached.
func (c *QueryCache) GetOrConvert(dialectName, sql string, convert ConvertFunc) (*placeholder.Converted, error) {
	if q, ok := c.Get(dialectName, sql); ok {
		return q, nil
	}
	q, err := convert(sql)
	if err != nil {
		return nil, err
	}
	c.Set(dialectName, sql, q)
	return q, nil
}

func (c *QueryCache) Len() int {
	return c.cache.Len()
}

func (c *QueryCache) Stats() Stats {
	return Stats{
		Entries: c.cache.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}

func (c *QueryCache) Purge() {
	c.cache.Purge()
}
