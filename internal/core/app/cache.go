package app

import (
	"crypto/sha256"
	"encoding/hex"
	"fixturecheck/internal/engine/checker"
	"fixturecheck/internal/shared/observability"
	"time"

	"github.com/maypok86/otter"
)

// reportCache keeps per-file diagnostics keyed by path and content digest.
// A nil *reportCache is a disabled cache.
type reportCache struct {
	entries otter.Cache[string, []checker.Diagnostic]
}

func newReportCache(capacity int, ttl time.Duration) (*reportCache, error) {
	if capacity <= 0 {
		return nil, nil
	}
	builder := otter.MustBuilder[string, []checker.Diagnostic](capacity)
	if ttl > 0 {
		c, err := builder.WithTTL(ttl).Build()
		if err != nil {
			return nil, err
		}
		return &reportCache{entries: c}, nil
	}
	c, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &reportCache{entries: c}, nil
}

func cacheKey(path string, content []byte) string {
	sum := sha256.Sum256(content)
	return path + "\x00" + hex.EncodeToString(sum[:])
}

func (c *reportCache) Get(key string) ([]checker.Diagnostic, bool) {
	if c == nil {
		return nil, false
	}
	diags, ok := c.entries.Get(key)
	if ok {
		observability.CacheHitsTotal.Inc()
		return append([]checker.Diagnostic(nil), diags...), true
	}
	observability.CacheMissesTotal.Inc()
	return nil, false
}

func (c *reportCache) Set(key string, diags []checker.Diagnostic) {
	if c == nil {
		return
	}
	c.entries.Set(key, append([]checker.Diagnostic(nil), diags...))
}

func (c *reportCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Size()
}

func (c *reportCache) Close() {
	if c == nil {
		return
	}
	c.entries.Close()
}
