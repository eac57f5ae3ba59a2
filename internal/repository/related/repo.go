// Package related decorates the backend clients with result caching
// and error softening: callers always receive a well-formed result
// object, never an error. Cache keys are a stable content digest of
// the rendered query, so identical queries share entries across
// processes.
package related

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/netfacet/atlasbridge/internal/db"
)

const cacheKeyPrefix = "atlasbridge:related:"

// store is the consumer interface for the result cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// cache bundles the store with its policy. A nil store or a
// non-positive TTL disables caching entirely: every lookup is a miss
// and nothing is written.
type cache struct {
	store  store
	ttl    time.Duration
	logger *zap.Logger
}

func (c *cache) enabled() bool {
	return c.store != nil && c.ttl > 0
}

// cacheKey derives a stable key from the backend identifier and the
// exact rendered query string.
func cacheKey(backend, query string) string {
	h := sha256.Sum256([]byte(backend + "\x00" + query))
	return cacheKeyPrefix + backend + ":" + hex.EncodeToString(h[:])
}

// logCacheMiss warns about store failures but stays quiet on ordinary
// misses.
func logCacheMiss(logger *zap.Logger, key string, err error) {
	if errors.Is(err, db.ErrKeyNotFound) {
		return
	}
	logger.Warn("result cache lookup failed", zap.String("key", key), zap.Error(err))
}
