package related

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/netfacet/atlasbridge/internal/domain"
	"github.com/netfacet/atlasbridge/internal/domain/result"
	"github.com/netfacet/atlasbridge/internal/metrics"
)

// failedConfluenceMessage is the operator-facing error shown when the
// wiki cannot be reached.
const failedConfluenceMessage = "Failed to connect to Confluence"

// pageSearcher is the consumer interface over the Confluence client (ISP).
type pageSearcher interface {
	Search(ctx context.Context, cql string, limit int) ([]result.Page, int, error)
}

// PageRepo serves wiki searches through the cache.
type PageRepo struct {
	client pageSearcher
	cache  cache
}

// NewPageRepo creates the page repository. store may be nil and ttl
// may be zero; both disable caching.
func NewPageRepo(client pageSearcher, s store, ttl time.Duration, logger *zap.Logger) *PageRepo {
	return &PageRepo{
		client: client,
		cache:  cache{store: s, ttl: ttl, logger: logger},
	}
}

// Search resolves a rendered CQL query into a well-formed PageResult.
// An empty query, an unconfigured backend, and a transport failure all
// yield a usable result object; only the last carries an error message.
func (r *PageRepo) Search(ctx context.Context, cql string, limit int) result.PageResult {
	empty := result.PageResult{Pages: []result.Page{}}
	if cql == "" {
		return empty
	}

	key := cacheKey("confluence", cql)
	if r.cache.enabled() {
		if res, ok := r.getCached(ctx, key); ok {
			metrics.CacheTotal.WithLabelValues("confluence", "hit").Inc()
			res.Cached = true
			return res
		}
		metrics.CacheTotal.WithLabelValues("confluence", "miss").Inc()
	}

	pages, total, err := r.client.Search(ctx, cql, limit)
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			return empty
		}
		empty.Error = failedConfluenceMessage
		return empty
	}

	res := result.PageResult{Pages: pages, Total: total}
	if res.Pages == nil {
		res.Pages = []result.Page{}
	}
	r.putCached(ctx, key, res)
	return res
}

func (r *PageRepo) getCached(ctx context.Context, key string) (result.PageResult, bool) {
	data, err := r.cache.store.Get(ctx, key)
	if err != nil {
		logCacheMiss(r.cache.logger, key, err)
		return result.PageResult{}, false
	}
	var res result.PageResult
	if err := json.Unmarshal(data, &res); err != nil {
		r.cache.logger.Warn("failed to decode cached page result", zap.String("key", key), zap.Error(err))
		return result.PageResult{}, false
	}
	return res, true
}

func (r *PageRepo) putCached(ctx context.Context, key string, res result.PageResult) {
	if !r.cache.enabled() {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		r.cache.logger.Warn("failed to encode page result", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.cache.store.SetWithTTL(ctx, key, data, r.cache.ttl); err != nil {
		r.cache.logger.Warn("failed to cache page result", zap.String("key", key), zap.Error(err))
	}
}
