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

// failedJiraMessage is the operator-facing error shown when the issue
// tracker cannot be reached.
const failedJiraMessage = "Failed to connect to Jira"

// issueSearcher is the consumer interface over the Jira client (ISP).
type issueSearcher interface {
	Search(ctx context.Context, jql string, maxResults int) ([]result.Issue, int, error)
}

// IssueRepo serves issue-tracker searches through the cache.
type IssueRepo struct {
	client issueSearcher
	cache  cache
}

// NewIssueRepo creates the issue repository. store may be nil and ttl
// may be zero; both disable caching.
func NewIssueRepo(client issueSearcher, s store, ttl time.Duration, logger *zap.Logger) *IssueRepo {
	return &IssueRepo{
		client: client,
		cache:  cache{store: s, ttl: ttl, logger: logger},
	}
}

// Search resolves a rendered JQL query into a well-formed IssueResult.
// An empty query, an unconfigured backend, and a transport failure all
// yield a usable result object; only the last carries an error message.
func (r *IssueRepo) Search(ctx context.Context, jql string, maxResults int) result.IssueResult {
	empty := result.IssueResult{Issues: []result.Issue{}}
	if jql == "" {
		return empty
	}

	key := cacheKey("jira", jql)
	if r.cache.enabled() {
		if res, ok := r.getCached(ctx, key); ok {
			metrics.CacheTotal.WithLabelValues("jira", "hit").Inc()
			res.Cached = true
			return res
		}
		metrics.CacheTotal.WithLabelValues("jira", "miss").Inc()
	}

	issues, total, err := r.client.Search(ctx, jql, maxResults)
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			return empty
		}
		empty.Error = failedJiraMessage
		return empty
	}

	res := result.IssueResult{Issues: issues, Total: total}
	if res.Issues == nil {
		res.Issues = []result.Issue{}
	}
	r.putCached(ctx, key, res)
	return res
}

func (r *IssueRepo) getCached(ctx context.Context, key string) (result.IssueResult, bool) {
	data, err := r.cache.store.Get(ctx, key)
	if err != nil {
		logCacheMiss(r.cache.logger, key, err)
		return result.IssueResult{}, false
	}
	var res result.IssueResult
	if err := json.Unmarshal(data, &res); err != nil {
		r.cache.logger.Warn("failed to decode cached issue result", zap.String("key", key), zap.Error(err))
		return result.IssueResult{}, false
	}
	return res, true
}

func (r *IssueRepo) putCached(ctx context.Context, key string, res result.IssueResult) {
	if !r.cache.enabled() {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		r.cache.logger.Warn("failed to encode issue result", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.cache.store.SetWithTTL(ctx, key, data, r.cache.ttl); err != nil {
		r.cache.logger.Warn("failed to cache issue result", zap.String("key", key), zap.Error(err))
	}
}
