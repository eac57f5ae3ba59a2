package related

import (
	"context"

	"github.com/netfacet/atlasbridge/internal/domain/result"
)

// IssueSearcher serves issue-tracker searches for rendered JQL.
type IssueSearcher interface {
	Search(ctx context.Context, jql string, maxResults int) result.IssueResult
}

// PageSearcher serves wiki searches for rendered CQL.
type PageSearcher interface {
	Search(ctx context.Context, cql string, limit int) result.PageResult
}
