package related

import (
	"context"

	"github.com/netfacet/atlasbridge/internal/domain/result"
)

type mockIssues struct {
	res     result.IssueResult
	lastJQL string
	lastMax int
	calls   int
}

func (m *mockIssues) Search(_ context.Context, jql string, maxResults int) result.IssueResult {
	m.calls++
	m.lastJQL = jql
	m.lastMax = maxResults
	if m.res.Issues == nil {
		m.res.Issues = []result.Issue{}
	}
	return m.res
}

type mockPages struct {
	res     result.PageResult
	lastCQL string
	lastMax int
	calls   int
}

func (m *mockPages) Search(_ context.Context, cql string, limit int) result.PageResult {
	m.calls++
	m.lastCQL = cql
	m.lastMax = limit
	if m.res.Pages == nil {
		m.res.Pages = []result.Page{}
	}
	return m.res
}
