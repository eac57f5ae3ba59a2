package related

import (
	"context"
	"time"

	"github.com/netfacet/atlasbridge/internal/db"
	"github.com/netfacet/atlasbridge/internal/domain/result"
)

type mockIssueSearcher struct {
	issues []result.Issue
	total  int
	err    error
	calls  int
}

func (m *mockIssueSearcher) Search(_ context.Context, _ string, _ int) ([]result.Issue, int, error) {
	m.calls++
	return m.issues, m.total, m.err
}

type mockPageSearcher struct {
	pages []result.Page
	total int
	err   error
	calls int
}

func (m *mockPageSearcher) Search(_ context.Context, _ string, _ int) ([]result.Page, int, error) {
	m.calls++
	return m.pages, m.total, m.err
}

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn   func(ctx context.Context, key string) ([]byte, error)
	setFn   func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	setKeys []string
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.setKeys = append(m.setKeys, key)
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}
