package chi

import (
	"context"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/netfacet/atlasbridge/internal/domain/result"
	"github.com/netfacet/atlasbridge/internal/domain/rule"
	connectionuc "github.com/netfacet/atlasbridge/internal/usecase/connection"
	healthuc "github.com/netfacet/atlasbridge/internal/usecase/health"
	relateduc "github.com/netfacet/atlasbridge/internal/usecase/related"
)

type mockIssueSearcher struct {
	res result.IssueResult
}

func (m *mockIssueSearcher) Search(_ context.Context, _ string, _ int) result.IssueResult {
	if m.res.Issues == nil {
		m.res.Issues = []result.Issue{}
	}
	return m.res
}

type mockPageSearcher struct {
	res result.PageResult
}

func (m *mockPageSearcher) Search(_ context.Context, _ string, _ int) result.PageResult {
	if m.res.Pages == nil {
		m.res.Pages = []result.Page{}
	}
	return m.res
}

type mockProber struct {
	name string
	err  error
}

func (m *mockProber) CurrentUser(_ context.Context) (string, error) {
	return m.name, m.err
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type testDeps struct {
	issues *mockIssueSearcher
	pages  *mockPageSearcher
	jira   *mockProber
	conf   *mockProber
	cache  *mockPinger
}

// newTestRouter wires a full router around mocks, mirroring the
// composition root.
func newTestRouter(t *testing.T, deps testDeps) chi.Router {
	t.Helper()

	if deps.issues == nil {
		deps.issues = &mockIssueSearcher{}
	}
	if deps.pages == nil {
		deps.pages = &mockPageSearcher{}
	}
	if deps.jira == nil {
		deps.jira = &mockProber{name: "Jane Admin"}
	}
	if deps.conf == nil {
		deps.conf = &mockProber{name: "Jane Admin"}
	}
	if deps.cache == nil {
		deps.cache = &mockPinger{}
	}

	relatedSvc := relateduc.New(deps.issues, deps.pages, relateduc.Options{
		DeviceRules: []rule.FieldRule{
			{Name: "Hostname", Attribute: "name", Enabled: true},
			{Name: "Serial", Attribute: "serial", Enabled: true},
		},
		VMRules: []rule.FieldRule{
			{Name: "Name", Attribute: "name", Enabled: true},
		},
		JiraMax:       10,
		ConfluenceMax: 10,
	})
	connectionSvc := connectionuc.New(deps.jira, deps.conf, zap.NewNop())
	healthSvc := healthuc.New(deps.cache)

	settings := SettingsView{
		Jira:       BackendView{URL: "https://jira.example.com", Configured: true, MaxResults: 10},
		Confluence: BackendView{Configured: false, MaxResults: 10},
		Cache:      CacheView{Driver: "memory", TTLSec: 300},
	}

	server := NewServer(relatedSvc, connectionSvc, healthSvc, settings, zap.NewNop())
	r := chi.NewRouter()
	server.Register(r)
	return r
}
