package connection

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/netfacet/atlasbridge/internal/domain"
)

type mockProber struct {
	name string
	err  error
}

func (m *mockProber) CurrentUser(_ context.Context) (string, error) {
	return m.name, m.err
}

func TestTestJira_Connected(t *testing.T) {
	svc := New(&mockProber{name: "Jane Admin"}, &mockProber{}, zap.NewNop())

	st := svc.TestJira(context.Background())
	if !st.OK {
		t.Fatalf("expected success, got %+v", st)
	}
	if st.Message != "Connected as Jane Admin" {
		t.Errorf("message = %q", st.Message)
	}
}

func TestTestJira_EmptyDisplayName(t *testing.T) {
	svc := New(&mockProber{name: ""}, &mockProber{}, zap.NewNop())

	st := svc.TestJira(context.Background())
	if !st.OK || st.Message != "Connected as Unknown" {
		t.Errorf("unexpected status: %+v", st)
	}
}

func TestTestJira_NotConfigured(t *testing.T) {
	svc := New(&mockProber{err: domain.ErrNotConfigured}, &mockProber{}, zap.NewNop())

	st := svc.TestJira(context.Background())
	if st.OK {
		t.Fatal("expected failure")
	}
	if st.Message != "Jira URL not configured" {
		t.Errorf("message = %q", st.Message)
	}
}

func TestTestJira_NoCredentials(t *testing.T) {
	svc := New(&mockProber{err: domain.ErrNoCredentials}, &mockProber{}, zap.NewNop())

	st := svc.TestJira(context.Background())
	if st.OK {
		t.Fatal("expected failure")
	}
	want := "Jira credentials not configured (need token or username/password)"
	if st.Message != want {
		t.Errorf("message = %q, want %q", st.Message, want)
	}
}

func TestTestJira_TransportFailure(t *testing.T) {
	svc := New(&mockProber{err: errors.New("connection refused")}, &mockProber{}, zap.NewNop())

	st := svc.TestJira(context.Background())
	if st.OK {
		t.Fatal("expected failure")
	}
	if st.Message != "Failed to connect to Jira" {
		t.Errorf("message = %q", st.Message)
	}
}

func TestTestConfluence_UsesBackendName(t *testing.T) {
	svc := New(&mockProber{}, &mockProber{err: domain.ErrNotConfigured}, zap.NewNop())

	st := svc.TestConfluence(context.Background())
	if st.Message != "Confluence URL not configured" {
		t.Errorf("message = %q", st.Message)
	}
}
