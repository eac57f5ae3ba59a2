package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/netfacet/atlasbridge/internal/domain/result"
)

func TestDeviceRelated(t *testing.T) {
	deps := testDeps{
		issues: &mockIssueSearcher{res: result.IssueResult{
			Issues: []result.Issue{{Key: "OPS-1", Summary: "port flap"}},
			Total:  1,
		}},
	}
	r := newTestRouter(t, deps)

	body := `{"name": "sw-core-01", "serial": "FXS12345"}`
	req := httptest.NewRequest("POST", "/api/v1/devices/related", strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp contentResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Visible {
		t.Error("expected visible content")
	}
	if len(resp.Terms) != 2 || resp.Terms[0] != "sw-core-01" {
		t.Errorf("terms = %v", resp.Terms)
	}
	if resp.Jira.Total != 1 || len(resp.Jira.Issues) != 1 {
		t.Errorf("jira result = %+v", resp.Jira)
	}
	if resp.Confluence.Pages == nil {
		t.Error("confluence pages must be non-nil")
	}
}

func TestDeviceRelated_BadBody(t *testing.T) {
	r := newTestRouter(t, testDeps{})

	req := httptest.NewRequest("POST", "/api/v1/devices/related", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != codeBadRequest {
		t.Errorf("code = %q", resp.Code)
	}
}

func TestVMRelated(t *testing.T) {
	r := newTestRouter(t, testDeps{})

	body := `{"name": "vm-app-01"}`
	req := httptest.NewRequest("POST", "/api/v1/vms/related", strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var resp contentResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Terms) != 1 || resp.Terms[0] != "vm-app-01" {
		t.Errorf("terms = %v", resp.Terms)
	}
}

func TestSettings_NoCredentialLeak(t *testing.T) {
	r := newTestRouter(t, testDeps{})

	req := httptest.NewRequest("GET", "/api/v1/settings", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	body := rr.Body.String()
	for _, word := range []string{"password", "token", "username"} {
		if strings.Contains(body, word) {
			t.Errorf("settings response mentions %q: %s", word, body)
		}
	}

	var view SettingsView
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !view.Jira.Configured || view.Confluence.Configured {
		t.Errorf("configured flags = %v / %v", view.Jira.Configured, view.Confluence.Configured)
	}
	if view.Cache.Driver != "memory" || view.Cache.TTLSec != 300 {
		t.Errorf("cache view = %+v", view.Cache)
	}
}

func TestConnectionTest_Success(t *testing.T) {
	r := newTestRouter(t, testDeps{jira: &mockProber{name: "Jane Admin"}})

	req := httptest.NewRequest("POST", "/api/v1/connections/jira/test", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var resp connectionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Message != "Connected as Jane Admin" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestConnectionTest_Failure(t *testing.T) {
	r := newTestRouter(t, testDeps{conf: &mockProber{err: errors.New("refused")}})

	req := httptest.NewRequest("POST", "/api/v1/connections/confluence/test", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}

	var resp connectionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.Error != "Failed to connect to Confluence" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t, testDeps{})

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var resp healthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Checks["cache"] != "ok" {
		t.Errorf("unexpected report: %+v", resp)
	}
}

func TestHealthCheck_Degraded(t *testing.T) {
	r := newTestRouter(t, testDeps{cache: &mockPinger{err: errors.New("down")}})

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, testDeps{})

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "go_goroutines") {
		t.Error("expected default process metrics in exposition")
	}
}
