// Package chi exposes the inbound REST API: related-content lookups
// for the two record kinds, the sanitized settings view, backend
// connection tests, health and metrics.
package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/netfacet/atlasbridge/internal/domain/record"
	connectionuc "github.com/netfacet/atlasbridge/internal/usecase/connection"
	healthuc "github.com/netfacet/atlasbridge/internal/usecase/health"
	relateduc "github.com/netfacet/atlasbridge/internal/usecase/related"
)

// Server holds the handlers behind the REST API.
type Server struct {
	related     *relateduc.Service
	connections *connectionuc.Service
	health      *healthuc.Service
	settings    SettingsView
	logger      *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	related *relateduc.Service,
	connections *connectionuc.Service,
	health *healthuc.Service,
	settings SettingsView,
	logger *zap.Logger,
) *Server {
	return &Server{
		related:     related,
		connections: connections,
		health:      health,
		settings:    settings,
		logger:      logger,
	}
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/devices/related", s.DeviceRelated)
		r.Post("/vms/related", s.VMRelated)
		r.Get("/settings", s.Settings)
		r.Post("/connections/jira/test", s.TestJira)
		r.Post("/connections/confluence/test", s.TestConfluence)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// DeviceRelated handles POST /api/v1/devices/related.
func (s *Server) DeviceRelated(w http.ResponseWriter, r *http.Request) {
	var dev record.Device
	if err := json.NewDecoder(r.Body).Decode(&dev); err != nil {
		s.logger.Warn("failed to decode device payload", zap.Error(err))
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	content := s.related.ForDevice(r.Context(), &dev)
	writeJSON(w, http.StatusOK, contentToResponse(content))
}

// VMRelated handles POST /api/v1/vms/related.
func (s *Server) VMRelated(w http.ResponseWriter, r *http.Request) {
	var vm record.VirtualMachine
	if err := json.NewDecoder(r.Body).Decode(&vm); err != nil {
		s.logger.Warn("failed to decode virtual machine payload", zap.Error(err))
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	content := s.related.ForVM(r.Context(), &vm)
	writeJSON(w, http.StatusOK, contentToResponse(content))
}

// Settings handles GET /api/v1/settings. Credentials never appear in
// the response.
func (s *Server) Settings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.settings)
}

// TestJira handles POST /api/v1/connections/jira/test.
func (s *Server) TestJira(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, s.connections.TestJira(r.Context()))
}

// TestConfluence handles POST /api/v1/connections/confluence/test.
func (s *Server) TestConfluence(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, s.connections.TestConfluence(r.Context()))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeStatus(w http.ResponseWriter, st connectionuc.Status) {
	if st.OK {
		writeJSON(w, http.StatusOK, connectionResponse{Success: true, Message: st.Message})
		return
	}
	writeJSON(w, http.StatusBadRequest, connectionResponse{Success: false, Error: st.Message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
