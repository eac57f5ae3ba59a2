// Package connection implements the backend connection tests exposed
// on the settings surface.
package connection

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/netfacet/atlasbridge/internal/domain"
)

// Status is the outcome of a connection test.
type Status struct {
	OK      bool   `json:"success"`
	Message string `json:"message"`
}

// Service runs connection tests against the configured backends.
type Service struct {
	jira       Prober
	confluence Prober
	logger     *zap.Logger
}

// New creates a connection-test service.
func New(jira, confluence Prober, logger *zap.Logger) *Service {
	return &Service{jira: jira, confluence: confluence, logger: logger}
}

// TestJira checks the issue-tracker connection.
func (s *Service) TestJira(ctx context.Context) Status {
	return s.test(ctx, s.jira, "Jira")
}

// TestConfluence checks the wiki connection.
func (s *Service) TestConfluence(ctx context.Context) Status {
	return s.test(ctx, s.confluence, "Confluence")
}

func (s *Service) test(ctx context.Context, p Prober, backend string) Status {
	name, err := p.CurrentUser(ctx)
	switch {
	case err == nil:
		if name == "" {
			name = "Unknown"
		}
		return Status{OK: true, Message: "Connected as " + name}
	case errors.Is(err, domain.ErrNotConfigured):
		return Status{Message: backend + " URL not configured"}
	case errors.Is(err, domain.ErrNoCredentials):
		return Status{Message: fmt.Sprintf(
			"%s credentials not configured (need token or username/password)", backend)}
	default:
		s.logger.Warn("connection test failed", zap.String("backend", backend), zap.Error(err))
		return Status{Message: "Failed to connect to " + backend}
	}
}
