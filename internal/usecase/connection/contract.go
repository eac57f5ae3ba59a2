package connection

import "context"

// Prober issues the lightweight authenticated "who am I" call against
// a backend.
type Prober interface {
	CurrentUser(ctx context.Context) (string, error)
}
