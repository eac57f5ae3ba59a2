package health

import "context"

// CachePinger checks connectivity of the result-cache store.
type CachePinger interface {
	Ping(ctx context.Context) error
}
