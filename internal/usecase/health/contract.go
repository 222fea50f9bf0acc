package health

import "context"

// BackendProber checks backend API availability and returns its reported
// status string.
type BackendProber interface {
	Health(ctx context.Context) (string, error)
}

// CachePinger checks catalog cache store availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
