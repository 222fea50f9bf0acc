package search

import (
	"context"

	"github.com/apunisarkar/sevamcp/internal/domain"
)

// CatalogProvider supplies the service catalog snapshot. The snapshot is
// already resident in memory by the time ranking runs; the core never
// refreshes it.
type CatalogProvider interface {
	Services(ctx context.Context) ([]domain.Service, error)
}
