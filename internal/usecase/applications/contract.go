package applications

import (
	"context"

	"github.com/apunisarkar/sevamcp/internal/domain"
)

// Backend defines the backend calls the application usecase depends on.
type Backend interface {
	ApplicationTimeline(ctx context.Context, applicationID string) (domain.Timeline, error)
	Certificate(ctx context.Context, applicationID string) (domain.Certificate, error)
	SearchByMobile(ctx context.Context, mobile string) ([]domain.ApplicationSummary, error)
	Stats(ctx context.Context) (domain.Stats, error)
}
