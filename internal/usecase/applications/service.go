// Package applications handles application status, certificate, and
// statistics lookups against the backend.
package applications

import (
	"context"
	"fmt"
	"strings"

	"github.com/apunisarkar/sevamcp/internal/domain"
)

// Service orchestrates application lookups.
type Service struct {
	backend Backend
}

// New creates an applications service.
func New(backend Backend) *Service {
	return &Service{backend: backend}
}

// Timeline returns the tracking timeline for an application.
func (s *Service) Timeline(ctx context.Context, applicationID string) (domain.Timeline, error) {
	applicationID = strings.TrimSpace(applicationID)
	if applicationID == "" {
		return domain.Timeline{}, fmt.Errorf("application id is required: %w", domain.ErrInvalidInput)
	}

	tl, err := s.backend.ApplicationTimeline(ctx, applicationID)
	if err != nil {
		return domain.Timeline{}, fmt.Errorf("application timeline: %w", err)
	}
	return tl, nil
}

// Certificate returns certificate details for an application.
func (s *Service) Certificate(ctx context.Context, applicationID string) (domain.Certificate, error) {
	applicationID = strings.TrimSpace(applicationID)
	if applicationID == "" {
		return domain.Certificate{}, fmt.Errorf("application id is required: %w", domain.ErrInvalidInput)
	}

	cert, err := s.backend.Certificate(ctx, applicationID)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("certificate: %w", err)
	}
	return cert, nil
}

// SearchByMobile lists applications submitted with a mobile number.
func (s *Service) SearchByMobile(ctx context.Context, mobile string) ([]domain.ApplicationSummary, error) {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return nil, fmt.Errorf("mobile number is required: %w", domain.ErrInvalidInput)
	}

	apps, err := s.backend.SearchByMobile(ctx, mobile)
	if err != nil {
		return nil, fmt.Errorf("search by mobile: %w", err)
	}
	return apps, nil
}

// Stats returns system-wide application statistics.
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	stats, err := s.backend.Stats(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("stats: %w", err)
	}
	return stats, nil
}
