package health

import (
	"context"
	"fmt"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the backend itself is down.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	backend BackendProber
	cache   CachePinger
}

// New creates a Service. cache can be nil.
func New(backend BackendProber, cache CachePinger) *Service {
	return &Service{backend: backend, cache: cache}
}

// Check probes the backend and, when configured, the catalog cache store.
// A failing backend makes the whole report unhealthy; every tool depends
// on it. A failing cache only degrades.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	backendOK := true
	if err := s.probeBackend(ctx); err != nil {
		checks["backend"] = CheckError
		backendOK = false
	} else {
		checks["backend"] = CheckOK
	}

	cacheOK := true
	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
			cacheOK = false
		} else {
			checks["cache"] = CheckOK
		}
	}

	status := Healthy
	switch {
	case !backendOK:
		status = Unhealthy
	case !cacheOK:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}

func (s *Service) probeBackend(ctx context.Context) error {
	status, err := s.backend.Health(ctx)
	if err != nil {
		return err
	}
	if status != "ok" {
		return fmt.Errorf("backend reported status %q", status)
	}
	return nil
}
