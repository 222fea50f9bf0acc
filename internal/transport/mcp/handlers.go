package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/apunisarkar/sevamcp/internal/domain"
	"github.com/apunisarkar/sevamcp/internal/render"
	"github.com/apunisarkar/sevamcp/internal/usecase/health"
)

// Handlers return user-visible failures as tool error results with a nil
// Go error, so the agent sees text instead of a protocol fault.

func (s *Server) handleGetServiceInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("❌ " + err.Error()), nil
	}

	maxResults := req.GetInt("maxResults", 1)
	if maxResults < 1 {
		maxResults = 1
	}
	if maxResults > maxResultsCap {
		maxResults = maxResultsCap
	}

	matches, err := s.search.Search(ctx, query, maxResults)
	if err != nil {
		return mcp.NewToolResultError("❌ Could not fetch services. Try again later."), nil
	}

	return mcp.NewToolResultText(render.ServiceResponse(matches, query, s.portalBase)), nil
}

func (s *Server) handleApplicationStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	applicationID, err := req.RequireString("applicationId")
	if err != nil {
		return mcp.NewToolResultError("❌ Application ID is required"), nil
	}

	tl, err := s.apps.Timeline(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"❌ Application '%s' not found. Please verify the application ID.", applicationID,
			)), nil
		}
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(render.TimelineResponse(tl)), nil
}

func (s *Server) handleGetCertificate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	applicationID, err := req.RequireString("applicationId")
	if err != nil {
		return mcp.NewToolResultError("❌ Application ID is required"), nil
	}

	cert, err := s.apps.Certificate(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrCertificateNotReady) {
			return mcp.NewToolResultError("❌ " + certificateMessage(err)), nil
		}
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(render.CertificateResponse(cert)), nil
}

func (s *Server) handleSearchByMobile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mobile, err := req.RequireString("mobile")
	if err != nil {
		return mcp.NewToolResultError("❌ Mobile number is required"), nil
	}

	apps, err := s.apps.SearchByMobile(ctx, mobile)
	if err != nil {
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(render.MobileSearchResponse(apps)), nil
}

func (s *Server) handleSystemStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.apps.Stats(ctx)
	if err != nil {
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(render.StatsResponse(stats)), nil
}

func (s *Server) handleHealthCheck(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report := s.health.Check(ctx)

	text := "✅ Backend online"
	if report.Checks["backend"] != health.CheckOK {
		text = "❌ Backend offline"
	}
	if cache, ok := report.Checks["cache"]; ok {
		text += "\nCache: " + string(cache)
	}

	if report.Status == health.Unhealthy {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}

// certificateMessage surfaces the backend's 404 body message when present.
func certificateMessage(err error) string {
	var notReady *domain.CertificateNotReadyError
	if errors.As(err, &notReady) && notReady.Message != "" {
		return notReady.Message
	}
	return "Certificate not ready or application not found"
}

// errorResult maps domain sentinels to user-facing tool error text.
func errorResult(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return mcp.NewToolResultError("❌ " + err.Error())
	case errors.Is(err, domain.ErrBackendUnavailable):
		return mcp.NewToolResultError(
			"❌ Backend service is unavailable. Please try again later. / " +
				"सेवा अभी उपलब्ध नहीं है। कृपया बाद में प्रयास करें।",
		)
	case errors.Is(err, domain.ErrBackendStatus):
		var statusErr *domain.StatusError
		if errors.As(err, &statusErr) {
			return mcp.NewToolResultError(fmt.Sprintf("❌ Backend returned error: %d", statusErr.Code))
		}
		return mcp.NewToolResultError("❌ Backend returned an error")
	case errors.Is(err, domain.ErrNotFound):
		return mcp.NewToolResultError("❌ Not found. Please verify the provided ID.")
	default:
		return mcp.NewToolResultError("❌ Error: " + err.Error())
	}
}
