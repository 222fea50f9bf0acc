// Package mcp exposes the tool surface over the model context protocol.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/apunisarkar/sevamcp/internal/domain"
	"github.com/apunisarkar/sevamcp/internal/usecase/health"
	"github.com/apunisarkar/sevamcp/internal/usecase/search"
	"github.com/apunisarkar/sevamcp/internal/version"
)

const serverName = "apuni-sarkar-mcp"

// maxResultsCap bounds the get_service_info result count.
const maxResultsCap = 10

// SearchService ranks the catalog against a free-text query.
type SearchService interface {
	Search(ctx context.Context, query string, maxResults int) ([]search.Match, error)
}

// ApplicationService handles application, certificate, and stats lookups.
type ApplicationService interface {
	Timeline(ctx context.Context, applicationID string) (domain.Timeline, error)
	Certificate(ctx context.Context, applicationID string) (domain.Certificate, error)
	SearchByMobile(ctx context.Context, mobile string) ([]domain.ApplicationSummary, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

// HealthService probes the backend and cache.
type HealthService interface {
	Check(ctx context.Context) health.Report
}

// Server wires the tool handlers to their usecases.
type Server struct {
	search     SearchService
	apps       ApplicationService
	health     HealthService
	portalBase string
	logger     *zap.Logger
}

// NewServer creates the tool server. portalBase is the portal URL apply
// links are built on.
func NewServer(
	searchSvc SearchService,
	apps ApplicationService,
	healthSvc HealthService,
	portalBase string,
	logger *zap.Logger,
) *Server {
	return &Server{
		search:     searchSvc,
		apps:       apps,
		health:     healthSvc,
		portalBase: portalBase,
		logger:     logger,
	}
}

// Build assembles the MCP server with all six tools registered.
func (s *Server) Build() *server.MCPServer {
	srv := server.NewMCPServer(
		serverName,
		version.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(s.instrument),
	)

	srv.AddTool(mcp.NewTool("get_service_info",
		mcp.WithDescription(
			"Search for government services. Works with English or Hindi queries. "+
				"Returns complete service details including documents, fees, timeline, and application link. "+
				"Examples: 'domicile certificate', 'income certificate', 'जाति प्रमाण पत्र'",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Service name in English or Hindi"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Max results (default: 1, max: 10)"),
			mcp.DefaultNumber(1),
		),
	), s.handleGetServiceInfo)

	srv.AddTool(mcp.NewTool("check_application_status",
		mcp.WithDescription(
			"Track application status with complete timeline showing all steps, "+
				"officers, and current status.",
		),
		mcp.WithString("applicationId",
			mcp.Required(),
			mcp.Description("Application ID (e.g., UK21ES0100004508)"),
		),
	), s.handleApplicationStatus)

	srv.AddTool(mcp.NewTool("get_certificate",
		mcp.WithDescription("Get certificate download links for approved applications."),
		mcp.WithString("applicationId",
			mcp.Required(),
			mcp.Description("Application ID"),
		),
	), s.handleGetCertificate)

	srv.AddTool(mcp.NewTool("search_by_mobile",
		mcp.WithDescription("Find all applications by mobile number."),
		mcp.WithString("mobile",
			mcp.Required(),
			mcp.Description("10-digit mobile number"),
		),
	), s.handleSearchByMobile)

	srv.AddTool(mcp.NewTool("get_system_stats",
		mcp.WithDescription("Get overall system statistics."),
	), s.handleSystemStats)

	srv.AddTool(mcp.NewTool("health_check",
		mcp.WithDescription("Check backend API status"),
	), s.handleHealthCheck)

	return srv
}
