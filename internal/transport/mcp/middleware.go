package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/apunisarkar/sevamcp/internal/logger"
	"github.com/apunisarkar/sevamcp/internal/metrics"
)

// instrument emits a canonical log line and prometheus counters per tool
// call, and places a per-call logger in the context.
func (s *Server) instrument(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		tool := req.Params.Name

		callLogger := s.logger.With(zap.String("tool", tool))
		ctx = logger.ContextWithLogger(ctx, callLogger)

		res, err := next(ctx, req)

		duration := time.Since(start)
		status := "success"
		if err != nil || (res != nil && res.IsError) {
			status = "error"
		}

		metrics.ToolCallsTotal.WithLabelValues(tool, status).Inc()
		metrics.ToolCallDuration.WithLabelValues(tool).Observe(duration.Seconds())

		// Canonical log line — one line per tool call
		callLogger.Info("tool_call",
			zap.String("status", status),
			zap.Duration("latency", duration),
		)

		return res, err
	}
}
