package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/apunisarkar/sevamcp/internal/metrics"
)

func TestInstrument_RecordsSuccess(t *testing.T) {
	srv := newTestServer(nil, nil, nil)

	handler := srv.instrument(func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	})

	before := testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("get_system_stats", "success"))

	res, err := handler(context.Background(), callRequest("get_system_stats", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatal("unexpected error result")
	}

	after := testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("get_system_stats", "success"))
	if after != before+1 {
		t.Errorf("success counter: got %f, want %f", after, before+1)
	}
}

func TestInstrument_ErrorResultCountsAsError(t *testing.T) {
	srv := newTestServer(nil, nil, nil)

	handler := srv.instrument(func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("nope"), nil
	})

	before := testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("get_certificate", "error"))

	if _, err := handler(context.Background(), callRequest("get_certificate", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after := testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("get_certificate", "error"))
	if after != before+1 {
		t.Errorf("error counter: got %f, want %f", after, before+1)
	}
}

func TestInstrument_GoErrorCountsAsError(t *testing.T) {
	srv := NewServer(nil, nil, nil, "https://portal.example", zap.NewNop())

	handler := srv.instrument(func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, errors.New("protocol fault")
	})

	before := testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("health_check", "error"))

	if _, err := handler(context.Background(), callRequest("health_check", nil)); err == nil {
		t.Fatal("expected error to pass through")
	}

	after := testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("health_check", "error"))
	if after != before+1 {
		t.Errorf("error counter: got %f, want %f", after, before+1)
	}
}
