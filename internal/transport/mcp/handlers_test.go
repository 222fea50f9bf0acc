package mcp

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/apunisarkar/sevamcp/internal/domain"
	"github.com/apunisarkar/sevamcp/internal/usecase/health"
	"github.com/apunisarkar/sevamcp/internal/usecase/search"
)

type mockSearch struct {
	searchFunc func(ctx context.Context, query string, maxResults int) ([]search.Match, error)
}

func (m *mockSearch) Search(ctx context.Context, query string, maxResults int) ([]search.Match, error) {
	return m.searchFunc(ctx, query, maxResults)
}

type mockApps struct {
	timelineFunc    func(ctx context.Context, applicationID string) (domain.Timeline, error)
	certificateFunc func(ctx context.Context, applicationID string) (domain.Certificate, error)
	mobileFunc      func(ctx context.Context, mobile string) ([]domain.ApplicationSummary, error)
	statsFunc       func(ctx context.Context) (domain.Stats, error)
}

func (m *mockApps) Timeline(ctx context.Context, applicationID string) (domain.Timeline, error) {
	return m.timelineFunc(ctx, applicationID)
}

func (m *mockApps) Certificate(ctx context.Context, applicationID string) (domain.Certificate, error) {
	return m.certificateFunc(ctx, applicationID)
}

func (m *mockApps) SearchByMobile(ctx context.Context, mobile string) ([]domain.ApplicationSummary, error) {
	return m.mobileFunc(ctx, mobile)
}

func (m *mockApps) Stats(ctx context.Context) (domain.Stats, error) {
	return m.statsFunc(ctx)
}

type mockHealth struct {
	checkFunc func(ctx context.Context) health.Report
}

func (m *mockHealth) Check(ctx context.Context) health.Report {
	return m.checkFunc(ctx)
}

func newTestServer(searchSvc SearchService, apps ApplicationService, healthSvc HealthService) *Server {
	return NewServer(searchSvc, apps, healthSvc, "https://portal.example", zap.NewNop())
}

func callRequest(tool string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = tool
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return text.Text
}

func TestHandleGetServiceInfo(t *testing.T) {
	var gotQuery string
	var gotMax int
	searchSvc := &mockSearch{
		searchFunc: func(ctx context.Context, query string, maxResults int) ([]search.Match, error) {
			gotQuery, gotMax = query, maxResults
			return []search.Match{
				{Service: domain.Service{ID: "s1", NameEnglish: "Income Certificate"}, Score: 100},
			}, nil
		},
	}
	srv := newTestServer(searchSvc, nil, nil)

	res, err := srv.handleGetServiceInfo(context.Background(),
		callRequest("get_service_info", map[string]any{"query": "income", "maxResults": 3}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, res))
	}
	if gotQuery != "income" || gotMax != 3 {
		t.Errorf("search called with (%q, %d)", gotQuery, gotMax)
	}
	if !strings.Contains(resultText(t, res), "Income Certificate") {
		t.Error("response missing matched service")
	}
}

func TestHandleGetServiceInfo_MissingQuery(t *testing.T) {
	srv := newTestServer(&mockSearch{}, nil, nil)

	res, err := srv.handleGetServiceInfo(context.Background(),
		callRequest("get_service_info", map[string]any{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result for missing query")
	}
}

func TestHandleGetServiceInfo_MaxResultsClamped(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want int
	}{
		{"default", map[string]any{"query": "q"}, 1},
		{"zero clamps up", map[string]any{"query": "q", "maxResults": 0}, 1},
		{"negative clamps up", map[string]any{"query": "q", "maxResults": -3}, 1},
		{"cap", map[string]any{"query": "q", "maxResults": 50}, 10},
		{"in range", map[string]any{"query": "q", "maxResults": 5}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMax int
			searchSvc := &mockSearch{
				searchFunc: func(ctx context.Context, query string, maxResults int) ([]search.Match, error) {
					gotMax = maxResults
					return nil, nil
				},
			}
			srv := newTestServer(searchSvc, nil, nil)

			if _, err := srv.handleGetServiceInfo(context.Background(),
				callRequest("get_service_info", tt.args)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotMax != tt.want {
				t.Errorf("maxResults = %d, want %d", gotMax, tt.want)
			}
		})
	}
}

func TestHandleGetServiceInfo_SearchFailure(t *testing.T) {
	searchSvc := &mockSearch{
		searchFunc: func(ctx context.Context, query string, maxResults int) ([]search.Match, error) {
			return nil, fmt.Errorf("fetch catalog: %w", domain.ErrBackendUnavailable)
		},
	}
	srv := newTestServer(searchSvc, nil, nil)

	res, err := srv.handleGetServiceInfo(context.Background(),
		callRequest("get_service_info", map[string]any{"query": "income"}))
	if err != nil {
		t.Fatalf("handler must not surface a Go error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if got := resultText(t, res); got != "❌ Could not fetch services. Try again later." {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestHandleApplicationStatus_NotFound(t *testing.T) {
	apps := &mockApps{
		timelineFunc: func(ctx context.Context, applicationID string) (domain.Timeline, error) {
			return domain.Timeline{}, fmt.Errorf("application timeline: %w", domain.ErrNotFound)
		},
	}
	srv := newTestServer(nil, apps, nil)

	res, err := srv.handleApplicationStatus(context.Background(),
		callRequest("check_application_status", map[string]any{"applicationId": "UK999"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}
	want := "❌ Application 'UK999' not found. Please verify the application ID."
	if got := resultText(t, res); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHandleApplicationStatus(t *testing.T) {
	apps := &mockApps{
		timelineFunc: func(ctx context.Context, applicationID string) (domain.Timeline, error) {
			return domain.Timeline{ApplicationID: applicationID, Status: "IN_PROGRESS"}, nil
		},
	}
	srv := newTestServer(nil, apps, nil)

	res, err := srv.handleApplicationStatus(context.Background(),
		callRequest("check_application_status", map[string]any{"applicationId": "UK123"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, res))
	}
	if !strings.Contains(resultText(t, res), "UK123") {
		t.Error("response missing application ID")
	}
}

func TestHandleGetCertificate_NotReady(t *testing.T) {
	apps := &mockApps{
		certificateFunc: func(ctx context.Context, applicationID string) (domain.Certificate, error) {
			return domain.Certificate{}, fmt.Errorf("certificate: %w",
				domain.NewCertificateNotReady("Certificate will be available after approval"))
		},
	}
	srv := newTestServer(nil, apps, nil)

	res, err := srv.handleGetCertificate(context.Background(),
		callRequest("get_certificate", map[string]any{"applicationId": "UK123"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if got := resultText(t, res); got != "❌ Certificate will be available after approval" {
		t.Errorf("backend message not surfaced: %q", got)
	}
}

func TestHandleSearchByMobile(t *testing.T) {
	apps := &mockApps{
		mobileFunc: func(ctx context.Context, mobile string) ([]domain.ApplicationSummary, error) {
			return []domain.ApplicationSummary{{ApplicationID: "UK1", ServiceName: "Income Certificate"}}, nil
		},
	}
	srv := newTestServer(nil, apps, nil)

	res, err := srv.handleSearchByMobile(context.Background(),
		callRequest("search_by_mobile", map[string]any{"mobile": "9876543210"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, res))
	}
	if !strings.Contains(resultText(t, res), "UK1") {
		t.Error("response missing application")
	}
}

func TestHandleSystemStats_BackendDown(t *testing.T) {
	apps := &mockApps{
		statsFunc: func(ctx context.Context) (domain.Stats, error) {
			return domain.Stats{}, fmt.Errorf("stats: %w", domain.ErrBackendUnavailable)
		},
	}
	srv := newTestServer(nil, apps, nil)

	res, err := srv.handleSystemStats(context.Background(),
		callRequest("get_system_stats", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}
	got := resultText(t, res)
	if !strings.Contains(got, "Backend service is unavailable") || !strings.Contains(got, "सेवा अभी उपलब्ध नहीं है") {
		t.Errorf("missing bilingual unavailable message: %q", got)
	}
}

func TestHandleHealthCheck(t *testing.T) {
	tests := []struct {
		name      string
		report    health.Report
		wantError bool
		wantText  string
	}{
		{
			name: "backend only healthy",
			report: health.Report{
				Status: health.Healthy,
				Checks: map[string]health.CheckResult{"backend": health.CheckOK},
			},
			wantText: "✅ Backend online",
		},
		{
			name: "healthy with cache",
			report: health.Report{
				Status: health.Healthy,
				Checks: map[string]health.CheckResult{
					"backend": health.CheckOK,
					"cache":   health.CheckOK,
				},
			},
			wantText: "✅ Backend online\nCache: ok",
		},
		{
			name: "degraded cache",
			report: health.Report{
				Status: health.Degraded,
				Checks: map[string]health.CheckResult{
					"backend": health.CheckOK,
					"cache":   health.CheckError,
				},
			},
			wantText: "✅ Backend online\nCache: error",
		},
		{
			name: "backend down",
			report: health.Report{
				Status: health.Unhealthy,
				Checks: map[string]health.CheckResult{"backend": health.CheckError},
			},
			wantError: true,
			wantText:  "❌ Backend offline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			healthSvc := &mockHealth{
				checkFunc: func(ctx context.Context) health.Report { return tt.report },
			}
			srv := newTestServer(nil, nil, healthSvc)

			res, err := srv.handleHealthCheck(context.Background(),
				callRequest("health_check", nil))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.IsError != tt.wantError {
				t.Errorf("IsError = %v, want %v", res.IsError, tt.wantError)
			}
			if got := resultText(t, res); got != tt.wantText {
				t.Errorf("got %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestErrorResult(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "invalid input",
			err:  fmt.Errorf("application id is required: %w", domain.ErrInvalidInput),
			want: "❌ application id is required: invalid input",
		},
		{
			name: "backend status",
			err:  domain.NewStatusError(502),
			want: "❌ Backend returned error: 502",
		},
		{
			name: "not found",
			err:  fmt.Errorf("x: %w", domain.ErrNotFound),
			want: "❌ Not found. Please verify the provided ID.",
		},
		{
			name: "unknown",
			err:  fmt.Errorf("boom"),
			want: "❌ Error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := errorResult(tt.err)
			if !res.IsError {
				t.Fatal("expected error result")
			}
			if got := resultText(t, res); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild_RegistersTools(t *testing.T) {
	srv := newTestServer(&mockSearch{}, &mockApps{}, &mockHealth{})
	if srv.Build() == nil {
		t.Fatal("expected a built server")
	}
}
