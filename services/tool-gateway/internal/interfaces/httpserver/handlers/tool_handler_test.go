package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/pkg/toolvalue"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/gateway"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/registry"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/interfaces/httpserver/handlers"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/interfaces/httpserver/requests"
)

// MockGatewayService is a hand-written gateway.Service for handler tests.
type MockGatewayService struct {
	CallFunc        func(ctx context.Context, req gateway.CallRequest) (gateway.Result, error)
	ListFunc        func() []registry.Entry
	SizeFunc        func() int
	RecentAuditFunc func(ctx context.Context, limit int) ([]gateway.AuditEvent, error)
}

func (m *MockGatewayService) Call(ctx context.Context, req gateway.CallRequest) (gateway.Result, error) {
	if m.CallFunc != nil {
		return m.CallFunc(ctx, req)
	}
	return gateway.Result{}, nil
}

func (m *MockGatewayService) List() []registry.Entry {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return nil
}

func (m *MockGatewayService) Size() int {
	if m.SizeFunc != nil {
		return m.SizeFunc()
	}
	return 0
}

func (m *MockGatewayService) RecentAudit(ctx context.Context, limit int) ([]gateway.AuditEvent, error) {
	if m.RecentAuditFunc != nil {
		return m.RecentAuditFunc(ctx, limit)
	}
	return nil, nil
}

func setupToolTestRouter(t *testing.T, svc gateway.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, requests.RegisterValidations())

	provider := handlers.NewProvider(svc, zerolog.Nop())
	r := gin.New()
	r.POST("/tool/call", provider.Tool.Call)
	r.GET("/tools", provider.Tool.List)
	r.GET("/health", provider.Tool.Health)
	r.GET("/v1/audit", provider.Audit.Recent)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestToolHandler_CallReturnsBodyVerbatim(t *testing.T) {
	var got gateway.CallRequest
	svc := &MockGatewayService{
		CallFunc: func(_ context.Context, req gateway.CallRequest) (gateway.Result, error) {
			got = req
			return gateway.Result{Body: toolvalue.Pairs("ok", true, "data", toolvalue.Pairs("name", "***"))}, nil
		},
	}
	r := setupToolTestRouter(t, svc)

	w := do(r, http.MethodPost, "/tool/call", `{"tool":"inventory.get_car_by_plate","args":{"plate":"12가3456"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"data":{"name":"***"}}`, w.Body.String())
	assert.Equal(t, "inventory.get_car_by_plate", got.Tool)
	assert.Equal(t, "12가3456", got.Args.Get("plate").Text())
}

func TestToolHandler_CallMissingArgs(t *testing.T) {
	var got gateway.CallRequest
	svc := &MockGatewayService{
		CallFunc: func(_ context.Context, req gateway.CallRequest) (gateway.Result, error) {
			got = req
			return gateway.Result{Body: toolvalue.Pairs("ok", true)}, nil
		},
	}
	r := setupToolTestRouter(t, svc)

	w := do(r, http.MethodPost, "/tool/call", `{"tool":"inventory.get_filter_options"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, got.Args.IsNull())
}

func TestToolHandler_CallValidation(t *testing.T) {
	called := false
	svc := &MockGatewayService{
		CallFunc: func(context.Context, gateway.CallRequest) (gateway.Result, error) {
			called = true
			return gateway.Result{}, nil
		},
	}
	r := setupToolTestRouter(t, svc)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"tool":`},
		{"missing tool", `{"args":{}}`},
		{"blank tool", `{"tool":"  "}`},
		{"tool with spaces", `{"tool":"inventory search"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/tool/call", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.False(t, called)
}

func TestToolHandler_CallErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		category string
	}{
		{
			name:   "unknown tool",
			err:    platformerrors.NewError(context.Background(), platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "Unknown tool", nil, "registry-resolve-001"),
			status: http.StatusNotFound,
		},
		{
			name: "upstream error",
			err: platformerrors.NewErrorWithContext(context.Background(), platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
				"Upstream error: timeout", errors.New("dial tcp 10.0.0.1: i/o timeout"), "upstream-call-001",
				map[string]any{platformerrors.ContextKeyCategory: "timeout"}),
			status:   http.StatusBadGateway,
			category: "timeout",
		},
		{
			name:   "args not object",
			err:    platformerrors.NewError(context.Background(), platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "args must be an object", nil, "gateway-call-002"),
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockGatewayService{
				CallFunc: func(context.Context, gateway.CallRequest) (gateway.Result, error) {
					return gateway.Result{}, tt.err
				},
			}
			r := setupToolTestRouter(t, svc)

			w := do(r, http.MethodPost, "/tool/call", `{"tool":"x.y","args":{}}`)

			assert.Equal(t, tt.status, w.Code)
			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["code"])
			assert.NotContains(t, w.Body.String(), "10.0.0.1")
			if tt.category != "" {
				assert.Equal(t, tt.category, resp["category"])
			}
		})
	}
}

func TestToolHandler_ListAndHealth(t *testing.T) {
	svc := &MockGatewayService{
		ListFunc: func() []registry.Entry {
			return []registry.Entry{
				{Name: "history.get_maintenance_history", Upstream: "http://history", Path: "/tools/get_maintenance_history"},
				{Name: "inventory.search_listings", Upstream: "http://inventory", Path: "/tools/search_listings"},
			}
		},
		SizeFunc: func() int { return 9 },
	}
	r := setupToolTestRouter(t, svc)

	w := do(r, http.MethodGet, "/tools", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tools":[
		{"name":"history.get_maintenance_history","upstream":"http://history","path":"/tools/get_maintenance_history"},
		{"name":"inventory.search_listings","upstream":"http://inventory","path":"/tools/search_listings"}
	]}`, w.Body.String())

	w = do(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"registry_size":9}`, w.Body.String())
}

func TestAuditHandler_Recent(t *testing.T) {
	var gotLimit int
	svc := &MockGatewayService{
		RecentAuditFunc: func(_ context.Context, limit int) ([]gateway.AuditEvent, error) {
			gotLimit = limit
			return []gateway.AuditEvent{
				{ID: "1-0", Tool: "pricing.get_market_price", Status: gateway.StatusError, Args: `{"query":"쏘렌토"}`, Result: `{"error":"timeout"}`},
			}, nil
		},
	}
	r := setupToolTestRouter(t, svc)

	w := do(r, http.MethodGet, "/v1/audit?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, gotLimit)

	var resp struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "pricing.get_market_price", resp.Data[0]["tool_name"])
	assert.Equal(t, map[string]any{"query": "쏘렌토"}, resp.Data[0]["args"])

	w = do(r, http.MethodGet, "/v1/audit?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
