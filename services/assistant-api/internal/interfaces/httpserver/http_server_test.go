package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealermate/dealermate-server/pkg/testhelpers"
	"github.com/dealermate/dealermate-server/pkg/toolvalue"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/config"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/artifact"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/assist"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/deal"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/filters"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/quickquestion"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/auth"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/gatewayclient"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/inmemory"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/handlers"
)

const testSecret = "test-secret"

// fakeGateway answers POST /tool/call, recording every tool requested.
type fakeGateway struct {
	mu     sync.Mutex
	tools  []string
	status int
	body   string
}

func (g *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/tool/call" || r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	raw, _ := io.ReadAll(r.Body)
	req, err := toolvalue.Parse(raw)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	g.mu.Lock()
	g.tools = append(g.tools, req.Get("tool").Text())
	status, body := g.status, g.body
	g.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (g *fakeGateway) called() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.tools...)
}

type testEnv struct {
	server  *HttpServer
	gateway *fakeGateway
	store   *inmemory.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gw := &fakeGateway{body: `{"ok":true,"data":{"median":2450,"currency":"KRW"}}`}
	gwSrv := httptest.NewServer(gw)
	t.Cleanup(gwSrv.Close)

	cfg := &config.Config{
		ServiceName:     "assistant-api",
		Environment:     "test",
		ShutdownTimeout: time.Second,
		AuthEnabled:     true,
		AuthIssuer:      testhelpers.DefaultIssuer,
		AuthAudience:    testhelpers.DefaultAudience,
		AuthJWTSecret:   testSecret,
	}
	validator, err := auth.NewValidator(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	store := inmemory.NewStore()
	dealRepo := inmemory.NewDealRepository(store)
	artifactRepo := inmemory.NewArtifactRepository(store)
	deals, err := deal.NewService(dealRepo, 16, zerolog.Nop())
	require.NoError(t, err)

	caller := gatewayclient.New(gwSrv.URL, time.Second, zerolog.Nop())
	assistService := assist.NewService(caller, deals, artifactRepo, inmemory.NewAuditRepository(store),
		inmemory.NewTransactor(store), assist.Options{}, zerolog.Nop())

	provider := handlers.NewProvider(
		assistService,
		deals,
		artifact.NewService(artifactRepo, deals),
		quickquestion.NewService(inmemory.NewQuickQuestionRepository(store), zerolog.Nop()),
		filters.NewService(caller, zerolog.Nop()),
		zerolog.Nop(),
	)

	return &testEnv{
		server:  New(cfg, zerolog.Nop(), provider, validator, nil),
		gateway: gw,
		store:   store,
	}
}

func (e *testEnv) do(t *testing.T, method, path, body, employeeID string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if employeeID != "" {
		token, err := testhelpers.SignHS256(testSecret, testhelpers.DealerClaims(employeeID, "BR01", "dealer"))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func TestAssistEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/assistant/assist", `{"message":"쏘렌토 시세 알려줘"}`, "D100")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Intent    string         `json:"intent"`
		UsedTools []string       `json:"used_tools"`
		Result    map[string]any `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "pricing", body.Intent)
	assert.Equal(t, []string{"pricing.get_market_price"}, body.UsedTools)
	assert.EqualValues(t, 2450, body.Result["pricing"].(map[string]any)["median"])
	dealID := body.Result["deal_id"]
	require.NotNil(t, dealID)

	assert.Equal(t, []string{"pricing.get_market_price"}, env.gateway.called())
	assert.Len(t, env.store.Artifacts(), 1)
	assert.Len(t, env.store.AuditEntries(), 1)

	w = env.do(t, http.MethodGet, "/v1/deals", "", "D100")
	require.Equal(t, http.StatusOK, w.Code)
	var deals []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deals))
	require.Len(t, deals, 1)
	assert.Equal(t, dealID, deals[0]["id"])

	artifactsPath := fmt.Sprintf("/v1/deals/%v/artifacts", dealID)
	w = env.do(t, http.MethodGet, artifactsPath, "", "D100")
	require.Equal(t, http.StatusOK, w.Code)
	var artifacts []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &artifacts))
	require.Len(t, artifacts, 1)
	assert.Equal(t, "pricing response", artifacts[0]["title"])

	w = env.do(t, http.MethodGet, artifactsPath, "", "D200")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssistEndToEnd_GatewayFailure(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.status = http.StatusBadGateway
	env.gateway.body = `{"code":"gateway-upstream-001","error":"upstream request failed","category":"timeout"}`

	w := env.do(t, http.MethodPost, "/v1/assistant/assist", `{"message":"쏘렌토 시세 알려줘"}`, "D100")
	require.Equal(t, http.StatusBadGateway, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "timeout", body["category"])
	assert.Empty(t, env.store.Artifacts())
	assert.Empty(t, env.store.AuditEntries())
}

func TestAssistRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/v1/assistant/assist", `{"message":"쏘렌토 시세"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/deals", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, env.gateway.called())
}

func TestQuickQuestionsEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/v1/quick-questions", "", "D100")
	require.Equal(t, http.StatusOK, w.Code)
	var seeded []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &seeded))
	assert.Len(t, seeded, len(quickquestion.Defaults))

	w = env.do(t, http.MethodPost, "/v1/quick-questions", `{"text":"  재고 요약  "}`, "D100")
	require.Equal(t, http.StatusOK, w.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "재고 요약", created["text"])

	path := fmt.Sprintf("/v1/quick-questions/%v", created["id"])
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, path, "", "D200").Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, path, "", "D100").Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, path, "", "D100").Code)
}

func TestFilterSearchEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.body = `{"ok":true,"data":[{"listing_id":"L1"}]}`

	w := env.do(t, http.MethodPost, "/v1/filters/search", `{"query":"SUV","top_k":999}`, "D100")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"data":[{"listing_id":"L1"}]}`, w.Body.String())
	assert.Equal(t, []string{"inventory.search_listings_filtered"}, env.gateway.called())
}

func TestCoreRoutes(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/", "/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		env.server.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
