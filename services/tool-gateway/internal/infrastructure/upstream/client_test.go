package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/pkg/toolvalue"
	"github.com/dealermate/dealermate-server/services/tool-gateway/internal/domain/registry"
)

func entryFor(srv *httptest.Server) registry.Entry {
	return registry.Entry{Name: "inventory.search_listings", Upstream: srv.URL, Path: "/tools/search_listings"}
}

func categoryOf(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))
	perr, ok := err.(*platformerrors.PlatformError)
	require.True(t, ok)
	return perr.Category()
}

func TestInvokeSuccess(t *testing.T) {
	var gotBody map[string]any
	var gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tools/search_listings", r.URL.Path)
		gotRequestID = r.Header.Get("X-Request-Id")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"data":[{"plate":"12가3456","price":2150}]}`))
	}))
	defer srv.Close()

	c := NewClient(time.Second, BreakerConfig{}, zerolog.Nop())
	ctx := platformerrors.WithRequestID(context.Background(), "req-42")

	out, err := c.Invoke(ctx, entryFor(srv), toolvalue.Pairs("budget_max", 2000, "body_type", "SUV"))
	require.NoError(t, err)

	assert.Equal(t, "req-42", gotRequestID)
	assert.Equal(t, "SUV", gotBody["body_type"])
	assert.True(t, out.Get("ok").Truthy())
	require.Len(t, out.Get("data").Items(), 1)
	assert.Equal(t, "12가3456", out.Get("data").Items()[0].Get("plate").Text())
}

func TestInvokeNon2xxIsCategorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom: secret internals", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(time.Second, BreakerConfig{}, zerolog.Nop())
	_, err := c.Invoke(context.Background(), entryFor(srv), toolvalue.Object(nil))

	assert.Equal(t, "status_503", categoryOf(t, err))
	assert.NotContains(t, err.Error(), "secret internals")
}

func TestInvokeMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	c := NewClient(time.Second, BreakerConfig{}, zerolog.Nop())
	_, err := c.Invoke(context.Background(), entryFor(srv), toolvalue.Object(nil))

	assert.Equal(t, CategoryMalformed, categoryOf(t, err))
}

func TestInvokeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(50*time.Millisecond, BreakerConfig{}, zerolog.Nop())
	_, err := c.Invoke(context.Background(), entryFor(srv), toolvalue.Object(nil))

	assert.Equal(t, CategoryTimeout, categoryOf(t, err))
}

func TestInvokeTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	entry := entryFor(srv)
	srv.Close()

	c := NewClient(time.Second, BreakerConfig{}, zerolog.Nop())
	_, err := c.Invoke(context.Background(), entry, toolvalue.Object(nil))

	assert.Equal(t, CategoryTransport, categoryOf(t, err))
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var states []string
	c := NewClient(time.Second, BreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		OnStateChange:    func(_, state string) { states = append(states, state) },
	}, zerolog.Nop())

	for i := 0; i < 2; i++ {
		_, err := c.Invoke(context.Background(), entryFor(srv), toolvalue.Object(nil))
		assert.Equal(t, "status_500", categoryOf(t, err))
	}

	_, err := c.Invoke(context.Background(), entryFor(srv), toolvalue.Object(nil))
	assert.Equal(t, CategoryCircuitOpen, categoryOf(t, err))
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, []string{"open"}, states)
}

func TestInvokeDoesNotRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(time.Second, BreakerConfig{}, zerolog.Nop())
	_, err := c.Invoke(context.Background(), entryFor(srv), toolvalue.Object(nil))

	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}
