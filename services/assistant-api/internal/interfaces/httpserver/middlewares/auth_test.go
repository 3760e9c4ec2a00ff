package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealermate/dealermate-server/pkg/testhelpers"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/config"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/principal"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/auth"
)

func newRouter(t *testing.T, cfg *config.Config) (*gin.Engine, *principal.Principal) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	validator, err := auth.NewValidator(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	seen := &principal.Principal{}
	r := gin.New()
	r.GET("/me", Authenticate(validator), func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			return
		}
		fromCtx, _ := principal.FromContext(c.Request.Context())
		assert.Equal(t, p, fromCtx)
		*seen = p
		c.Status(http.StatusNoContent)
	})
	return r, seen
}

func TestAuthenticate_DevHeadersWhenDisabled(t *testing.T) {
	r, seen := newRouter(t, &config.Config{AuthEnabled: false})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(DevEmployeeIDHeader, "D042")
	req.Header.Set(DevBranchIDHeader, "BR07")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, principal.Principal{UserID: "D042", EmployeeID: "D042", BranchID: "BR07", Role: principal.RoleDealer}, *seen)
}

func TestAuthenticate_DefaultDevPrincipal(t *testing.T) {
	r, seen := newRouter(t, &config.Config{AuthEnabled: false})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, devPrincipal, *seen)
}

func TestAuthenticate_BearerToken(t *testing.T) {
	cfg := &config.Config{
		AuthEnabled:   true,
		AuthIssuer:    testhelpers.DefaultIssuer,
		AuthAudience:  testhelpers.DefaultAudience,
		AuthJWTSecret: "s3cret",
	}
	r, seen := newRouter(t, cfg)

	token, err := testhelpers.SignHS256("s3cret", testhelpers.DealerClaims("D009", "BR03", principal.RoleManager))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(DevEmployeeIDHeader, "D999")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "D009", seen.EmployeeID)
	assert.Equal(t, principal.RoleManager, seen.Role)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
