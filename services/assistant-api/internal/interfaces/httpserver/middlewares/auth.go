package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/principal"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/infrastructure/auth"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/interfaces/httpserver/responses"
)

const (
	// PrincipalKey is the gin context key for the authenticated principal.
	PrincipalKey = "principal"

	// Identity headers honoured only while authentication is disabled.
	DevUserIDHeader     = "X-Dev-User-Id"
	DevEmployeeIDHeader = "X-Dev-Employee-Id"
	DevBranchIDHeader   = "X-Dev-Branch-Id"
	DevRoleHeader       = "X-Dev-Role"
)

var devPrincipal = principal.Principal{
	UserID:     "dev",
	EmployeeID: "D000",
	BranchID:   "BR00",
	Role:       principal.RoleDealer,
}

// Authenticate resolves the principal from the bearer token and stores it on
// the gin and request contexts. With auth disabled the principal comes from
// the X-Dev-* headers, falling back to a fixed development dealer.
func Authenticate(validator *auth.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p principal.Principal
		if validator.Enabled() {
			token := auth.BearerToken(c.GetHeader("Authorization"))
			resolved, err := validator.Authenticate(c.Request.Context(), token)
			if err != nil {
				responses.HandleError(c, err, "authentication required")
				return
			}
			p = resolved
		} else {
			p = devPrincipalFrom(c)
		}

		c.Set(PrincipalKey, p)
		c.Request = c.Request.WithContext(principal.WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// GetPrincipal returns the principal stored by Authenticate. It aborts with
// 401 and reports false when none is present.
func GetPrincipal(c *gin.Context) (principal.Principal, bool) {
	if value, exists := c.Get(PrincipalKey); exists {
		if p, ok := value.(principal.Principal); ok && p.UserID != "" {
			return p, true
		}
	}
	responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "authentication required", "auth-principal-001")
	return principal.Principal{}, false
}

func devPrincipalFrom(c *gin.Context) principal.Principal {
	p := devPrincipal
	if v := strings.TrimSpace(c.GetHeader(DevEmployeeIDHeader)); v != "" {
		p.EmployeeID = v
		p.UserID = v
	}
	if v := strings.TrimSpace(c.GetHeader(DevUserIDHeader)); v != "" {
		p.UserID = v
	}
	if v := strings.TrimSpace(c.GetHeader(DevBranchIDHeader)); v != "" {
		p.BranchID = v
	}
	if v := strings.TrimSpace(c.GetHeader(DevRoleHeader)); v != "" {
		p.Role = v
	}
	return p
}
