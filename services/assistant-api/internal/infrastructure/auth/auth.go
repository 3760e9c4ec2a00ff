// Package auth validates dealer bearer tokens and resolves the principal.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/dealermate/dealermate-server/pkg/platformerrors"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/config"
	"github.com/dealermate/dealermate-server/services/assistant-api/internal/domain/principal"
)

var (
	rsaMethods  = []string{"RS256", "RS384", "RS512"}
	hmacMethods = []string{"HS256"}
)

// Validator validates JWTs against a JWKS endpoint, a shared HS256 secret,
// or both.
type Validator struct {
	cfg    *config.Config
	log    zerolog.Logger
	jwks   *keyfunc.JWKS
	secret []byte
}

// NewValidator initializes JWKS fetching when auth is enabled.
func NewValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Validator, error) {
	v := &Validator{cfg: cfg, log: log.With().Str("component", "auth").Logger()}
	if !cfg.AuthEnabled {
		v.log.Warn().Msg("authentication disabled, principals are taken from request headers")
		return v, nil
	}

	if secret := strings.TrimSpace(cfg.AuthJWTSecret); secret != "" {
		v.secret = []byte(secret)
	}

	if url := strings.TrimSpace(cfg.AuthJWKSURL); url != "" {
		options := keyfunc.Options{
			Ctx:               ctx,
			RefreshInterval:   time.Hour,
			RefreshUnknownKID: true,
			RefreshErrorHandler: func(err error) {
				v.log.Error().Err(err).Msg("jwks refresh error")
			},
		}
		jwks, err := keyfunc.Get(url, options)
		if err != nil {
			return nil, fmt.Errorf("fetch jwks: %w", err)
		}
		v.jwks = jwks
	}

	return v, nil
}

// Enabled reports whether tokens are required.
func (v *Validator) Enabled() bool {
	return v != nil && v.cfg.AuthEnabled
}

// Ready indicates if the validator is prepared.
func (v *Validator) Ready() bool {
	if !v.Enabled() {
		return true
	}
	return v.jwks != nil || len(v.secret) > 0
}

// Close stops the background JWKS refresh.
func (v *Validator) Close() {
	if v != nil && v.jwks != nil {
		v.jwks.EndBackground()
	}
}

// Authenticate parses tokenString and maps its claims onto a principal.
// sub carries the employee id; uid falls back to sub.
func (v *Validator) Authenticate(ctx context.Context, tokenString string) (principal.Principal, error) {
	if tokenString == "" {
		return principal.Principal{}, unauthorized(ctx, "missing bearer token", nil)
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods(v.methods())}
	if issuer := strings.TrimSpace(v.cfg.AuthIssuer); issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience := strings.TrimSpace(v.cfg.AuthAudience); audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}

	token, err := jwt.Parse(tokenString, v.keyfunc, opts...)
	if err != nil || !token.Valid {
		return principal.Principal{}, unauthorized(ctx, "invalid token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return principal.Principal{}, unauthorized(ctx, "invalid token claims", nil)
	}

	employeeID := claimString(claims, "sub")
	if employeeID == "" {
		return principal.Principal{}, unauthorized(ctx, "invalid token subject", nil)
	}

	p := principal.Principal{
		UserID:     claimString(claims, "uid"),
		EmployeeID: employeeID,
		BranchID:   claimString(claims, "branch_id"),
		Role:       claimString(claims, "role"),
	}
	if p.UserID == "" {
		p.UserID = employeeID
	}
	if p.Role == "" {
		p.Role = principal.RoleDealer
	}
	return p, nil
}

func (v *Validator) methods() []string {
	var methods []string
	if v.jwks != nil {
		methods = append(methods, rsaMethods...)
	}
	if len(v.secret) > 0 {
		methods = append(methods, hmacMethods...)
	}
	return methods
}

func (v *Validator) keyfunc(token *jwt.Token) (any, error) {
	if _, isHMAC := token.Method.(*jwt.SigningMethodHMAC); isHMAC {
		if len(v.secret) == 0 {
			return nil, fmt.Errorf("hmac tokens are not accepted")
		}
		return v.secret, nil
	}
	if v.jwks == nil {
		return nil, fmt.Errorf("no jwks configured")
	}
	return v.jwks.Keyfunc(token)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

func unauthorized(ctx context.Context, message string, cause error) error {
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeUnauthorized,
		message, cause, "auth-validate-001")
}
