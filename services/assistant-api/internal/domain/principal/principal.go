// Package principal carries the authenticated dealer through a request.
package principal

import "context"

// Roles known to the dealer platform.
const (
	RoleDealer  = "dealer"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// Principal is the identity resolved from a bearer token.
type Principal struct {
	UserID     string `json:"user_id"`
	EmployeeID string `json:"employee_id"`
	BranchID   string `json:"branch_id"`
	Role       string `json:"role"`
}

type contextKey struct{}

// WithPrincipal stores p on ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the principal stored on ctx, if any.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok && p.UserID != ""
}
