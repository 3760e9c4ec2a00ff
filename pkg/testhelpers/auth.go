// Package testhelpers mints bearer tokens for service tests.
package testhelpers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultIssuer   = "dealermate"
	DefaultAudience = "dealermate-web"
)

// DealerClaims returns a claim set for a dealer employee, valid for an hour.
func DealerClaims(employeeID, branchID, role string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"iss":       DefaultIssuer,
		"aud":       DefaultAudience,
		"sub":       employeeID,
		"branch_id": branchID,
		"role":      role,
		"iat":       now.Unix(),
		"exp":       now.Add(time.Hour).Unix(),
	}
}

// SignHS256 signs claims with a shared secret.
func SignHS256(secret string, claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
