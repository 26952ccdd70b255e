package session

import (
	"errors"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"tikeria/internal/models"
)

// Token decode errors. Callers treat any of them the same way: fail closed
// to guest.
var (
	ErrMalformedToken = errors.New("malformed token")
	ErrMissingClaim   = errors.New("token payload is missing a required claim")
	ErrUnknownRole    = errors.New("token role is outside the known role set")
)

// ParseToken decodes the payload segment of a three-segment bearer token and
// extracts the actor's identity. The signature is deliberately not verified:
// the marketplace API is the sole trust boundary and the identity is used
// for UI gating only. ParseToken is total; it returns an error for any
// malformed input and never panics.
func ParseToken(raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, ErrMalformedToken
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return Identity{}, ErrMalformedToken
	}

	userID, ok := claimInt(claims, "user_id")
	if !ok || userID <= 0 {
		return Identity{}, ErrMissingClaim
	}

	roleClaim, ok := claims["role"].(string)
	if !ok {
		return Identity{}, ErrMissingClaim
	}

	role := models.UserRole(roleClaim)
	if !models.ValidRole(role) || role == models.RoleGuest {
		return Identity{}, ErrUnknownRole
	}

	return Identity{UserID: userID, Role: role}, nil
}

// claimInt reads a numeric claim, tolerating the types JSON decoding may
// produce for it
func claimInt(claims jwt.MapClaims, key string) (int, bool) {
	switch v := claims[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
