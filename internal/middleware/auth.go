package middleware

import (
	"encoding/json"
	"net/http"

	"tikeria/internal/models"
)

// loginRedirect tells an unauthenticated caller where to go instead of
// leaving them on a broken privileged view
const loginRedirect = "/login"

// RequireAuth rejects guests. The session role only gates the surface; the
// marketplace API re-checks authorization on every forwarded call.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if !sess.IsAuthenticated() {
			writeAuthFailure(w, http.StatusUnauthorized, "authentication required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects sessions whose role is not in the allowed set
func RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromContext(r.Context())
			if !sess.IsAuthenticated() {
				writeAuthFailure(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if _, ok := allowed[sess.Identity.Role]; !ok {
				writeAuthFailure(w, http.StatusForbidden, "insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":    message,
		"redirect": loginRedirect,
	})
}
