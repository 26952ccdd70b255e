package middleware

import (
	"context"
	"net/http"

	"tikeria/internal/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionMiddleware resolves the actor's session once per request and puts
// it in the request context. Resolution never fails; a missing or malformed
// token simply yields guest.
type SessionMiddleware struct {
	resolver *session.Resolver
}

// NewSessionMiddleware creates the session middleware
func NewSessionMiddleware(resolver *session.Resolver) *SessionMiddleware {
	return &SessionMiddleware{resolver: resolver}
}

// Load derives the session and adds it to context
func (m *SessionMiddleware) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.resolver.Resolve(w, r)
		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext returns the session placed by Load, or guest when the
// middleware did not run
func SessionFromContext(ctx context.Context) session.Session {
	if sess, ok := ctx.Value(sessionContextKey).(session.Session); ok {
		return sess
	}
	return session.Guest()
}
