package session

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"tikeria/internal/models"
)

const (
	sessionName = "tikeria_session"
	tokenKey    = "token"
)

// Session is the client-held belief about the current actor. It is trusted
// only for UI gating; every privileged action is re-checked by the
// marketplace API, which holds the token's signature.
type Session struct {
	Token    string
	Identity Identity
}

// Identity is the actor extracted from the token payload
type Identity struct {
	UserID int             `json:"user_id"`
	Role   models.UserRole `json:"role"`
}

// Guest returns the unauthenticated session
func Guest() Session {
	return Session{Identity: Identity{Role: models.RoleGuest}}
}

// IsAuthenticated returns true if the session carries any non-guest role
func (s Session) IsAuthenticated() bool {
	return s.Identity.Role != models.RoleGuest && s.Identity.Role != ""
}

// HasRole reports an exact match against the closed role set
func (s Session) HasRole(role models.UserRole) bool {
	return s.Identity.Role == role
}

// IsOwner reports whether the session's user owns the given resource
func (s Session) IsOwner(resourceOwnerID int) bool {
	return s.IsAuthenticated() && s.Identity.UserID == resourceOwnerID
}

// Resolver derives the current session from the persisted token. Resolution
// is synchronous and re-derived per request; there is no refresh timer.
type Resolver struct {
	store sessions.Store
}

// NewResolver creates a resolver backed by the given cookie store
func NewResolver(store sessions.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve reads the persisted token and derives the actor's identity. A
// missing token yields guest. A malformed token also yields guest and the
// stored token is cleared so the next request starts clean; Resolve never
// fails.
func (rv *Resolver) Resolve(w http.ResponseWriter, r *http.Request) Session {
	raw := bearerToken(r)
	fromCookie := false

	if raw == "" {
		stored, err := rv.store.Get(r, sessionName)
		if err != nil {
			return Guest()
		}
		raw, _ = stored.Values[tokenKey].(string)
		fromCookie = true
	}

	if raw == "" {
		return Guest()
	}

	identity, err := ParseToken(raw)
	if err != nil {
		if fromCookie {
			rv.clearToken(w, r)
		}
		return Guest()
	}

	return Session{Token: raw, Identity: identity}
}

// Persist stores a freshly issued token. Called after a successful login
// response; the cookie lives for the browser session only.
func (rv *Resolver) Persist(w http.ResponseWriter, r *http.Request, token string) error {
	stored, err := rv.store.Get(r, sessionName)
	if err != nil {
		stored, err = rv.store.New(r, sessionName)
		if err != nil {
			return err
		}
	}

	stored.Values[tokenKey] = token
	stored.Options.MaxAge = 0
	stored.Options.HttpOnly = true
	return stored.Save(r, w)
}

// Logout clears the persisted token; subsequent Resolve calls yield guest.
// The caller is expected to redirect to a public page.
func (rv *Resolver) Logout(w http.ResponseWriter, r *http.Request) {
	rv.clearToken(w, r)
}

func (rv *Resolver) clearToken(w http.ResponseWriter, r *http.Request) {
	stored, err := rv.store.Get(r, sessionName)
	if err != nil {
		return
	}

	delete(stored.Values, tokenKey)
	stored.Options.MaxAge = -1
	_ = stored.Save(r, w)
}

// bearerToken extracts the token from an Authorization header, if present
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
