package handlers

import (
	"context"
	"net/http"

	"tikeria/internal/middleware"
	"tikeria/internal/models"
	"tikeria/internal/session"
)

// AuthAPI is the slice of the marketplace client the auth handler uses
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Register(ctx context.Context, fields map[string]string, files map[string][]byte) error
}

// AuthHandler handles login, logout, and session introspection
type AuthHandler struct {
	api      AuthAPI
	resolver *session.Resolver
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(api AuthAPI, resolver *session.Resolver) *AuthHandler {
	return &AuthHandler{api: api, resolver: resolver}
}

// Login exchanges credentials for a token and persists it. The token itself
// stays in the session cookie; the response exposes only the derived
// identity.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("email and password are required"))
		return
	}

	resp, err := h.api.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	identity, err := session.ParseToken(resp.Token)
	if err != nil {
		// the API handed back a token this service cannot read; treat
		// it like a failed login rather than storing it
		writeJSON(w, http.StatusBadGateway, errorBody("login response was not usable, please retry"))
		return
	}

	if err := h.resolver.Persist(w, r, resp.Token); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("could not persist session"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": identity.UserID,
		"role":    identity.Role,
	})
}

// Register forwards a sign-up form to the marketplace API as-is
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid form data"))
		return
	}

	fields := make(map[string]string, len(r.MultipartForm.Value))
	for key, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	files := make(map[string][]byte)
	for name := range r.MultipartForm.File {
		content, err := readFormFile(r, name)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid file upload"))
			return
		}
		files[name] = content
	}

	if err := h.api.Register(r.Context(), fields, files); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

// Logout clears the persisted token and points the caller at a public page
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.resolver.Logout(w, r)
	writeJSON(w, http.StatusOK, map[string]string{"redirect": "/"})
}

// Session reports the current actor's identity for UI gating
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": sess.IsAuthenticated(),
		"user_id":       sess.Identity.UserID,
		"role":          sess.Identity.Role,
	})
}
