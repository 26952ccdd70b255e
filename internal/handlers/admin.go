package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tikeria/internal/middleware"
	"tikeria/internal/services"
)

// AdminHandler serves the admin verification pages for organizer
// registrations and pending events
type AdminHandler struct {
	verification *services.VerificationService
}

// NewAdminHandler creates an admin handler
func NewAdminHandler(verification *services.VerificationService) *AdminHandler {
	return &AdminHandler{verification: verification}
}

// reviewRequest is the admin's decision payload
type reviewRequest struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment"`
}

// OrganizerProfile returns the organizer under review
func (h *AdminHandler) OrganizerProfile(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid user id"))
		return
	}

	user, err := h.verification.OrganizerProfile(r.Context(), sess.Token, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":     user,
		"verified": user.IsVerifiedOrganizer(),
	})
}

// VerifyOrganizer records the decision on an organizer registration
func (h *AdminHandler) VerifyOrganizer(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid user id"))
		return
	}

	var req reviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.verification.ReviewOrganizer(r.Context(), sess.Token, userID, req.Approve, req.Comment); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// VerifyEvent records the decision on a pending event
func (h *AdminHandler) VerifyEvent(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid event id"))
		return
	}

	var req reviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.verification.ReviewEvent(r.Context(), sess.Token, eventID, req.Approve, req.Comment); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}
