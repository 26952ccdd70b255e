package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tikeria/internal/middleware"
	"tikeria/internal/services"
)

// TicketHandler serves the purchased-tickets view and redemption QR images
type TicketHandler struct {
	tickets *services.TicketService
}

// NewTicketHandler creates a ticket handler
func NewTicketHandler(tickets *services.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// List returns the user's tickets grouped by event
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	groups, dropped, err := h.tickets.Groups(r.Context(), sess.Token)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"groups":  groups,
		"dropped": dropped,
	})
}

// Credential renders the ticket's current redemption code as a PNG QR
// image. The code is fetched fresh on every call and the response is marked
// uncacheable so a superseded code is never shown.
func (h *TicketHandler) Credential(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	ticketID, err := strconv.Atoi(chi.URLParam(r, "ticketID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid ticket id"))
		return
	}

	cred, err := h.tickets.Credential(r.Context(), sess.Token, ticketID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(cred.PNG)
}
