package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tikeria/internal/middleware"
	"tikeria/internal/models"
	"tikeria/internal/services"
)

// EventHandler serves event browsing, detail, and organizer registration
type EventHandler struct {
	events *services.EventService
}

// NewEventHandler creates an event handler
func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// Browse lists events ordered by popularity, optionally filtered by the
// query and city parameters
func (h *EventHandler) Browse(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	city := r.URL.Query().Get("city")

	var (
		summaries []services.EventSummary
		err       error
	)
	if query != "" || city != "" {
		summaries, err = h.events.Search(r.Context(), query, city)
	} else {
		summaries, err = h.events.Browse(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": summaries})
}

// Popular lists the API's popularity ranking
func (h *EventHandler) Popular(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.events.Popular(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": summaries})
}

// Detail returns one event. can_edit is derived from the session for UI
// gating only; the marketplace API makes the real ownership check on any
// edit.
func (h *EventHandler) Detail(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid event id"))
		return
	}

	event, err := h.events.Detail(r.Context(), eventID)
	if err != nil {
		writeError(w, err)
		return
	}

	sess := middleware.SessionFromContext(r.Context())
	canEdit := sess.IsAuthenticated() && event.IsOwnedBy(sess.Identity.UserID)

	writeJSON(w, http.StatusOK, map[string]any{
		"event":    event,
		"can_edit": canEdit,
	})
}

// Register submits a new event with its poster, flyer, and ticket
// categories for admin verification
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid form data"))
		return
	}

	var categories []models.TicketCategoryCreate
	if raw := r.FormValue("ticket_categories"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &categories); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("ticket_categories must be a JSON array"))
			return
		}
	}

	req := models.EventCreateRequest{
		Name:             r.FormValue("name"),
		Description:      r.FormValue("description"),
		Location:         r.FormValue("location"),
		City:             r.FormValue("city"),
		DateStart:        r.FormValue("date_start"),
		DateEnd:          r.FormValue("date_end"),
		TicketCategories: categories,
	}

	if content, err := readFormFile(r, "image"); err == nil {
		req.Image = content
		req.ImageFilename = formFilename(r, "image")
	}
	if content, err := readFormFile(r, "flyer"); err == nil {
		req.Flyer = content
		req.FlyerFilename = formFilename(r, "flyer")
	}

	if err := h.events.Register(r.Context(), sess.Token, req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "submitted for verification"})
}

// formFilename returns the client-supplied filename of an upload, if any
func formFilename(r *http.Request, field string) string {
	if r.MultipartForm == nil {
		return ""
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return ""
	}
	return headers[0].Filename
}
