package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"tikeria/internal/api"
	"tikeria/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps a failure onto the response per the error taxonomy:
// client-side validation is a 400 with an inline message, an upstream
// rejection keeps the API's status and message verbatim, and anything else
// is a transport failure rendered as a generic retryable 502. Upstream 401s
// additionally carry a redirect hint so the page leaves the broken
// privileged view.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, models.ErrStockExhausted):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	case errors.Is(err, models.ErrConfirmationRequired):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":                 err.Error(),
			"confirmation_required": true,
		})
	case errors.Is(err, models.ErrMutationInFlight):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	case errors.Is(err, models.ErrCartLineNotFound),
		errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrTicketNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	default:
		writeUpstreamOrTransport(w, err)
	}
}

func writeUpstreamOrTransport(w http.ResponseWriter, err error) {
	if ue, ok := api.AsUpstream(err); ok {
		body := errorBody(ue.Error())
		if ue.StatusCode == http.StatusUnauthorized {
			body["redirect"] = "/login"
		}
		writeJSON(w, ue.StatusCode, body)
		return
	}

	writeJSON(w, http.StatusBadGateway, errorBody("the ticketing service is unreachable, please retry"))
}

func errorBody(message string) map[string]any {
	return map[string]any{"error": message}
}

// readFormFile reads one uploaded file fully into memory for pass-through
func readFormFile(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func decodeBody(r *http.Request, out any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return models.ErrInvalidInput
	}
	return nil
}
