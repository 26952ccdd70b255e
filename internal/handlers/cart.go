package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tikeria/internal/middleware"
	"tikeria/internal/models"
	"tikeria/internal/services"
)

// CartHandler serves the cart view and its mutations
type CartHandler struct {
	carts *services.CartService
}

// NewCartHandler creates a cart handler
func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// View returns the grouped cart with subtotals and the grand total
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	view, err := h.carts.View(r.Context(), sess.Token)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Add puts a ticket-category selection in the cart
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	var req models.AddToCartRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	view, err := h.carts.Add(r.Context(), sess.Token, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// quantityRequest is the page's quantity-edit payload. Confirm acknowledges
// a decrement that lands on zero and turns it into a delete.
type quantityRequest struct {
	CartID  int  `json:"cart_id"`
	Delta   int  `json:"delta"`
	Confirm bool `json:"confirm"`
}

// ChangeQuantity applies a quantity delta to one cart line and returns the
// refreshed view. A decrement to zero without confirm comes back 409 with
// confirmation_required set; the page prompts and retries with confirm.
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	var req quantityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.Delta == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("delta must be non-zero"))
		return
	}

	view, err := h.carts.ChangeQuantity(r.Context(), sess.Token, req.CartID, req.Delta, req.Confirm)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Remove deletes one cart line. The confirm query parameter must be set;
// removal is always an explicit, confirmed act.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	cartID, err := strconv.Atoi(chi.URLParam(r, "cartID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid cart line id"))
		return
	}

	confirmed := r.URL.Query().Get("confirm") == "true"

	view, err := h.carts.Remove(r.Context(), sess.Token, cartID, confirmed)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
