package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"tikeria/internal/models"
	"tikeria/internal/viewmodel"
)

// CartView is the display-ready cart: per-event groups, the grand total in
// the smallest currency unit, and the count of rows dropped for violating
// the API contract.
type CartView struct {
	Groups     []models.EventCartGroup `json:"groups"`
	GrandTotal int                     `json:"grand_total"`
	Dropped    int                     `json:"dropped"`
}

// CartService mediates cart reads and mutations against the marketplace
// API. Every confirmed mutation is followed by a full refetch; the local
// view is never patched in place, so the client cannot drift from
// authoritative stock and price data.
type CartService struct {
	api    CartAPI
	logger *zap.SugaredLogger

	mu       sync.Mutex
	inFlight map[int]struct{} // cart ids with an outstanding mutation
}

// NewCartService creates a cart service
func NewCartService(api CartAPI, logger *zap.SugaredLogger) *CartService {
	return &CartService{
		api:      api,
		logger:   logger,
		inFlight: make(map[int]struct{}),
	}
}

// View fetches the cart and rebuilds the grouped view-model from scratch
func (s *CartService) View(ctx context.Context, token string) (*CartView, error) {
	rows, err := s.api.GetCart(ctx, token)
	if err != nil {
		return nil, err
	}

	groups, dropped := viewmodel.BuildCartGroups(rows)
	if dropped > 0 {
		s.logger.Warnw("dropped cart rows missing ticket category", "count", dropped)
	}

	return &CartView{
		Groups:     groups,
		GrandTotal: viewmodel.ComputeGrandTotal(groups),
		Dropped:    dropped,
	}, nil
}

// Add puts a ticket-category selection in the cart and returns the rebuilt
// view
func (s *CartService) Add(ctx context.Context, token string, req models.AddToCartRequest) (*CartView, error) {
	if req.Quantity <= 0 {
		return nil, models.ErrInvalidInput
	}

	if err := s.api.AddToCart(ctx, token, req); err != nil {
		return nil, err
	}

	return s.View(ctx, token)
}

// ChangeQuantity applies a quantity delta to one cart line. The edit is
// validated against the freshly fetched cart before any mutation is sent:
// exceeding stock fails fast with ErrStockExhausted, and an edit landing on
// zero is only turned into a delete when confirmed is set; otherwise
// ErrConfirmationRequired comes back and nothing is sent. While a mutation
// for a line is outstanding, further edits to the same line are refused,
// mirroring a control disabled during flight. On success the view is rebuilt
// from a fresh fetch.
func (s *CartService) ChangeQuantity(ctx context.Context, token string, cartID, delta int, confirmed bool) (*CartView, error) {
	if !s.acquire(cartID) {
		return nil, models.ErrMutationInFlight
	}
	defer s.release(cartID)

	rows, err := s.api.GetCart(ctx, token)
	if err != nil {
		return nil, err
	}

	groups, _ := viewmodel.BuildCartGroups(rows)
	group, ok := groupContaining(groups, cartID)
	if !ok {
		return nil, models.ErrCartLineNotFound
	}

	_, change, err := viewmodel.ApplyQuantityDelta(group, cartID, delta)
	if err != nil {
		return nil, err
	}

	if change.RequiresConfirmation {
		if !confirmed {
			return nil, models.ErrConfirmationRequired
		}
		if err := s.api.DeleteCart(ctx, token, models.DeleteCartRequest{CartID: cartID}); err != nil {
			return nil, err
		}
		return s.View(ctx, token)
	}

	update := models.UpdateCartRequest{CartID: cartID, Quantity: change.NewQuantity}
	if err := s.api.UpdateCart(ctx, token, update); err != nil {
		return nil, err
	}

	return s.View(ctx, token)
}

// Remove deletes a cart line outright. Removal is destructive, so it also
// insists on explicit confirmation.
func (s *CartService) Remove(ctx context.Context, token string, cartID int, confirmed bool) (*CartView, error) {
	if !confirmed {
		return nil, models.ErrConfirmationRequired
	}

	if !s.acquire(cartID) {
		return nil, models.ErrMutationInFlight
	}
	defer s.release(cartID)

	if err := s.api.DeleteCart(ctx, token, models.DeleteCartRequest{CartID: cartID}); err != nil {
		return nil, err
	}

	return s.View(ctx, token)
}

func (s *CartService) acquire(cartID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[cartID]; busy {
		return false
	}
	s.inFlight[cartID] = struct{}{}
	return true
}

func (s *CartService) release(cartID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, cartID)
}

// groupContaining finds the group holding the given cart line
func groupContaining(groups []models.EventCartGroup, cartID int) (models.EventCartGroup, bool) {
	for _, group := range groups {
		for _, line := range group.Lines {
			if line.CartID == cartID {
				return group, true
			}
		}
	}
	return models.EventCartGroup{}, false
}
