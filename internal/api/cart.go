package api

import (
	"context"
	"net/http"

	"tikeria/internal/models"
)

// GetCart fetches the authenticated user's full cart
func (c *Client) GetCart(ctx context.Context, token string) ([]models.CartRow, error) {
	var payload struct {
		Carts []models.CartRow `json:"carts"`
	}

	if err := c.do(ctx, http.MethodGet, "/api/cart", token, nil, &payload); err != nil {
		return nil, err
	}

	return payload.Carts, nil
}

// AddToCart adds a ticket-category selection to the cart
func (c *Client) AddToCart(ctx context.Context, token string, req models.AddToCartRequest) error {
	return c.do(ctx, http.MethodPost, "/api/cart", token, req, nil)
}

// UpdateCart sets the absolute quantity of an existing cart line. Stock is
// re-checked upstream; a rejection arrives as an UpstreamError with the
// API's message intact.
func (c *Client) UpdateCart(ctx context.Context, token string, req models.UpdateCartRequest) error {
	return c.do(ctx, http.MethodPatch, "/api/cart", token, req, nil)
}

// DeleteCart removes a cart line. The API takes the cart id in the request
// body, not the path.
func (c *Client) DeleteCart(ctx context.Context, token string, req models.DeleteCartRequest) error {
	return c.do(ctx, http.MethodDelete, "/api/cart", token, req, nil)
}
