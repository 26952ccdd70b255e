package api

import (
	"context"
	"net/http"
	"strconv"

	"tikeria/internal/models"
)

// GetTickets fetches the authenticated user's purchased tickets
func (c *Client) GetTickets(ctx context.Context, token string) ([]models.OwnedTicket, error) {
	var tickets []models.OwnedTicket
	if err := c.do(ctx, http.MethodGet, "/api/tickets", token, nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// GetTicket fetches one ticket with its current redemption code. The code
// must come from this call, never from an earlier listing, so a superseded
// code is never rendered.
func (c *Client) GetTicket(ctx context.Context, token string, id int) (*models.OwnedTicket, error) {
	var payload struct {
		Ticket models.OwnedTicket `json:"ticket"`
	}

	if err := c.do(ctx, http.MethodGet, "/api/tickets/"+strconv.Itoa(id), token, nil, &payload); err != nil {
		return nil, err
	}

	return &payload.Ticket, nil
}
