package services

import (
	"context"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"tikeria/internal/models"
	"tikeria/internal/viewmodel"
)

const qrImageSize = 256

// TicketCredential is a redeemable ticket prepared for display: the ticket
// as fetched moments ago plus its code rendered as a QR PNG.
type TicketCredential struct {
	Ticket *models.OwnedTicket
	PNG    []byte
}

// TicketService serves the purchased-tickets view and redemption
// credentials
type TicketService struct {
	api    TicketAPI
	logger *zap.SugaredLogger
}

// NewTicketService creates a ticket service
func NewTicketService(api TicketAPI, logger *zap.SugaredLogger) *TicketService {
	return &TicketService{api: api, logger: logger}
}

// Groups fetches the user's tickets grouped by event for display. The
// listing never feeds QR rendering; see Credential.
func (s *TicketService) Groups(ctx context.Context, token string) ([]models.TicketEventGroup, int, error) {
	tickets, err := s.api.GetTickets(ctx, token)
	if err != nil {
		return nil, 0, err
	}

	groups, dropped := viewmodel.BuildTicketGroups(tickets)
	if dropped > 0 {
		s.logger.Warnw("dropped tickets missing ticket category", "count", dropped)
	}

	return groups, dropped, nil
}

// Credential fetches the ticket's current redemption code and renders it as
// a QR image. The code always comes from this fresh fetch so a superseded
// code from an earlier listing is never shown at the gate.
func (s *TicketService) Credential(ctx context.Context, token string, ticketID int) (*TicketCredential, error) {
	ticket, err := s.api.GetTicket(ctx, token, ticketID)
	if err != nil {
		return nil, err
	}

	if ticket.Code == "" {
		return nil, models.ErrTicketNotFound
	}

	png, err := qrcode.Encode(ticket.Code, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("rendering ticket code: %w", err)
	}

	return &TicketCredential{Ticket: ticket, PNG: png}, nil
}
