package services

import (
	"context"

	"tikeria/internal/models"
)

// CartAPI is the slice of the marketplace client the cart service uses
type CartAPI interface {
	GetCart(ctx context.Context, token string) ([]models.CartRow, error)
	AddToCart(ctx context.Context, token string, req models.AddToCartRequest) error
	UpdateCart(ctx context.Context, token string, req models.UpdateCartRequest) error
	DeleteCart(ctx context.Context, token string, req models.DeleteCartRequest) error
}

// TicketAPI is the slice of the marketplace client the ticket service uses
type TicketAPI interface {
	GetTickets(ctx context.Context, token string) ([]models.OwnedTicket, error)
	GetTicket(ctx context.Context, token string, id int) (*models.OwnedTicket, error)
}

// EventAPI is the slice of the marketplace client the event service uses
type EventAPI interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	PopularEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id int) (*models.Event, error)
	CreateEvent(ctx context.Context, token string, req models.EventCreateRequest) error
}

// VerificationAPI is the slice of the marketplace client the verification
// service uses
type VerificationAPI interface {
	GetUser(ctx context.Context, token string, id int) (*models.User, error)
	VerifyUser(ctx context.Context, token string, userID int, req models.VerifyUserRequest) error
	VerifyEvent(ctx context.Context, token string, eventID int, req models.VerifyEventRequest) error
}
