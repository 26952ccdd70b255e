package models

import (
	"fmt"
	"strings"
)

// LoginRequest is the credential payload forwarded to the marketplace API
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token issued by the marketplace API
type LoginResponse struct {
	Token string `json:"token"`
}

// AddToCartRequest adds a ticket-category selection to the cart
type AddToCartRequest struct {
	EventID          int `json:"event_id"`
	TicketCategoryID int `json:"ticket_category_id"`
	Quantity         int `json:"quantity"`
}

// UpdateCartRequest sets the absolute quantity of an existing cart line
type UpdateCartRequest struct {
	CartID   int `json:"cart_id"`
	Quantity int `json:"quantity"`
}

// DeleteCartRequest removes a cart line
type DeleteCartRequest struct {
	CartID int `json:"cart_id"`
}

// TicketCategoryCreate is one ticket tier inside an event registration
type TicketCategoryCreate struct {
	Name          string `json:"name"`
	Price         int    `json:"price"`
	Quota         int    `json:"quota"`
	Description   string `json:"description"`
	DateTimeStart string `json:"date_time_start"`
	DateTimeEnd   string `json:"date_time_end"`
}

// EventCreateRequest is the multipart event registration payload. Image and
// Flyer carry the raw upload bytes; TicketCategories is JSON-encoded into a
// single multipart field the way the API expects.
type EventCreateRequest struct {
	Name             string
	Description      string
	Location         string
	City             string
	DateStart        string
	DateEnd          string
	Image            []byte
	ImageFilename    string
	Flyer            []byte
	FlyerFilename    string
	TicketCategories []TicketCategoryCreate
}

// Validate checks the registration before the upload leaves this service;
// a bad tier never costs a network round-trip
func (req *EventCreateRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: event name is required", ErrInvalidInput)
	}

	if len(req.TicketCategories) == 0 {
		return fmt.Errorf("%w: at least one ticket category is required", ErrInvalidInput)
	}

	for _, tc := range req.TicketCategories {
		if strings.TrimSpace(tc.Name) == "" {
			return fmt.Errorf("%w: ticket category name is required", ErrInvalidInput)
		}
		if tc.Price < 0 {
			return fmt.Errorf("%w: ticket price cannot be negative", ErrInvalidInput)
		}
		if tc.Quota <= 0 {
			return fmt.Errorf("%w: ticket quota must be greater than 0", ErrInvalidInput)
		}
	}

	return nil
}

// VerifyEventRequest is the admin decision on a pending event
type VerifyEventRequest struct {
	Status          EventStatus `json:"status"`
	ApprovalComment string      `json:"approval_comment"`
}

// VerifyUserRequest is the admin decision on a pending organizer
// registration. The API historically accepted a second
// {register_status, register_comment} shape for the same operation; this
// service sends only the {status, comment} form.
type VerifyUserRequest struct {
	Status  RegisterStatus `json:"status"`
	Comment string         `json:"comment"`
}
