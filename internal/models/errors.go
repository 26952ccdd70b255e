package models

import "errors"

// Common errors used throughout the application
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrCartLineNotFound     = errors.New("cart line not found")
	ErrUnauthorized         = errors.New("unauthorized access")
	ErrForbidden            = errors.New("insufficient role")
	ErrInvalidInput         = errors.New("invalid input")
	ErrStockExhausted       = errors.New("insufficient ticket stock")
	ErrConfirmationRequired = errors.New("removal requires explicit confirmation")
	ErrMutationInFlight     = errors.New("another update for this cart line is still in flight")
)
