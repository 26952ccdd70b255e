package models

import "time"

// OwnedTicket represents a purchased, redeemable ticket as returned by the
// marketplace API. Code is the opaque redemption credential rendered as a QR
// image; it must be re-fetched immediately before display so a superseded
// code is never shown.
type OwnedTicket struct {
	TicketID       int             `json:"ticket_id"`
	Code           string          `json:"code"`
	TicketCategory *TicketCategory `json:"ticket_category,omitempty"`
	Event          *TicketEvent    `json:"event,omitempty"`
}

// TicketEvent is the event summary nested inside an owned ticket
type TicketEvent struct {
	Name      string     `json:"name"`
	Location  string     `json:"location"`
	City      string     `json:"city"`
	DateStart *time.Time `json:"date_start,omitempty"`
	DateEnd   *time.Time `json:"date_end,omitempty"`
}

// TicketDetail is one owned ticket flattened for display inside its event
// group
type TicketDetail struct {
	TicketID    int        `json:"ticket_id"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Price       int        `json:"price"`
	ValidFrom   *time.Time `json:"valid_from,omitempty"`
	ValidUntil  *time.Time `json:"valid_until,omitempty"`
}

// TicketEventGroup aggregates owned tickets under their event for display.
// Unlike EventCartGroup it is keyed by event name because the tickets
// endpoint does not guarantee a stable event id, and it is read-only.
type TicketEventGroup struct {
	EventName string         `json:"event_name"`
	Address   string         `json:"address"`
	DateStart *time.Time     `json:"date_start,omitempty"`
	DateEnd   *time.Time     `json:"date_end,omitempty"`
	Details   []TicketDetail `json:"details"`
}
