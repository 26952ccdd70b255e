package models

import "time"

// CartRow represents one cart row exactly as the marketplace API returns it,
// with the parent event and ticket category nested. Rows whose ticket
// category is missing violate the API contract and are dropped during
// grouping rather than rendered.
type CartRow struct {
	CartID         int             `json:"cart_id"`
	EventID        int             `json:"event_id,omitempty"`
	Event          *CartRowEvent   `json:"event,omitempty"`
	TicketCategory *TicketCategory `json:"ticket_category,omitempty"`
	Quantity       int             `json:"quantity"`
}

// CartRowEvent is the event summary nested inside a cart row
type CartRowEvent struct {
	EventID int    `json:"event_id"`
	Name    string `json:"name"`
	Image   string `json:"image"`
}

// CartLine is one ticket-category selection inside the cart, flattened for
// display
type CartLine struct {
	CartID           int        `json:"cart_id"`
	EventID          int        `json:"event_id"`
	TicketCategoryID int        `json:"ticket_category_id"`
	TicketName       string     `json:"ticket_name"`
	Description      string     `json:"description"`
	UnitPrice        int        `json:"unit_price"` // smallest currency unit
	Quantity         int        `json:"quantity"`
	StockRemaining   int        `json:"stock_remaining"`
	ValidFrom        *time.Time `json:"valid_from,omitempty"`
	ValidUntil       *time.Time `json:"valid_until,omitempty"`
}

// EventCartGroup aggregates the cart lines of one event for display. It is
// rebuilt from scratch on every successful cart fetch and never persisted.
type EventCartGroup struct {
	EventID     int        `json:"event_id"`
	EventName   string     `json:"event_name"`
	EventPoster string     `json:"event_poster"`
	Lines       []CartLine `json:"lines"`
}

// Subtotal returns the sum of unit_price*quantity over the group's lines
func (g *EventCartGroup) Subtotal() int {
	total := 0
	for _, line := range g.Lines {
		total += line.UnitPrice * line.Quantity
	}
	return total
}

// LineTotal returns the price of the line multiplied by its quantity
func (l *CartLine) LineTotal() int {
	return l.UnitPrice * l.Quantity
}
