package models

import "time"

// EventStatus represents the verification status of an event
type EventStatus string

const (
	EventPending  EventStatus = "pending"
	EventApproved EventStatus = "approved"
	EventRejected EventStatus = "rejected"
)

// TicketCategory represents one purchasable ticket tier of an event
type TicketCategory struct {
	TicketCategoryID int        `json:"ticket_category_id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Price            int        `json:"price"` // smallest currency unit
	Quota            int        `json:"quota"`
	Sold             int        `json:"sold"`
	DateTimeStart    *time.Time `json:"date_time_start,omitempty"`
	DateTimeEnd      *time.Time `json:"date_time_end,omitempty"`
}

// Event represents an event as returned by the marketplace API
type Event struct {
	EventID          int              `json:"event_id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Location         string           `json:"location"`
	City             string           `json:"city"`
	Image            string           `json:"image"`
	Flyer            string           `json:"flyer,omitempty"`
	DateStart        *time.Time       `json:"date_start,omitempty"`
	DateEnd          *time.Time       `json:"date_end,omitempty"`
	Status           EventStatus      `json:"status,omitempty"`
	ApprovalComment  string           `json:"approval_comment,omitempty"`
	TotalTicketsSold int              `json:"total_tickets_sold"`
	TicketCategories []TicketCategory `json:"ticket_categories"`
	Owner            *User            `json:"owner,omitempty"`
}

// Available returns the number of tickets still purchasable in the category
func (tc *TicketCategory) Available() int {
	available := tc.Quota - tc.Sold
	if available < 0 {
		return 0
	}
	return available
}

// StartingPrice returns the lowest category price of the event, or 0 when no
// categories are attached
func (e *Event) StartingPrice() int {
	if len(e.TicketCategories) == 0 {
		return 0
	}

	lowest := e.TicketCategories[0].Price
	for _, tc := range e.TicketCategories[1:] {
		if tc.Price < lowest {
			lowest = tc.Price
		}
	}
	return lowest
}

// IsOwnedBy returns true if the event belongs to the given user
func (e *Event) IsOwnedBy(userID int) bool {
	return e.Owner != nil && e.Owner.UserID == userID
}
