package viewmodel

import (
	"strings"

	"tikeria/internal/models"
)

// BuildTicketGroups groups owned tickets under their event for display. The
// tickets endpoint does not guarantee a stable event id, so the grouping key
// is the event name. Groups and details keep input order. The result is
// read-only; owned tickets have no quantity to edit. Tickets missing their
// nested ticket category are dropped the same way cart rows are.
func BuildTicketGroups(tickets []models.OwnedTicket) ([]models.TicketEventGroup, int) {
	groups := make([]models.TicketEventGroup, 0, len(tickets))
	index := make(map[string]int, len(tickets))
	dropped := 0

	for _, ticket := range tickets {
		if ticket.TicketCategory == nil {
			dropped++
			continue
		}

		name := unknownEventName
		var address string
		if ticket.Event != nil {
			if ticket.Event.Name != "" {
				name = ticket.Event.Name
			}
			address = eventAddress(ticket.Event)
		}

		at, seen := index[name]
		if !seen {
			at = len(groups)
			index[name] = at
			group := models.TicketEventGroup{
				EventName: name,
				Address:   address,
			}
			if ticket.Event != nil {
				group.DateStart = ticket.Event.DateStart
				group.DateEnd = ticket.Event.DateEnd
			}
			groups = append(groups, group)
		}

		groups[at].Details = append(groups[at].Details, models.TicketDetail{
			TicketID:    ticket.TicketID,
			Type:        ticket.TicketCategory.Name,
			Description: ticket.TicketCategory.Description,
			Price:       ticket.TicketCategory.Price,
			ValidFrom:   ticket.TicketCategory.DateTimeStart,
			ValidUntil:  ticket.TicketCategory.DateTimeEnd,
		})
	}

	return groups, dropped
}

// eventAddress joins location and city, tolerating either being absent
func eventAddress(event *models.TicketEvent) string {
	parts := make([]string, 0, 2)
	if event.Location != "" {
		parts = append(parts, event.Location)
	}
	if event.City != "" {
		parts = append(parts, event.City)
	}
	return strings.Join(parts, ", ")
}
