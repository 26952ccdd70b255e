// Package viewmodel reshapes the flat collections returned by the
// marketplace API into the grouped structures the pages display. Groups are
// rebuilt from scratch on every fetch; nothing here survives a refetch.
package viewmodel

import (
	"tikeria/internal/models"
)

const unknownEventName = "Unknown Event"

// QuantityChange describes the outcome of an attempted quantity edit on a
// cart line, computed before any network call is made.
type QuantityChange struct {
	CartID      int
	OldQuantity int
	NewQuantity int

	// RequiresConfirmation is set when the edit would bring the quantity
	// to zero. Decrementing to zero is never silently destructive; the
	// caller must obtain explicit confirmation before issuing the delete.
	RequiresConfirmation bool
}

// BuildCartGroups groups cart rows by their parent event, preserving the
// first-seen order of events and of lines within an event. Rows missing
// their nested ticket category violate the API contract and are dropped
// rather than rendered; the second return value counts them.
func BuildCartGroups(rows []models.CartRow) ([]models.EventCartGroup, int) {
	groups := make([]models.EventCartGroup, 0, len(rows))
	index := make(map[int]int, len(rows))
	dropped := 0

	for _, row := range rows {
		if row.TicketCategory == nil {
			dropped++
			continue
		}

		eventID := row.EventID
		eventName := unknownEventName
		eventPoster := ""
		if row.Event != nil {
			eventID = row.Event.EventID
			if row.Event.Name != "" {
				eventName = row.Event.Name
			}
			eventPoster = row.Event.Image
		}

		at, seen := index[eventID]
		if !seen {
			at = len(groups)
			index[eventID] = at
			groups = append(groups, models.EventCartGroup{
				EventID:     eventID,
				EventName:   eventName,
				EventPoster: eventPoster,
			})
		}

		groups[at].Lines = append(groups[at].Lines, models.CartLine{
			CartID:           row.CartID,
			EventID:          eventID,
			TicketCategoryID: row.TicketCategory.TicketCategoryID,
			TicketName:       row.TicketCategory.Name,
			Description:      row.TicketCategory.Description,
			UnitPrice:        row.TicketCategory.Price,
			Quantity:         row.Quantity,
			StockRemaining:   row.TicketCategory.Available(),
			ValidFrom:        row.TicketCategory.DateTimeStart,
			ValidUntil:       row.TicketCategory.DateTimeEnd,
		})
	}

	return groups, dropped
}

// ApplyQuantityDelta computes the optimistic quantity edit for one cart
// line. A delta that would push the quantity above the remaining stock is
// rejected with ErrStockExhausted before any network call, leaving the group
// untouched. An edit landing on zero is not applied either: the returned
// change carries RequiresConfirmation and the caller decides whether to
// delete. Any other edit is applied to a copy of the group for display while
// the server round-trip is outstanding.
func ApplyQuantityDelta(group models.EventCartGroup, cartID int, delta int) (models.EventCartGroup, QuantityChange, error) {
	for i, line := range group.Lines {
		if line.CartID != cartID {
			continue
		}

		newQty := line.Quantity + delta
		if newQty > line.StockRemaining {
			return group, QuantityChange{}, models.ErrStockExhausted
		}
		if newQty < 0 {
			newQty = 0
		}

		change := QuantityChange{
			CartID:               cartID,
			OldQuantity:          line.Quantity,
			NewQuantity:          newQty,
			RequiresConfirmation: newQty == 0,
		}

		if change.RequiresConfirmation {
			return group, change, nil
		}

		updated := group
		updated.Lines = make([]models.CartLine, len(group.Lines))
		copy(updated.Lines, group.Lines)
		updated.Lines[i].Quantity = newQty
		return updated, change, nil
	}

	return group, QuantityChange{}, models.ErrCartLineNotFound
}

// ComputeGrandTotal sums unit_price*quantity across every line of every
// group. All arithmetic is in the smallest currency unit; no floats.
func ComputeGrandTotal(groups []models.EventCartGroup) int {
	total := 0
	for i := range groups {
		total += groups[i].Subtotal()
	}
	return total
}
