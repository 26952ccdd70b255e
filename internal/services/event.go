package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"tikeria/internal/models"
)

// EventSummary is one event card on the browse and search pages
type EventSummary struct {
	EventID          int        `json:"event_id"`
	Name             string     `json:"name"`
	City             string     `json:"city"`
	Image            string     `json:"image"`
	DateStart        *time.Time `json:"date_start,omitempty"`
	DateEnd          *time.Time `json:"date_end,omitempty"`
	StartingPrice    int        `json:"starting_price"`
	TotalTicketsSold int        `json:"total_tickets_sold"`
}

// EventService serves event browsing, search, and organizer registration
type EventService struct {
	api    EventAPI
	logger *zap.SugaredLogger
}

// NewEventService creates an event service
func NewEventService(api EventAPI, logger *zap.SugaredLogger) *EventService {
	return &EventService{api: api, logger: logger}
}

// Browse lists all events ordered by popularity, most tickets sold first.
// The sort is stable so events with equal sales keep the API's order.
func (s *EventService) Browse(ctx context.Context) ([]EventSummary, error) {
	events, err := s.api.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	summaries := summarize(events)
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalTicketsSold > summaries[j].TotalTicketsSold
	})

	return summaries, nil
}

// Popular lists the API's popularity ranking as-is
func (s *EventService) Popular(ctx context.Context) ([]EventSummary, error) {
	events, err := s.api.PopularEvents(ctx)
	if err != nil {
		return nil, err
	}
	return summarize(events), nil
}

// Search filters the browse listing by name substring and optional city,
// both case-insensitive, keeping the popularity order
func (s *EventService) Search(ctx context.Context, query, city string) ([]EventSummary, error) {
	summaries, err := s.Browse(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	city = strings.ToLower(strings.TrimSpace(city))

	filtered := summaries[:0]
	for _, summary := range summaries {
		if query != "" && !strings.Contains(strings.ToLower(summary.Name), query) {
			continue
		}
		if city != "" && strings.ToLower(summary.City) != city {
			continue
		}
		filtered = append(filtered, summary)
	}

	return filtered, nil
}

// Detail fetches one event with its ticket categories and owner
func (s *EventService) Detail(ctx context.Context, id int) (*models.Event, error) {
	return s.api.GetEvent(ctx, id)
}

// Register submits a new event for admin verification
func (s *EventService) Register(ctx context.Context, token string, req models.EventCreateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.api.CreateEvent(ctx, token, req); err != nil {
		return err
	}

	s.logger.Infow("event registered", "name", req.Name, "categories", len(req.TicketCategories))
	return nil
}

func summarize(events []models.Event) []EventSummary {
	summaries := make([]EventSummary, 0, len(events))
	for i := range events {
		event := &events[i]
		summaries = append(summaries, EventSummary{
			EventID:          event.EventID,
			Name:             event.Name,
			City:             event.City,
			Image:            event.Image,
			DateStart:        event.DateStart,
			DateEnd:          event.DateEnd,
			StartingPrice:    event.StartingPrice(),
			TotalTicketsSold: event.TotalTicketsSold,
		})
	}
	return summaries
}
