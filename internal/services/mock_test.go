package services

import (
	"context"
	"sync"

	"tikeria/internal/models"
)

// mockMarketplaceAPI fakes the marketplace client for service tests. Cart
// mutations are applied to the in-memory rows the way the real API would,
// so refresh-after-mutation behavior is observable.
type mockMarketplaceAPI struct {
	mu    sync.Mutex
	rows  []models.CartRow
	calls []string

	tickets    []models.OwnedTicket
	ticketByID map[int]*models.OwnedTicket

	events []models.Event
	users  map[int]*models.User

	failOps map[string]error

	// blockUpdate, when non-nil, makes UpdateCart wait until the channel
	// is closed. Used to hold a mutation in flight.
	blockUpdate chan struct{}

	verifiedEvents map[int]models.VerifyEventRequest
	verifiedUsers  map[int]models.VerifyUserRequest
	created        []models.EventCreateRequest
}

func newMockAPI() *mockMarketplaceAPI {
	return &mockMarketplaceAPI{
		ticketByID:     make(map[int]*models.OwnedTicket),
		users:          make(map[int]*models.User),
		failOps:        make(map[string]error),
		verifiedEvents: make(map[int]models.VerifyEventRequest),
		verifiedUsers:  make(map[int]models.VerifyUserRequest),
	}
}

func (m *mockMarketplaceAPI) record(op string) error {
	m.mu.Lock()
	m.calls = append(m.calls, op)
	err := m.failOps[op]
	m.mu.Unlock()
	return err
}

func (m *mockMarketplaceAPI) callNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *mockMarketplaceAPI) GetCart(ctx context.Context, token string) ([]models.CartRow, error) {
	if err := m.record("GetCart"); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	rows := make([]models.CartRow, len(m.rows))
	copy(rows, m.rows)
	return rows, nil
}

func (m *mockMarketplaceAPI) AddToCart(ctx context.Context, token string, req models.AddToCartRequest) error {
	return m.record("AddToCart")
}

func (m *mockMarketplaceAPI) UpdateCart(ctx context.Context, token string, req models.UpdateCartRequest) error {
	if err := m.record("UpdateCart"); err != nil {
		return err
	}

	if m.blockUpdate != nil {
		<-m.blockUpdate
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].CartID == req.CartID {
			m.rows[i].Quantity = req.Quantity
			return nil
		}
	}
	return models.ErrCartLineNotFound
}

func (m *mockMarketplaceAPI) DeleteCart(ctx context.Context, token string, req models.DeleteCartRequest) error {
	if err := m.record("DeleteCart"); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].CartID == req.CartID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return models.ErrCartLineNotFound
}

func (m *mockMarketplaceAPI) GetTickets(ctx context.Context, token string) ([]models.OwnedTicket, error) {
	if err := m.record("GetTickets"); err != nil {
		return nil, err
	}
	return m.tickets, nil
}

func (m *mockMarketplaceAPI) GetTicket(ctx context.Context, token string, id int) (*models.OwnedTicket, error) {
	if err := m.record("GetTicket"); err != nil {
		return nil, err
	}

	ticket, ok := m.ticketByID[id]
	if !ok {
		return nil, models.ErrTicketNotFound
	}
	return ticket, nil
}

func (m *mockMarketplaceAPI) ListEvents(ctx context.Context) ([]models.Event, error) {
	if err := m.record("ListEvents"); err != nil {
		return nil, err
	}
	return m.events, nil
}

func (m *mockMarketplaceAPI) PopularEvents(ctx context.Context) ([]models.Event, error) {
	if err := m.record("PopularEvents"); err != nil {
		return nil, err
	}
	return m.events, nil
}

func (m *mockMarketplaceAPI) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	if err := m.record("GetEvent"); err != nil {
		return nil, err
	}

	for i := range m.events {
		if m.events[i].EventID == id {
			return &m.events[i], nil
		}
	}
	return nil, models.ErrEventNotFound
}

func (m *mockMarketplaceAPI) CreateEvent(ctx context.Context, token string, req models.EventCreateRequest) error {
	if err := m.record("CreateEvent"); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, req)
	return nil
}

func (m *mockMarketplaceAPI) GetUser(ctx context.Context, token string, id int) (*models.User, error) {
	if err := m.record("GetUser"); err != nil {
		return nil, err
	}

	user, ok := m.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func (m *mockMarketplaceAPI) VerifyUser(ctx context.Context, token string, userID int, req models.VerifyUserRequest) error {
	if err := m.record("VerifyUser"); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifiedUsers[userID] = req
	return nil
}

func (m *mockMarketplaceAPI) VerifyEvent(ctx context.Context, token string, eventID int, req models.VerifyEventRequest) error {
	if err := m.record("VerifyEvent"); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifiedEvents[eventID] = req
	return nil
}
