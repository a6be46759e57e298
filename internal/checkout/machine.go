package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/minimartx/storefront/internal/address"
	"github.com/minimartx/storefront/internal/cart"
	"github.com/minimartx/storefront/internal/domain"
)

type State string

const (
	StateAddressSelection State = "address_selection"
	StatePaymentSelection State = "payment_selection"
	StatePlaced           State = "placed"
)

// OrderStore is the durable destination for finalized orders. Delete backs
// out an insert when the follow-up cart clear fails.
type OrderStore interface {
	Create(ctx context.Context, order *domain.OrderRecord) error
	Delete(ctx context.Context, id string) error
}

// Publisher announces placed orders. Publishing is best effort; a failed
// publish never unwinds a placed order.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Manager drives the two-step checkout flow, one machine per session:
//
//	address_selection -> payment_selection -> placed
//
// Transitions are gated on validation and nothing leaves placed; a new
// checkout starts a fresh machine. Each HTTP call runs a whole transition
// under the manager lock, mirroring the original's run-to-completion UI
// callbacks.
type Manager struct {
	mu       sync.Mutex
	machines map[string]State

	carts     *cart.Store
	addresses *address.Book
	orders    OrderStore
	publisher Publisher
	logger    *slog.Logger
}

func NewManager(carts *cart.Store, addresses *address.Book, orders OrderStore, publisher Publisher, logger *slog.Logger) *Manager {
	return &Manager{
		machines:  make(map[string]State),
		carts:     carts,
		addresses: addresses,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
	}
}

// Begin starts a fresh checkout for the session, discarding any machine
// left over from an abandoned flow.
func (m *Manager) Begin(_ context.Context, sessionID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.machines[sessionID] = StateAddressSelection
	return StateAddressSelection
}

// State returns the session's current checkout state; a session that never
// began a checkout is in address selection.
func (m *Manager) State(_ context.Context, sessionID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state(sessionID)
}

func (m *Manager) state(sessionID string) State {
	if s, ok := m.machines[sessionID]; ok {
		return s
	}
	return StateAddressSelection
}

// ConfirmAddress moves to payment selection, provided an address is
// selected. Without one the machine stays put and the caller gets the
// reason.
func (m *Manager) ConfirmAddress(ctx context.Context, sessionID string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.state(sessionID)
	if current != StateAddressSelection {
		return current, fmt.Errorf("%w: checkout is not awaiting an address", domain.ErrValidation)
	}

	selected, err := m.addresses.Selected(ctx, sessionID)
	if err != nil {
		return current, err
	}
	if selected == nil {
		return current, fmt.Errorf("%w: select a delivery address to continue", domain.ErrValidation)
	}

	m.machines[sessionID] = StatePaymentSelection
	return StatePaymentSelection, nil
}

// SubmitPayment validates the payment variant and finalizes the order:
// snapshot the cart, persist the record, clear the cart, move to placed.
// From the caller's view this is atomic — a failed cart clear deletes the
// just-inserted order again and the machine stays in payment selection.
func (m *Manager) SubmitPayment(ctx context.Context, sessionID string, payment domain.PaymentDetails) (*domain.OrderRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.state(sessionID)
	if current != StatePaymentSelection {
		return nil, fmt.Errorf("%w: checkout is not awaiting payment", domain.ErrValidation)
	}

	if err := payment.Validate(); err != nil {
		return nil, err
	}

	selected, err := m.addresses.Selected(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if selected == nil {
		return nil, fmt.Errorf("%w: no delivery address selected", domain.ErrValidation)
	}

	items, err := m.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty, nothing to order", domain.ErrValidation)
	}

	order := &domain.OrderRecord{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Items:     items,
		Total:     items.Total(),
		Address:   *selected,
		Payment:   payment,
		Status:    domain.OrderStatusPlaced,
		PlacedAt:  time.Now().UTC(),
	}

	if err := m.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	if err := m.carts.Clear(ctx, sessionID); err != nil {
		// Back out the order so the cart and the history never disagree.
		if delErr := m.orders.Delete(ctx, order.ID); delErr != nil {
			m.logger.Error("failed to compensate order after cart clear failure",
				"error", delErr, "order_id", order.ID)
		}
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	m.machines[sessionID] = StatePlaced

	if m.publisher != nil {
		event := domain.OrderPlacedEvent{
			OrderID:   order.ID,
			SessionID: sessionID,
			Items:     order.Items,
			Total:     order.Total,
			Timestamp: order.PlacedAt,
		}
		if err := m.publisher.Publish(ctx, order.ID, event); err != nil {
			m.logger.Error("failed to publish order placed event", "error", err, "order_id", order.ID)
		}
	}

	m.logger.Info("order placed", "order_id", order.ID, "session_id", sessionID, "total", order.Total)
	return order, nil
}
