package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/minimartx/storefront/internal/address"
	"github.com/minimartx/storefront/internal/cart"
	"github.com/minimartx/storefront/internal/domain"
	"github.com/minimartx/storefront/internal/storage"
)

type fakeOrderStore struct {
	orders     map[string]*domain.OrderRecord
	createErr  error
	deleteErr  error
	deletedIDs []string
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*domain.OrderRecord)}
}

func (f *fakeOrderStore) Create(_ context.Context, order *domain.OrderRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderStore) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.orders, id)
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

type fakePublisher struct {
	events []any
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, _ string, event any) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

// failingKV works normally until armed, then refuses cart writes. This
// makes the cart clear step fail after the order insert succeeded.
type failingKV struct {
	storage.Store
	armed bool
}

func (f *failingKV) Put(ctx context.Context, key string, value []byte) error {
	if f.armed && strings.HasSuffix(key, storage.KeyCart) {
		return errors.New("kv unavailable")
	}
	return f.Store.Put(ctx, key, value)
}

type fixture struct {
	manager   *Manager
	carts     *cart.Store
	addresses *address.Book
	orders    *fakeOrderStore
	publisher *fakePublisher
}

func newFixture(kv storage.Store) *fixture {
	carts := cart.NewStore(kv)
	addresses := address.NewBook(kv)
	orders := newFakeOrderStore()
	publisher := &fakePublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		manager:   NewManager(carts, addresses, orders, publisher, logger),
		carts:     carts,
		addresses: addresses,
		orders:    orders,
		publisher: publisher,
	}
}

func seedCart(t *testing.T, f *fixture, sessionID string) {
	t.Helper()
	ctx := context.Background()

	first := domain.ProductSnapshot{ID: 1, Title: "Notebook", Price: 10, Category: "stationery"}
	second := domain.ProductSnapshot{ID: 2, Title: "Pen", Price: 5, Category: "stationery"}

	for _, p := range []domain.ProductSnapshot{first, first, second} {
		if _, err := f.carts.Add(ctx, sessionID, p); err != nil {
			t.Fatalf("seed cart: %v", err)
		}
	}
}

func seedAddress(t *testing.T, f *fixture, sessionID string) {
	t.Helper()
	ctx := context.Background()

	addr := domain.Address{
		Name:    "Jane Doe",
		Phone:   "9876543210",
		Address: "12 MG Road",
		City:    "Mumbai",
		State:   "Maharashtra",
		Pincode: "400001",
	}
	if _, err := f.addresses.Add(ctx, sessionID, addr); err != nil {
		t.Fatalf("seed address: %v", err)
	}
}

func TestManager_Begin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(storage.NewMemoryStore())

	if got := f.manager.State(ctx, "s1"); got != StateAddressSelection {
		t.Errorf("fresh session should be in address selection, got %q", got)
	}

	seedCart(t, f, "s1")
	seedAddress(t, f, "s1")
	if _, err := f.manager.ConfirmAddress(ctx, "s1"); err != nil {
		t.Fatalf("confirm address failed: %v", err)
	}

	// Begin discards the half-finished flow.
	if got := f.manager.Begin(ctx, "s1"); got != StateAddressSelection {
		t.Errorf("begin should reset to address selection, got %q", got)
	}
}

func TestManager_ConfirmAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("without a selected address the machine stays put", func(t *testing.T) {
		f := newFixture(storage.NewMemoryStore())
		f.manager.Begin(ctx, "s1")

		state, err := f.manager.ConfirmAddress(ctx, "s1")
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		if state != StateAddressSelection {
			t.Errorf("expected address selection, got %q", state)
		}
	})

	t.Run("with a selected address it advances to payment", func(t *testing.T) {
		f := newFixture(storage.NewMemoryStore())
		seedAddress(t, f, "s1")
		f.manager.Begin(ctx, "s1")

		state, err := f.manager.ConfirmAddress(ctx, "s1")
		if err != nil {
			t.Fatalf("confirm address failed: %v", err)
		}
		if state != StatePaymentSelection {
			t.Errorf("expected payment selection, got %q", state)
		}
	})

	t.Run("confirming twice is rejected", func(t *testing.T) {
		f := newFixture(storage.NewMemoryStore())
		seedAddress(t, f, "s1")
		f.manager.Begin(ctx, "s1")

		if _, err := f.manager.ConfirmAddress(ctx, "s1"); err != nil {
			t.Fatalf("first confirm failed: %v", err)
		}
		if _, err := f.manager.ConfirmAddress(ctx, "s1"); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation on second confirm, got %v", err)
		}
	})
}

func TestManager_SubmitPayment(t *testing.T) {
	ctx := context.Background()
	cod := domain.PaymentDetails{Method: domain.PaymentMethodCOD}

	advance := func(t *testing.T, f *fixture) {
		t.Helper()
		f.manager.Begin(ctx, "s1")
		if _, err := f.manager.ConfirmAddress(ctx, "s1"); err != nil {
			t.Fatalf("confirm address failed: %v", err)
		}
	}

	t.Run("cash on delivery places the order and empties the cart", func(t *testing.T) {
		f := newFixture(storage.NewMemoryStore())
		seedCart(t, f, "s1")
		seedAddress(t, f, "s1")
		advance(t, f)

		order, err := f.manager.SubmitPayment(ctx, "s1", cod)
		if err != nil {
			t.Fatalf("submit payment failed: %v", err)
		}

		if order.Total != 25 {
			t.Errorf("expected total 25, got %v", order.Total)
		}
		if order.Status != domain.OrderStatusPlaced {
			t.Errorf("expected status placed, got %q", order.Status)
		}
		if len(order.Items) != 2 {
			t.Errorf("expected 2 line items, got %d", len(order.Items))
		}
		if _, ok := f.orders.orders[order.ID]; !ok {
			t.Error("order was not persisted")
		}

		remaining, err := f.carts.Get(ctx, "s1")
		if err != nil {
			t.Fatalf("get cart failed: %v", err)
		}
		if len(remaining) != 0 {
			t.Errorf("expected empty cart after placement, got %d lines", len(remaining))
		}

		if got := f.manager.State(ctx, "s1"); got != StatePlaced {
			t.Errorf("expected placed, got %q", got)
		}
		if len(f.publisher.events) != 1 {
			t.Fatalf("expected 1 published event, got %d", len(f.publisher.events))
		}
		event, ok := f.publisher.events[0].(domain.OrderPlacedEvent)
		if !ok {
			t.Fatalf("unexpected event type %T", f.publisher.events[0])
		}
		if event.OrderID != order.ID || event.Total != 25 {
			t.Errorf("event does not match order: %+v", event)
		}
	})

	t.Run("invalid payment keeps the machine in payment selection", func(t *testing.T) {
		f := newFixture(storage.NewMemoryStore())
		seedCart(t, f, "s1")
		seedAddress(t, f, "s1")
		advance(t, f)

		bad := domain.PaymentDetails{Method: domain.PaymentMethodCard, Card: &domain.CardDetails{Number: "123"}}
		if _, err := f.manager.SubmitPayment(ctx, "s1", bad); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}

		if got := f.manager.State(ctx, "s1"); got != StatePaymentSelection {
			t.Errorf("expected payment selection, got %q", got)
		}
		if len(f.orders.orders) != 0 {
			t.Errorf("no order should be persisted, got %d", len(f.orders.orders))
		}
	})

	t.Run("empty cart cannot be ordered", func(t *testing.T) {
		f := newFixture(storage.NewMemoryStore())
		seedAddress(t, f, "s1")
		advance(t, f)

		if _, err := f.manager.SubmitPayment(ctx, "s1", cod); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("submitting before confirming the address is rejected", func(t *testing.T) {
		f := newFixture(storage.NewMemoryStore())
		seedCart(t, f, "s1")
		seedAddress(t, f, "s1")
		f.manager.Begin(ctx, "s1")

		if _, err := f.manager.SubmitPayment(ctx, "s1", cod); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("submitting after placement is rejected", func(t *testing.T) {
		f := newFixture(storage.NewMemoryStore())
		seedCart(t, f, "s1")
		seedAddress(t, f, "s1")
		advance(t, f)

		if _, err := f.manager.SubmitPayment(ctx, "s1", cod); err != nil {
			t.Fatalf("first submit failed: %v", err)
		}
		if _, err := f.manager.SubmitPayment(ctx, "s1", cod); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation after placement, got %v", err)
		}
	})

	t.Run("failed cart clear backs out the persisted order", func(t *testing.T) {
		kv := &failingKV{Store: storage.NewMemoryStore()}
		f := newFixture(kv)
		seedCart(t, f, "s1")
		seedAddress(t, f, "s1")
		advance(t, f)
		kv.armed = true

		if _, err := f.manager.SubmitPayment(ctx, "s1", cod); err == nil {
			t.Fatal("expected error from failed cart clear")
		}

		if len(f.orders.orders) != 0 {
			t.Errorf("order should be compensated away, got %d", len(f.orders.orders))
		}
		if len(f.orders.deletedIDs) != 1 {
			t.Errorf("expected 1 compensating delete, got %d", len(f.orders.deletedIDs))
		}
		if got := f.manager.State(ctx, "s1"); got != StatePaymentSelection {
			t.Errorf("expected payment selection after rollback, got %q", got)
		}
		if len(f.publisher.events) != 0 {
			t.Errorf("no event should be published, got %d", len(f.publisher.events))
		}
	})

	t.Run("failed publish does not unwind the order", func(t *testing.T) {
		f := newFixture(storage.NewMemoryStore())
		f.publisher.err = errors.New("broker down")
		seedCart(t, f, "s1")
		seedAddress(t, f, "s1")
		advance(t, f)

		order, err := f.manager.SubmitPayment(ctx, "s1", cod)
		if err != nil {
			t.Fatalf("submit payment failed: %v", err)
		}
		if _, ok := f.orders.orders[order.ID]; !ok {
			t.Error("order should stay persisted despite publish failure")
		}
		if got := f.manager.State(ctx, "s1"); got != StatePlaced {
			t.Errorf("expected placed, got %q", got)
		}
	})
}
