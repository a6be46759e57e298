package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/minimartx/storefront/internal/domain"
	"github.com/minimartx/storefront/internal/storage"
)

// Store keeps one cart per session in durable key-value storage. Every
// mutation persists the full cart snapshot before returning, so the cart
// survives a reload.
type Store struct {
	store storage.Store
}

func NewStore(store storage.Store) *Store {
	return &Store{store: store}
}

// Get loads the session's cart. A session with no stored cart has an empty
// one.
func (s *Store) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	data, err := s.store.Get(ctx, storage.SessionKey(sessionID, storage.KeyCart))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return cart, nil
}

// Add puts one unit of the product in the cart: an existing line item gains
// quantity, otherwise a new line item with quantity 1 joins the end. Adding
// never fails on cart state.
func (s *Store) Add(ctx context.Context, sessionID string, product domain.ProductSnapshot) (domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if i := cart.Find(product.ID); i >= 0 {
		cart[i].Quantity++
	} else {
		cart = append(cart, domain.LineItem{Product: product, Quantity: 1})
	}

	return cart, s.save(ctx, sessionID, cart)
}

// Decrease removes one unit; a line item reaching zero is deleted outright
// so no quantity ever persists at zero. Unknown product ids are a no-op.
func (s *Store) Decrease(ctx context.Context, sessionID string, productID int) (domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := cart.Find(productID)
	if i < 0 {
		return cart, nil
	}

	cart[i].Quantity--
	if cart[i].Quantity <= 0 {
		cart = append(cart[:i], cart[i+1:]...)
	}

	return cart, s.save(ctx, sessionID, cart)
}

// Remove deletes the line item regardless of quantity.
func (s *Store) Remove(ctx context.Context, sessionID string, productID int) (domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := cart.Find(productID)
	if i < 0 {
		return cart, nil
	}

	cart = append(cart[:i], cart[i+1:]...)
	return cart, s.save(ctx, sessionID, cart)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.save(ctx, sessionID, domain.Cart{})
}

func (s *Store) save(ctx context.Context, sessionID string, cart domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.store.Put(ctx, storage.SessionKey(sessionID, storage.KeyCart), data); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
