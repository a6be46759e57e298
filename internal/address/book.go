package address

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/minimartx/storefront/internal/domain"
	"github.com/minimartx/storefront/internal/storage"
)

// NoSelection means no address is currently selected.
const NoSelection = -1

// Book holds a session's saved shipping addresses plus a selection pointer.
// The pointer always refers to a live member of the list; deleting the
// selected entry moves it to the new first entry, or clears it when the list
// empties. The whole book persists on every mutation.
type Book struct {
	store storage.Store
}

func NewBook(store storage.Store) *Book {
	return &Book{store: store}
}

// State is the persisted address book for one session.
type State struct {
	Addresses []domain.Address `json:"addresses"`
	Selected  int              `json:"selected"`
}

// Get loads the book; a fresh session has an empty list and no selection.
func (b *Book) Get(ctx context.Context, sessionID string) (State, error) {
	data, err := b.store.Get(ctx, storage.SessionKey(sessionID, storage.KeySavedAddresses))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return State{Selected: NoSelection}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("load addresses: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("unmarshal addresses: %w", err)
	}
	return state, nil
}

// Add validates the address, rejects duplicates, then appends, selects, and
// persists it.
func (b *Book) Add(ctx context.Context, sessionID string, addr domain.Address) (State, error) {
	if err := addr.Validate(); err != nil {
		return State{}, err
	}

	state, err := b.Get(ctx, sessionID)
	if err != nil {
		return State{}, err
	}

	for _, existing := range state.Addresses {
		if existing.Collides(addr) {
			return State{}, fmt.Errorf("%w: address already saved for pincode %s", domain.ErrDuplicate, addr.Pincode)
		}
	}

	state.Addresses = append(state.Addresses, addr)
	state.Selected = len(state.Addresses) - 1

	return state, b.save(ctx, sessionID, state)
}

// Delete removes the entry at index. Removing the selected entry reassigns
// the selection to the new first entry, or to none when the list empties.
func (b *Book) Delete(ctx context.Context, sessionID string, index int) (State, error) {
	state, err := b.Get(ctx, sessionID)
	if err != nil {
		return State{}, err
	}

	if index < 0 || index >= len(state.Addresses) {
		return State{}, fmt.Errorf("%w: no address at index %d", domain.ErrNotFound, index)
	}

	state.Addresses = append(state.Addresses[:index], state.Addresses[index+1:]...)

	switch {
	case len(state.Addresses) == 0:
		state.Selected = NoSelection
	case state.Selected == index:
		state.Selected = 0
	case state.Selected > index:
		state.Selected--
	}

	return state, b.save(ctx, sessionID, state)
}

// Select points the selection at an existing entry.
func (b *Book) Select(ctx context.Context, sessionID string, index int) (State, error) {
	state, err := b.Get(ctx, sessionID)
	if err != nil {
		return State{}, err
	}

	if index < 0 || index >= len(state.Addresses) {
		return State{}, fmt.Errorf("%w: no address at index %d", domain.ErrNotFound, index)
	}

	state.Selected = index
	return state, b.save(ctx, sessionID, state)
}

// Selected returns the currently selected address, or nil.
func (b *Book) Selected(ctx context.Context, sessionID string) (*domain.Address, error) {
	state, err := b.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if state.Selected < 0 || state.Selected >= len(state.Addresses) {
		return nil, nil
	}

	addr := state.Addresses[state.Selected]
	return &addr, nil
}

func (b *Book) save(ctx context.Context, sessionID string, state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal addresses: %w", err)
	}
	if err := b.store.Put(ctx, storage.SessionKey(sessionID, storage.KeySavedAddresses), data); err != nil {
		return fmt.Errorf("persist addresses: %w", err)
	}
	return nil
}
