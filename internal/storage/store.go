package storage

import (
	"context"
	"errors"
)

// Store is the durable key-value layer holding session-scoped storefront
// state: cart, saved addresses, browse preferences, and the auth profile.
// Each component owns disjoint keys, so single-key writes are all the
// atomicity anyone needs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrKeyNotFound = errors.New("key not found")

// Storage key names, one per persisted entity.
const (
	KeyCart           = "cart"
	KeySavedAddresses = "savedAddresses"
	KeyActiveCategory = "activeCategory"
	KeySortOption     = "sortOption"
	KeyUser           = "user"
	KeyRegisteredUser = "registeredUser"
)

// SessionKey scopes a storage key to one client session.
func SessionKey(sessionID, name string) string {
	return sessionID + ":" + name
}
