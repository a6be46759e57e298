package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/minimartx/storefront/internal/domain"
	"github.com/minimartx/storefront/internal/storage"
)

// Sessions implements the storefront's mock sign-in. A session holds at most
// one registered profile; login is an exact email equality check against it.
// There is no password, no hashing, and no identity provider — this exists
// so the checkout flow has a profile to show, nothing more.
type Sessions struct {
	store storage.Store
}

func NewSessions(store storage.Store) *Sessions {
	return &Sessions{store: store}
}

// Signup stores the profile as the registered identity, replacing any
// earlier registration.
func (s *Sessions) Signup(ctx context.Context, sessionID string, profile domain.UserProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	key := storage.SessionKey(sessionID, storage.KeyRegisteredUser)
	if err := s.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("persist registration: %w", err)
	}
	return nil
}

// Login matches the supplied email against the registered profile and, on a
// match, establishes and persists the session.
func (s *Sessions) Login(ctx context.Context, sessionID, email string) (*domain.UserProfile, error) {
	data, err := s.store.Get(ctx, storage.SessionKey(sessionID, storage.KeyRegisteredUser))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: no account registered, sign up first", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load registration: %w", err)
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("unmarshal registration: %w", err)
	}

	if profile.Email != email {
		return nil, fmt.Errorf("%w: email does not match registration", domain.ErrMismatch)
	}

	if err := s.store.Put(ctx, storage.SessionKey(sessionID, storage.KeyUser), data); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return &profile, nil
}

// Logout clears the established session; the registration stays.
func (s *Sessions) Logout(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, storage.SessionKey(sessionID, storage.KeyUser))
}

// Current returns the logged-in profile, or nil when the session has none.
func (s *Sessions) Current(ctx context.Context, sessionID string) (*domain.UserProfile, error) {
	data, err := s.store.Get(ctx, storage.SessionKey(sessionID, storage.KeyUser))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &profile, nil
}
