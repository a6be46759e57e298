package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/minimartx/storefront/internal/domain"
	"github.com/minimartx/storefront/internal/storage"
)

func testProfile() domain.UserProfile {
	return domain.UserProfile{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "9876543210",
		Address: "12 MG Road, Mumbai",
	}
}

func TestSessions_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("incomplete profile is rejected", func(t *testing.T) {
		sessions := NewSessions(storage.NewMemoryStore())

		profile := testProfile()
		profile.Email = ""
		if err := sessions.Signup(ctx, "s1", profile); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("signup replaces an earlier registration", func(t *testing.T) {
		sessions := NewSessions(storage.NewMemoryStore())

		if err := sessions.Signup(ctx, "s1", testProfile()); err != nil {
			t.Fatalf("first signup failed: %v", err)
		}

		replacement := testProfile()
		replacement.Email = "new@example.com"
		if err := sessions.Signup(ctx, "s1", replacement); err != nil {
			t.Fatalf("second signup failed: %v", err)
		}

		if _, err := sessions.Login(ctx, "s1", "jane@example.com"); !errors.Is(err, domain.ErrMismatch) {
			t.Errorf("old email should no longer match, got %v", err)
		}
		if _, err := sessions.Login(ctx, "s1", "new@example.com"); err != nil {
			t.Errorf("new email should match, got %v", err)
		}
	})
}

func TestSessions_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("login without registration is not found", func(t *testing.T) {
		sessions := NewSessions(storage.NewMemoryStore())

		_, err := sessions.Login(ctx, "s1", "jane@example.com")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("email must match the registration exactly", func(t *testing.T) {
		sessions := NewSessions(storage.NewMemoryStore())
		_ = sessions.Signup(ctx, "s1", testProfile())

		profile, err := sessions.Login(ctx, "s1", "jane@example.com")
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if profile.Name != "Jane Doe" {
			t.Errorf("expected registered profile, got %+v", profile)
		}

		// A differently-cased email is a different email.
		if _, err := sessions.Login(ctx, "s1", "JANE@Example.COM"); !errors.Is(err, domain.ErrMismatch) {
			t.Errorf("expected ErrMismatch for different-cased email, got %v", err)
		}
	})

	t.Run("wrong email is a mismatch", func(t *testing.T) {
		sessions := NewSessions(storage.NewMemoryStore())
		_ = sessions.Signup(ctx, "s1", testProfile())

		_, err := sessions.Login(ctx, "s1", "someone@else.com")
		if !errors.Is(err, domain.ErrMismatch) {
			t.Fatalf("expected ErrMismatch, got %v", err)
		}
	})

	t.Run("login establishes the current session", func(t *testing.T) {
		sessions := NewSessions(storage.NewMemoryStore())
		_ = sessions.Signup(ctx, "s1", testProfile())

		if _, err := sessions.Login(ctx, "s1", "jane@example.com"); err != nil {
			t.Fatalf("login failed: %v", err)
		}

		current, err := sessions.Current(ctx, "s1")
		if err != nil {
			t.Fatalf("current failed: %v", err)
		}
		if current == nil || current.Email != "jane@example.com" {
			t.Errorf("expected logged-in profile, got %+v", current)
		}
	})
}

func TestSessions_Logout(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(storage.NewMemoryStore())

	_ = sessions.Signup(ctx, "s1", testProfile())
	if _, err := sessions.Login(ctx, "s1", "jane@example.com"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := sessions.Logout(ctx, "s1"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	current, err := sessions.Current(ctx, "s1")
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if current != nil {
		t.Errorf("expected no current profile after logout, got %+v", current)
	}

	// The registration survives, so a fresh login still works.
	if _, err := sessions.Login(ctx, "s1", "jane@example.com"); err != nil {
		t.Errorf("login after logout failed: %v", err)
	}
}

func TestSessions_CurrentWithoutLogin(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(storage.NewMemoryStore())

	current, err := sessions.Current(ctx, "s1")
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if current != nil {
		t.Errorf("expected nil profile, got %+v", current)
	}
}
