package domain

import (
	"fmt"
	"strings"
)

// UserProfile is the registered identity. There is no password and no
// server-side verification; login is a plain email equality check against
// the stored profile. This is a demo stub, not an authentication boundary.
type UserProfile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (u UserProfile) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", u.Name},
		{"email", u.Email},
		{"phone", u.Phone},
		{"address", u.Address},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, f.name)
		}
	}
	return nil
}
