package domain

import (
	"fmt"
	"strings"
)

// Address is a shipping address. Every field is mandatory.
type Address struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Validate reports the first empty field as a validation error.
func (a Address) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", a.Name},
		{"phone", a.Phone},
		{"address", a.Address},
		{"city", a.City},
		{"state", a.State},
		{"pincode", a.Pincode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, f.name)
		}
	}
	return nil
}

// Collides reports whether two addresses resolve to the same delivery
// location: identical pincode and identical street address ignoring case.
func (a Address) Collides(other Address) bool {
	return strings.EqualFold(a.Address, other.Address) && a.Pincode == other.Pincode
}
