package domain

import (
	"fmt"
	"regexp"
	"strings"
)

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCOD  PaymentMethod = "cod"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	ifscPattern       = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
	upiPattern        = regexp.MustCompile(`^[\w.-]+@[\w.-]+$`)
)

// CardDetails carries card payment fields. Only the method name ever reaches
// durable storage; the raw fields live in the order record in memory only.
type CardDetails struct {
	Number string `json:"card_number"`
	IFSC   string `json:"ifsc"`
	Holder string `json:"holder"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

type UPIDetails struct {
	ID string `json:"upi_id"`
}

// PaymentDetails is a tagged variant over the supported payment methods.
// Exactly one of Card or UPI is set, matching Method; cash on delivery
// carries no fields. This rules out mixed states like a card payment with a
// UPI id attached.
type PaymentDetails struct {
	Method PaymentMethod `json:"method"`
	Card   *CardDetails  `json:"card,omitempty"`
	UPI    *UPIDetails   `json:"upi,omitempty"`
}

// Validate checks the variant's fields and reports the specific violated
// rule. An empty method is itself a violation.
func (p PaymentDetails) Validate() error {
	switch p.Method {
	case PaymentMethodCard:
		return p.validateCard()
	case PaymentMethodUPI:
		return p.validateUPI()
	case PaymentMethodCOD:
		return nil
	case "":
		return fmt.Errorf("%w: select a payment method", ErrValidation)
	default:
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, p.Method)
	}
}

func (p PaymentDetails) validateCard() error {
	if p.Card == nil {
		return fmt.Errorf("%w: card details are required", ErrValidation)
	}
	if !cardNumberPattern.MatchString(p.Card.Number) {
		return fmt.Errorf("%w: card number must be 16 digits", ErrValidation)
	}
	if !ifscPattern.MatchString(p.Card.IFSC) {
		return fmt.Errorf("%w: invalid IFSC code", ErrValidation)
	}
	if !cvvPattern.MatchString(p.Card.CVV) {
		return fmt.Errorf("%w: CVV must be 3 or 4 digits", ErrValidation)
	}
	if len(strings.TrimSpace(p.Card.Holder)) < 3 {
		return fmt.Errorf("%w: enter a valid account holder name", ErrValidation)
	}
	if strings.TrimSpace(p.Card.Expiry) == "" {
		return fmt.Errorf("%w: expiry is required", ErrValidation)
	}
	return nil
}

func (p PaymentDetails) validateUPI() error {
	if p.UPI == nil || !upiPattern.MatchString(p.UPI.ID) {
		return fmt.Errorf("%w: invalid UPI id", ErrValidation)
	}
	return nil
}
