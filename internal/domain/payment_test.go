package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestPaymentDetails_Validate(t *testing.T) {
	validCard := &CardDetails{
		Number: "1234567890123456",
		IFSC:   "SBIN0001234",
		Holder: "Jane Doe",
		Expiry: "12/27",
		CVV:    "123",
	}

	tests := []struct {
		name    string
		payment PaymentDetails
		wantErr string
	}{
		{
			name:    "valid card passes",
			payment: PaymentDetails{Method: PaymentMethodCard, Card: validCard},
		},
		{
			name: "short card number fails",
			payment: PaymentDetails{Method: PaymentMethodCard, Card: &CardDetails{
				Number: "123", IFSC: "SBIN0001234", Holder: "Jane Doe", Expiry: "12/27", CVV: "123",
			}},
			wantErr: "card number must be 16 digits",
		},
		{
			name: "malformed IFSC fails",
			payment: PaymentDetails{Method: PaymentMethodCard, Card: &CardDetails{
				Number: "1234567890123456", IFSC: "BADCODE", Holder: "Jane Doe", Expiry: "12/27", CVV: "123",
			}},
			wantErr: "invalid IFSC code",
		},
		{
			name: "two digit cvv fails",
			payment: PaymentDetails{Method: PaymentMethodCard, Card: &CardDetails{
				Number: "1234567890123456", IFSC: "SBIN0001234", Holder: "Jane Doe", Expiry: "12/27", CVV: "12",
			}},
			wantErr: "CVV must be 3 or 4 digits",
		},
		{
			name: "four digit cvv passes",
			payment: PaymentDetails{Method: PaymentMethodCard, Card: &CardDetails{
				Number: "1234567890123456", IFSC: "SBIN0001234", Holder: "Jane Doe", Expiry: "12/27", CVV: "1234",
			}},
		},
		{
			name: "short holder name fails",
			payment: PaymentDetails{Method: PaymentMethodCard, Card: &CardDetails{
				Number: "1234567890123456", IFSC: "SBIN0001234", Holder: "  ab ", Expiry: "12/27", CVV: "123",
			}},
			wantErr: "enter a valid account holder name",
		},
		{
			name: "blank expiry fails",
			payment: PaymentDetails{Method: PaymentMethodCard, Card: &CardDetails{
				Number: "1234567890123456", IFSC: "SBIN0001234", Holder: "Jane Doe", Expiry: "  ", CVV: "123",
			}},
			wantErr: "expiry is required",
		},
		{
			name:    "card method without details fails",
			payment: PaymentDetails{Method: PaymentMethodCard},
			wantErr: "card details are required",
		},
		{
			name:    "valid upi id passes",
			payment: PaymentDetails{Method: PaymentMethodUPI, UPI: &UPIDetails{ID: "ajay@upi"}},
		},
		{
			name:    "upi id without handle fails",
			payment: PaymentDetails{Method: PaymentMethodUPI, UPI: &UPIDetails{ID: "ajay"}},
			wantErr: "invalid UPI id",
		},
		{
			name:    "upi method without details fails",
			payment: PaymentDetails{Method: PaymentMethodUPI},
			wantErr: "invalid UPI id",
		},
		{
			name:    "cash on delivery needs nothing",
			payment: PaymentDetails{Method: PaymentMethodCOD},
		},
		{
			name:    "empty method fails",
			payment: PaymentDetails{},
			wantErr: "select a payment method",
		},
		{
			name:    "unknown method fails",
			payment: PaymentDetails{Method: "crypto"},
			wantErr: "unknown payment method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payment.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if got := err.Error(); !strings.Contains(got, tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, got)
			}
		})
	}
}
