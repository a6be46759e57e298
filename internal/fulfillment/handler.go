package fulfillment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/minimartx/storefront/internal/domain"
)

// Handler reacts to placed orders: it advances the order along the tracking
// pipeline and asks the email service for a confirmation mail. Errors
// propagate so the event stays uncommitted and is redelivered.
type Handler struct {
	storefrontURL string
	emailURL      string
	httpClient    *http.Client
	logger        *slog.Logger
}

func NewHandler(storefrontURL, emailURL string, client *http.Client, logger *slog.Logger) *Handler {
	return &Handler{
		storefrontURL: storefrontURL,
		emailURL:      emailURL,
		httpClient:    client,
		logger:        logger,
	}
}

func (h *Handler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderPlacedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal order placed event: %w", err)
	}

	h.logger.Info("processing placed order", "order_id", event.OrderID, "session_id", event.SessionID)

	if err := h.advanceStatus(ctx, event.OrderID, domain.OrderStatusPacked); err != nil {
		h.logger.Error("failed to advance order status", "error", err, "order_id", event.OrderID)
		return fmt.Errorf("advance order status: %w", err)
	}

	if err := h.sendConfirmationEmail(ctx, event); err != nil {
		h.logger.Error("failed to send confirmation email", "error", err, "order_id", event.OrderID)
		return fmt.Errorf("send confirmation email: %w", err)
	}

	h.logger.Info("order fulfillment started", "order_id", event.OrderID)
	return nil
}

func (h *Handler) advanceStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	body := map[string]string{"status": string(status)}
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/orders/%s/status", h.storefrontURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("storefront returned status %d", resp.StatusCode)
	}

	return nil
}

func (h *Handler) sendConfirmationEmail(ctx context.Context, event domain.OrderPlacedEvent) error {
	body := map[string]string{
		"to":      event.SessionID + "@example.com",
		"subject": "Order Confirmation: " + event.OrderID,
		"body": fmt.Sprintf("Your order %s with %d items (total %.2f) has been placed and is being packed.",
			event.OrderID, len(event.Items), event.Total),
	}

	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.emailURL+"/send", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}

	return nil
}
