package domain

import "time"

// OrderPlacedEvent is published to the order.placed topic when a checkout
// finalizes. Fulfillment consumes it to advance tracking and send the
// confirmation email.
type OrderPlacedEvent struct {
	OrderID   string     `json:"order_id"`
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
	Total     float64    `json:"total"`
	Timestamp time.Time  `json:"timestamp"`
}
