package domain

import "time"

type OrderStatus string

// Tracking pipeline, in delivery order.
const (
	OrderStatusPlaced         OrderStatus = "placed"
	OrderStatusPacked         OrderStatus = "packed"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
)

// TrackingPipeline lists every status an order passes through.
var TrackingPipeline = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusPacked,
	OrderStatusShipped,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// Next returns the successor status, or the status itself when terminal or
// unknown.
func (s OrderStatus) Next() OrderStatus {
	for i, status := range TrackingPipeline {
		if status == s && i+1 < len(TrackingPipeline) {
			return TrackingPipeline[i+1]
		}
	}
	return s
}

// CanAdvanceTo reports whether moving to next is a single forward step in
// the pipeline.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	return s.Next() == next && s != next
}

// OrderRecord is the immutable result of a completed checkout: the cart
// snapshot at submission time, the chosen address and payment, and the
// placement timestamp. It is created once and never mutated; fulfillment
// only advances Status.
type OrderRecord struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id"`
	Items     []LineItem     `json:"items"`
	Total     float64        `json:"total"`
	Address   Address        `json:"address"`
	Payment   PaymentDetails `json:"payment"`
	Status    OrderStatus    `json:"status"`
	PlacedAt  time.Time      `json:"placed_at"`
}
