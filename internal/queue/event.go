// Package queue defines the order events exchanged over RabbitMQ and the
// consumer that records them.
package queue

import "time"

// Event types, also used as routing keys.
const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
)

// OrderQueue is the durable queue both event types are published to.
const OrderQueue = "trialvo.orders"

// OrderEvent is published after an order is stored or its status changes.
// It carries enough for a consumer to notify or log without reading the
// database.
type OrderEvent struct {
	Type           string    `json:"type"`
	OrderID        string    `json:"order_id"`
	ProductID      string    `json:"product_id,omitempty"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	PaymentMethod  string    `json:"payment_method"`
	TotalBDT       string    `json:"total_bdt"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
