// Package service publishes order events to RabbitMQ.  Publishing is best
// effort: failures are logged and returned, and callers never fail a
// request because of them.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/trialvo/trialvo-backend/internal/model"
	"github.com/trialvo/trialvo-backend/internal/order"
	"github.com/trialvo/trialvo-backend/internal/queue"
)

// EventPublisher is what handlers depend on.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.OrderEvent) error
}

// Noop drops every event.  Used when RABBITMQ_URL is unset.
type Noop struct{}

func (Noop) Publish(context.Context, queue.OrderEvent) error { return nil }

// AMQPPublisher dials the broker per publish.  Order traffic is low, so
// there is no long-lived connection to babysit.
type AMQPPublisher struct {
	url string
	log *zap.Logger
}

func NewAMQPPublisher(url string, log *zap.Logger) *AMQPPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &AMQPPublisher{url: url, log: log.Named("publisher")}
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev queue.OrderEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.OrderQueue, true, false, false, false, nil); err != nil {
		p.log.Warn("queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	err = ch.PublishWithContext(ctx, "", queue.OrderQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         ev.Type,
		Timestamp:    ev.OccurredAt,
		Body:         body,
	})
	if err != nil {
		p.log.Warn("publish failed", zap.String("order_id", ev.OrderID), zap.Error(err))
	}
	return err
}

// OrderCreatedEvent describes a freshly stored order.
func OrderCreatedEvent(o *model.Order, at time.Time) queue.OrderEvent {
	return baseEvent(queue.OrderCreated, o, at)
}

// StatusChangedEvent describes a status overwrite.
func StatusChangedEvent(o *model.Order, previous order.Status, at time.Time) queue.OrderEvent {
	ev := baseEvent(queue.OrderStatusChanged, o, at)
	ev.PreviousStatus = string(previous)
	return ev
}

func baseEvent(typ string, o *model.Order, at time.Time) queue.OrderEvent {
	ev := queue.OrderEvent{
		Type:          typ,
		OrderID:       o.OrderID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		PaymentMethod: o.PaymentMethod,
		TotalBDT:      o.TotalBDT.String(),
		Status:        string(o.Status),
		OccurredAt:    at.UTC(),
	}
	if o.ProductID != nil {
		ev.ProductID = *o.ProductID
	}
	return ev
}
