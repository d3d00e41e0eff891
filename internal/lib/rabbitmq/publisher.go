package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/edu-platform/internal/models"
)

// Channel — часть *amqp.Channel, нужная для публикации.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// PublishMessage публикует сообщение в RabbitMQ в формате JSON.
func PublishMessage(ch Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// EventPublisher публикует доменные события; routing key = тип события.
type EventPublisher struct {
	ch       Channel
	exchange string
}

// NewEventPublisher создаёт EventPublisher.
func NewEventPublisher(ch Channel, exchange string) *EventPublisher {
	return &EventPublisher{ch: ch, exchange: exchange}
}

// Publish отправляет событие в обменник.
func (p *EventPublisher) Publish(ctx context.Context, event models.Event) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return PublishMessage(p.ch, p.exchange, event.Type, event)
}

// NopPublisher отбрасывает события. Используется, когда брокер не настроен.
type NopPublisher struct{}

// Publish ничего не делает.
func (NopPublisher) Publish(context.Context, models.Event) error { return nil }
