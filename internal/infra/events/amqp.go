// Package events forwards audit events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/cockroachdb/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/amai-mens-care/internal/audit"
)

const Exchange = "amai.events"

// Publisher implements audit.Sink. The connection is opened lazily and
// re-dialled after a failure.
type Publisher struct {
	url string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

var _ audit.Sink = (*Publisher)(nil)

func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.closeLocked()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, errors.Wrap(err, "amqp dial")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "amqp channel")
	}
	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "amqp exchange declare")
	}

	p.conn, p.ch = conn, ch
	log.Info().Str("exchange", Exchange).Msg("amqp publisher connected")
	return ch, nil
}

// Write publishes ev with the action as routing key.
func (p *Publisher) Write(ctx context.Context, ev audit.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.At,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, Exchange, RoutingKey(ev), false, false, pub); err != nil {
		p.closeLocked()
		return errors.Wrap(err, "amqp publish")
	}
	return nil
}

// RoutingKey is "<entity>.<action>", e.g. "appointment.appointment_created".
func RoutingKey(ev audit.Event) string {
	if ev.Entity == "" {
		return ev.Action
	}
	return ev.Entity + "." + ev.Action
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
	return nil
}

func (p *Publisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
