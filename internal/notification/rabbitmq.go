package notification

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher publishes JSON documents to a durable topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         b,
	})
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

type jsonPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// BrokerNotifier hands messages to a mail worker through the exchange,
// routed by event name.
type BrokerNotifier struct {
	publisher jsonPublisher
}

func NewBrokerNotifier(publisher jsonPublisher) *BrokerNotifier {
	return &BrokerNotifier{publisher: publisher}
}

func (n *BrokerNotifier) Notify(ctx context.Context, msg Message) error {
	if err := n.publisher.PublishJSON(ctx, msg.Event, msg); err != nil {
		return fmt.Errorf("publish %s: %w", msg.Event, err)
	}
	return nil
}
