package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MirrorSyncQueue holds pending mirror reconciliation tasks. The admin
// verification action enqueues here when the mirror update fails; the
// reconciler drains it out-of-band.
const MirrorSyncQueue = "mirror-sync"

// MirrorSyncTask asks the reconciler to re-apply role/verified metadata to
// the external identity provider for one principal.
type MirrorSyncTask struct {
	PrincipalID string `json:"principal_id"`
	Role        string `json:"role"`
	Verified    bool   `json:"verified"`
}

// Publisher enqueues reconciliation tasks.
type Publisher interface {
	PublishMirrorSync(ctx context.Context, task MirrorSyncTask) error
}

// RabbitMQ is an AMQP-backed task queue.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

var _ Publisher = (*RabbitMQ)(nil)

// Dial connects to RabbitMQ and opens a channel.
func Dial(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &RabbitMQ{conn: conn, channel: ch}, nil
}

// Close tears down the channel and connection.
func (q *RabbitMQ) Close() {
	if q.channel != nil {
		_ = q.channel.Close()
	}
	if q.conn != nil {
		_ = q.conn.Close()
	}
}

func (q *RabbitMQ) declare(name string) (amqp.Queue, error) {
	return q.channel.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
}

// PublishMirrorSync enqueues a reconciliation task as a persistent message.
func (q *RabbitMQ) PublishMirrorSync(ctx context.Context, task MirrorSyncTask) error {
	queue, err := q.declare(MirrorSyncQueue)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", MirrorSyncQueue, err)
	}

	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	err = q.channel.PublishWithContext(ctx,
		"",         // default exchange
		queue.Name, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", MirrorSyncQueue, err)
	}
	return nil
}

// ConsumeMirrorSync delivers queued tasks to handler until ctx is done.
// A handler error leaves the message unacked for redelivery.
func (q *RabbitMQ) ConsumeMirrorSync(ctx context.Context, handler func(ctx context.Context, task MirrorSyncTask) error) error {
	queue, err := q.declare(MirrorSyncQueue)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", MirrorSyncQueue, err)
	}

	deliveries, err := q.channel.Consume(
		queue.Name,
		"",    // consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", MirrorSyncQueue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("consume %s: channel closed", MirrorSyncQueue)
			}
			var task MirrorSyncTask
			if err := json.Unmarshal(delivery.Body, &task); err != nil {
				_ = delivery.Reject(false) // malformed, drop
				continue
			}
			if err := handler(ctx, task); err != nil {
				_ = delivery.Nack(false, true)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}
