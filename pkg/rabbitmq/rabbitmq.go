// Package rabbitmq publishes order lifecycle events to a RabbitMQ
// queue so downstream consumers (fulfilment, analytics) can react to
// checkouts.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/streadway/amqp"

	"github.com/hfdstore/storefront/internal/models"
)

const orderQueue = "order_events"

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewClient connects to RabbitMQ, opens a channel and declares the
// durable order-events queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		orderQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare %s: %w", orderQueue, err)
	}
	return &Client{conn: conn, channel: ch}, nil
}

// OrderCreated publishes an order-created event as persistent JSON.
func (c *Client) OrderCreated(_ context.Context, o models.Order) error {
	body, err := json.Marshal(map[string]any{
		"event": "order.created",
		"order": o,
	})
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}
	err = c.channel.Publish(
		"",         // default exchange
		orderQueue, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}

// Close releases the channel and connection.
func (c *Client) Close() {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
