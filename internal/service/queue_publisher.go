// Package queue_publisher provides functions to publish domain events to RabbitMQ.
// Errors are logged and returned to allow callers to ignore failures without
// interrupting the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/Max1335/property-insights-hub/internal/queue"
)

// PublishListingViewed publishes a ListingViewedEvent to the
// listing.viewed queue. The function never panics; errors are logged
// and returned so the request path can ignore them.
func PublishListingViewed(ctx context.Context, event q.ListingViewedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal viewed event failed: %v", err)
		return err
	}
	return publish(ctx, q.ListingViewedQueue, body)
}

// PublishPriceChanged publishes a PriceChangedEvent to the
// listing.price_changed queue.
func PublishPriceChanged(ctx context.Context, event q.PriceChangedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal price event failed: %v", err)
		return err
	}
	return publish(ctx, q.PriceChangedQueue, body)
}

// publish dials the broker, declares the durable queue (idempotent)
// and sends one persistent message on the default exchange.
func publish(ctx context.Context, queueName string, body []byte) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
