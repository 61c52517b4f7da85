package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const payoutQueueName = "payout.settled"

// PublishPayoutSettled publishes a PayoutSettledEvent to the durable
// payout.settled queue. An empty url disables publishing. Errors are logged
// and returned so callers can ignore them without breaking settlement,
// which has already committed by the time this runs.
func PublishPayoutSettled(ctx context.Context, url string, event PayoutSettledEvent) error {
	if url == "" {
		return nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("[broker] dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("[broker] channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so settlements survive broker restarts.
	if _, err := ch.QueueDeclare(payoutQueueName, true, false, false, false, nil); err != nil {
		log.Printf("[broker] queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("[broker] marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", payoutQueueName, false, false, pub); err != nil {
		log.Printf("[broker] publish failed: %v", err)
		return err
	}
	return nil
}
