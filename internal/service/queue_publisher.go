// Package queue_publisher provides functions to publish watchlist activity
// events to RabbitMQ. Errors are logged and returned so callers can ignore
// failures without interrupting the main request flow.
package queue_publisher

import (
    "context"
    "encoding/json"
    "log"
    "os"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/VarunKarthikB-18/movie-watchlist/internal/queue"
)

const activityQueueName = "watchlist.activity"

// BrokerConfigured reports whether a RabbitMQ URL is present in the
// environment. When it is not, publishing is skipped entirely and the
// service runs without an activity trail.
func BrokerConfigured() bool {
    return brokerURL() != ""
}

func brokerURL() string {
    if url := os.Getenv("RABBITMQ_URL"); url != "" {
        return url
    }
    return os.Getenv("AMQP_URL")
}

// PublishActivity publishes an ActivityEvent to the watchlist.activity
// queue. The function never panics; any error is logged and returned so
// the calling handler can ignore it. Messages are marked persistent so the
// audit trail survives broker restarts.
func PublishActivity(ctx context.Context, event q.ActivityEvent) error {
    url := brokerURL()
    if url == "" {
        return nil // broker not configured, nothing to do
    }
    conn, err := amqp.Dial(url)
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

    // Ensure the queue exists (idempotent). Durable so messages survive
    // broker restarts.
    if _, err := ch.QueueDeclare(
        activityQueueName, // name
        true,              // durable
        false,             // autoDelete
        false,             // exclusive
        false,             // noWait
        nil,               // args
    ); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
    defer cancel()

    if err := ch.PublishWithContext(pubCtx,
        "",                // default exchange
        activityQueueName, // routing key = queue name
        false,             // mandatory
        false,             // immediate
        amqp.Publishing{
            ContentType:  "application/json",
            DeliveryMode: amqp.Persistent,
            Timestamp:    time.Now().UTC(),
            Body:         body,
        },
    ); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}
