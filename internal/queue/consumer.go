// Package queue contains the background consumer that listens to the
// watchlist.activity queue and appends structured lines to
// logs/activity.log.
package queue

import (
    "encoding/json"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

const activityQueueName = "watchlist.activity"

// StartActivityConsumer connects to RabbitMQ, declares the durable
// watchlist.activity queue, and starts consuming messages. Each message is
// appended to logs/activity.log as a single human-readable line. The
// function runs a reconnect loop and never returns under normal operation;
// run it in its own goroutine. Processing errors are logged and the
// offending message rejected so the server keeps operating.
func StartActivityConsumer() {
    url := os.Getenv("RABBITMQ_URL")
    if url == "" {
        url = os.Getenv("AMQP_URL")
    }
    if url == "" {
        return // broker not configured, no consumer to run
    }

    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("activity-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        if err := consumeLoop(conn); err != nil {
            log.Printf("activity-consumer: consume loop ended: %v; reconnecting", err)
            time.Sleep(2 * time.Second)
        }
        _ = conn.Close()
    }
}

func consumeLoop(conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("activity-consumer: set QoS failed: %v", err)
    }

    if _, err := ch.QueueDeclare(activityQueueName, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(activityQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := handleMessage(d.Body); err != nil {
            log.Printf("activity-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false)
            continue
        }
        _ = d.Ack(false)
    }
    return fmt.Errorf("delivery channel closed")
}

// handleMessage decodes one event and appends it to the activity log file.
func handleMessage(body []byte) error {
    var ev ActivityEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("decode event: %w", err)
    }

    if err := os.MkdirAll("logs", 0o755); err != nil {
        return fmt.Errorf("create logs dir: %w", err)
    }
    f, err := os.OpenFile(filepath.Join("logs", "activity.log"),
        os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open activity log: %w", err)
    }
    defer func() { _ = f.Close() }()

    line := fmt.Sprintf("%s kind=%s user=%d movie=%d title=%q\n",
        ev.OccurredAt, ev.Kind, ev.UserID, ev.MovieID, ev.MovieTitle)
    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write activity log: %w", err)
    }
    return nil
}
