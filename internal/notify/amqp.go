package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Message is the payload published to message brokers.
type Message struct {
	Title   string    `json:"title"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

func encodeMessage(title, body string) ([]byte, error) {
	return json.Marshal(Message{Title: title, Content: body, SentAt: time.Now().UTC()})
}

// AMQP publishes summaries to a topic exchange. A connection is opened per
// message since summaries are sent at most a few times a day.
type AMQP struct {
	url        string
	exchange   string
	routingKey string
}

// NewAMQP validates the broker URL.
func NewAMQP(rawURL, exchange, routingKey string) (*AMQP, error) {
	clean, err := sanitizeAMQPURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &AMQP{url: clean, exchange: exchange, routingKey: routingKey}, nil
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", fmt.Errorf("amqp url: %w", err)
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("amqp url: scheme must be amqp:// or amqps://")
	}
	return clean, nil
}

func (a *AMQP) Name() string { return "amqp" }

func (a *AMQP) Publish(ctx context.Context, title, body string) error {
	payload, err := encodeMessage(title, body)
	if err != nil {
		return err
	}

	conn, err := amqp.DialConfig(a.url, amqp.Config{Dial: amqp.DefaultDial(DefaultTimeout)})
	if err != nil {
		return fmt.Errorf("amqp: dial: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp: channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(a.exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("amqp: declare exchange: %w", err)
	}

	err = ch.PublishWithContext(ctx, a.exchange, a.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         payload,
	})
	if err != nil {
		return fmt.Errorf("amqp: publish: %w", err)
	}
	return nil
}
