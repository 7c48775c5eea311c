package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NATS publishes summaries to a subject.
type NATS struct {
	url     string
	subject string
}

func NewNATS(url, subject string) *NATS {
	return &NATS{url: url, subject: subject}
}

func (n *NATS) Name() string { return "nats" }

func (n *NATS) Publish(ctx context.Context, title, body string) error {
	payload, err := encodeMessage(title, body)
	if err != nil {
		return err
	}

	opts := []nats.Option{nats.Name("checkin"), nats.NoReconnect()}
	if deadline, ok := ctx.Deadline(); ok {
		opts = append(opts, nats.Timeout(time.Until(deadline)))
	}
	nc, err := nats.Connect(n.url, opts...)
	if err != nil {
		return fmt.Errorf("nats: connect: %w", err)
	}
	defer nc.Close()

	if err := nc.Publish(n.subject, payload); err != nil {
		return fmt.Errorf("nats: publish: %w", err)
	}
	if err := nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("nats: flush: %w", err)
	}
	return nil
}
