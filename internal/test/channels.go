package test

import (
	"context"
	"sync"
)

// Publication records one Publish invocation.
type Publication struct {
	Title string
	Body  string
}

// ChannelStub is a notification channel recording what it was asked to send.
type ChannelStub struct {
	NameVal   string
	PublishFn func(context.Context, string, string) error

	mu   sync.Mutex
	Sent []Publication
}

// Name returns configured channel name.
func (c *ChannelStub) Name() string {
	if c.NameVal != "" {
		return c.NameVal
	}
	return "stub"
}

// Publish records the message and runs the override when present.
func (c *ChannelStub) Publish(ctx context.Context, title, body string) error {
	c.mu.Lock()
	c.Sent = append(c.Sent, Publication{Title: title, Body: body})
	c.mu.Unlock()
	if c.PublishFn != nil {
		return c.PublishFn(ctx, title, body)
	}
	return nil
}

// Count returns the number of recorded publications.
func (c *ChannelStub) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Sent)
}
