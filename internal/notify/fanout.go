package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultTimeout bounds a single channel delivery.
const DefaultTimeout = 15 * time.Second

// Channel delivers a titled text message to one destination.
type Channel interface {
	Name() string
	Publish(ctx context.Context, title, body string) error
}

// Fanout sends every message to all registered channels.
type Fanout struct {
	channels []Channel
	timeout  time.Duration
	logger   *slog.Logger
}

// NewFanout constructs a fanout over the given channels.
func NewFanout(channels []Channel, timeout time.Duration, logger *slog.Logger) *Fanout {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fanout{channels: channels, timeout: timeout, logger: logger}
}

// Channels returns registered channel names.
func (f *Fanout) Channels() []string {
	names := make([]string, 0, len(f.channels))
	for _, ch := range f.channels {
		names = append(names, ch.Name())
	}
	return names
}

// Publish delivers to each channel in turn. Failures are logged and never
// returned; the number of successful deliveries is reported instead.
func (f *Fanout) Publish(ctx context.Context, title, body string) int {
	delivered := 0
	for _, ch := range f.channels {
		if err := f.deliver(ctx, ch, title, body); err != nil {
			f.logger.Warn("notification failed", slog.String("channel", ch.Name()), slog.Any("error", err))
			continue
		}
		f.logger.Info("notification sent", slog.String("channel", ch.Name()))
		delivered++
	}
	return delivered
}

func (f *Fanout) deliver(ctx context.Context, ch Channel, title, body string) (err error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return redact(ch.Publish(ctx, title, body))
}
