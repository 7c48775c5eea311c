package usecase

import (
	"context"
	"math/rand/v2"
	"time"
)

// DelayProvider supplies the courtesy pauses between requests and accounts.
type DelayProvider interface {
	StepDelay() time.Duration
	AccountDelay() time.Duration
}

// RandomDelays draws pauses uniformly from the configured ranges.
// Account pauses are whole seconds.
type RandomDelays struct {
	StepMin    time.Duration
	StepMax    time.Duration
	AccountMin time.Duration
	AccountMax time.Duration
}

func (d RandomDelays) StepDelay() time.Duration {
	if d.StepMax <= d.StepMin {
		return d.StepMin
	}
	return d.StepMin + rand.N(d.StepMax-d.StepMin+1)
}

func (d RandomDelays) AccountDelay() time.Duration {
	lo, hi := d.AccountMin/time.Second, d.AccountMax/time.Second
	if hi <= lo {
		return lo * time.Second
	}
	return (lo + rand.N(hi-lo+1)) * time.Second
}

// NoDelays disables pacing.
type NoDelays struct{}

func (NoDelays) StepDelay() time.Duration    { return 0 }
func (NoDelays) AccountDelay() time.Duration { return 0 }

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
