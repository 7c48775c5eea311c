package test

import (
	"context"
	"sync"

	domainErrors "github.com/polkiloo/checkin/internal/domain/errors"
	"github.com/polkiloo/checkin/internal/domain/model"
)

// SessionStub scripts a platform session for use case tests.
type SessionStub struct {
	PlatformVal model.Platform

	// Readings are returned by successive Balance calls; a nil entry fails the call.
	Readings  []*model.BalanceReading
	BalanceFn func(context.Context) (*model.BalanceReading, error)
	CheckInFn func(context.Context) (*model.CheckInResponse, error)
	ClaimFn   func(context.Context, model.BonusKind) (*model.BonusClaim, error)

	mu       sync.Mutex
	balances int
	Calls    []string
	Claims   []model.BonusKind
}

func (s *SessionStub) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, call)
}

// Platform returns the configured platform, points by default.
func (s *SessionStub) Platform() model.Platform {
	if s.PlatformVal == "" {
		return model.PlatformPoints
	}
	return s.PlatformVal
}

// Balance returns scripted readings in order.
func (s *SessionStub) Balance(ctx context.Context) (*model.BalanceReading, error) {
	s.record("balance")
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.balances >= len(s.Readings) {
		return nil, domainErrors.ErrMalformedResponse
	}
	r := s.Readings[s.balances]
	s.balances++
	if r == nil {
		return nil, domainErrors.ErrMalformedResponse
	}
	copied := *r
	return &copied, nil
}

// CheckIn returns the scripted reply or a successful check-in with reward 1.
func (s *SessionStub) CheckIn(ctx context.Context) (*model.CheckInResponse, error) {
	s.record("checkin")
	if s.CheckInFn != nil {
		return s.CheckInFn(ctx)
	}
	reward := int64(1)
	return &model.CheckInResponse{Success: true, Reward: &reward}, nil
}

// ClaimBonus delegates to ClaimFn; without it no bonus is supported.
func (s *SessionStub) ClaimBonus(ctx context.Context, kind model.BonusKind) (*model.BonusClaim, error) {
	s.record("claim:" + string(kind))
	s.mu.Lock()
	s.Claims = append(s.Claims, kind)
	s.mu.Unlock()
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, kind)
	}
	return nil, domainErrors.ErrBonusNotSupported
}

// CallCount returns how many times the named call happened.
func (s *SessionStub) CallCount(call string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.Calls {
		if c == call {
			n++
		}
	}
	return n
}
