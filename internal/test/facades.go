package test

import (
	"context"
	"sync"

	"github.com/polkiloo/checkin/internal/domain/model"
)

// CheckInFacadeStub records batch runs requested by workers and handlers.
type CheckInFacadeStub struct {
	RunFn func(context.Context) (*model.BatchReport, error)

	mu    sync.Mutex
	calls int
}

// RunBatch counts the call and delegates to RunFn when set.
func (s *CheckInFacadeStub) RunBatch(ctx context.Context) (*model.BatchReport, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.RunFn != nil {
		return s.RunFn(ctx)
	}
	return &model.BatchReport{RunID: "stub"}, nil
}

// Calls returns the number of RunBatch invocations.
func (s *CheckInFacadeStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// StatusFacadeStub serves canned answers to the status API.
type StatusFacadeStub struct {
	Report    *model.BatchReport
	Text      string
	LatestErr error
	TriggerFn func() error
	Busy      bool
}

// LatestReport returns the canned report.
func (s *StatusFacadeStub) LatestReport(context.Context) (*model.BatchReport, string, error) {
	return s.Report, s.Text, s.LatestErr
}

// TriggerRun delegates to TriggerFn when set.
func (s *StatusFacadeStub) TriggerRun() error {
	if s.TriggerFn != nil {
		return s.TriggerFn()
	}
	return nil
}

// Running returns the canned busy flag.
func (s *StatusFacadeStub) Running() bool {
	return s.Busy
}

// TokenVerifierStub accepts exactly one token when enabled.
type TokenVerifierStub struct {
	Token string
}

// Enabled reports whether a token is configured.
func (s TokenVerifierStub) Enabled() bool { return s.Token != "" }

// Verify compares against the configured token.
func (s TokenVerifierStub) Verify(token string) bool { return token == s.Token }
