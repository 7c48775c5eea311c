package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	domainErrors "github.com/polkiloo/checkin/internal/domain/errors"
	"github.com/polkiloo/checkin/internal/domain/model"
)

// CheckInFacade exposes the subset of application functionality required by the worker.
type CheckInFacade interface {
	RunBatch(ctx context.Context) (*model.BatchReport, error)
}

// Scheduler runs one check-in batch per cron tick. Runs never overlap: a tick
// arriving while a batch is in progress is skipped.
type Scheduler struct {
	facade   CheckInFacade
	spec     string
	cron     *cron.Cron
	logger   *slog.Logger
	running  atomic.Bool
	wg       sync.WaitGroup
	mu       sync.Mutex
	runCtx   context.Context
	cancel   context.CancelFunc
	entry    cron.EntryID
	location *time.Location
}

// NewScheduler validates the cron spec and constructs the scheduler.
func NewScheduler(facade CheckInFacade, spec string, location *time.Location, logger *slog.Logger) (*Scheduler, error) {
	if location == nil {
		location = time.Local
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(
		cron.WithLocation(location),
		cron.WithChain(cron.Recover(cronLogger)),
	)

	return &Scheduler{
		facade:   facade,
		spec:     spec,
		cron:     c,
		logger:   logger,
		location: location,
	}, nil
}

// Start registers the batch job and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runCtx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	id, err := s.cron.AddFunc(s.spec, s.tick)
	if err != nil {
		s.cancel()
		return fmt.Errorf("schedule check-in job: %w", err)
	}
	s.entry = id
	s.cron.Start()
	s.logger.Info("scheduled check-in job",
		slog.String("schedule", s.spec),
		slog.String("timezone", s.location.String()),
		slog.Time("next", s.cron.Entry(id).Next),
	)
	return nil
}

// Trigger starts a batch immediately in the background.
func (s *Scheduler) Trigger() error {
	if !s.running.CompareAndSwap(false, true) {
		return domainErrors.ErrRunInProgress
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("check-in run panicked", slog.Any("panic", r))
			}
		}()
		s.execute("manual")
	}()
	return nil
}

// Running reports whether a batch is in progress.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// Stop halts the cron loop and waits for an in-flight batch to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.wg.Wait()
}

func (s *Scheduler) tick() {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("previous check-in run still in progress, skipping tick")
		return
	}
	s.wg.Add(1)
	defer s.wg.Done()
	s.execute("schedule")
}

// execute expects the running flag to be held by the caller.
func (s *Scheduler) execute(trigger string) {
	defer s.running.Store(false)

	ctx := s.context()
	started := time.Now()
	report, err := s.facade.RunBatch(ctx)
	if err != nil {
		s.logger.Error("check-in run failed", slog.String("trigger", trigger), slog.Any("error", err))
		return
	}
	s.logger.Info("check-in run finished",
		slog.String("trigger", trigger),
		slog.String("run_id", report.RunID),
		slog.Int("failed_accounts", len(report.Totals.FailedAccounts)),
		slog.Duration("elapsed", time.Since(started)),
	)
}

func (s *Scheduler) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.runCtx == nil {
		return context.Background()
	}
	return s.runCtx
}
