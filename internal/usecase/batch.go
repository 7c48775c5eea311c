package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/polkiloo/checkin/internal/domain/model"
)

// AccountRunner processes a single account.
type AccountRunner interface {
	Run(ctx context.Context, account model.Account) model.AccountResult
}

// BatchUseCase runs all accounts sequentially and aggregates their results.
type BatchUseCase struct {
	runner AccountRunner
	delays DelayProvider
	clock  Clock
	logger *slog.Logger
}

// NewBatchUseCase constructs BatchUseCase.
func NewBatchUseCase(runner AccountRunner, delays DelayProvider, clock Clock, logger *slog.Logger) *BatchUseCase {
	if delays == nil {
		delays = NoDelays{}
	}
	return &BatchUseCase{runner: runner, delays: delays, clock: clock, logger: logger}
}

// Run processes accounts in index order and returns one result per account.
// A failing account never stops the batch.
func (u *BatchUseCase) Run(ctx context.Context, accounts []model.Account) *model.BatchReport {
	report := &model.BatchReport{
		RunID:     uuid.NewString(),
		StartedAt: u.clock.Now(),
		Results:   make([]model.AccountResult, 0, len(accounts)),
	}
	log := u.logger.With(slog.String("run_id", report.RunID))
	log.Info("starting check-in batch", slog.Int("accounts", len(accounts)))

	for i, account := range accounts {
		log.Info("processing account", slog.Int("account", account.Index))
		report.Results = append(report.Results, u.runner.Run(ctx, account))

		if i < len(accounts)-1 {
			wait := u.delays.AccountDelay()
			if wait > 0 {
				log.Info("waiting before next account", slog.Duration("wait", wait))
			}
			sleep(ctx, wait)
		}
	}

	report.Totals = Summarize(report.Results)
	report.FinishedAt = u.clock.Now()
	log.Info("check-in batch finished",
		slog.Int("failed", len(report.Totals.FailedAccounts)),
		slog.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)),
	)
	return report
}
