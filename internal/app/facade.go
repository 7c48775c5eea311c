package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	domainErrors "github.com/polkiloo/checkin/internal/domain/errors"
	"github.com/polkiloo/checkin/internal/domain/model"
	"github.com/polkiloo/checkin/internal/domain/repository"
	"github.com/polkiloo/checkin/internal/report"
)

// BatchRunner executes the check-in flow over all accounts.
type BatchRunner interface {
	Run(ctx context.Context, accounts []model.Account) *model.BatchReport
}

// Publisher delivers the rendered summary. Failures are handled inside.
type Publisher interface {
	Publish(ctx context.Context, title, body string) int
}

// CheckInFacade runs batches and distributes their summaries.
type CheckInFacade struct {
	batch     BatchRunner
	accounts  []model.Account
	reports   repository.ReportRepository
	publisher Publisher
	out       io.Writer
	logger    *slog.Logger
}

func NewCheckInFacade(batch BatchRunner, accounts []model.Account, reports repository.ReportRepository, publisher Publisher, out io.Writer, logger *slog.Logger) *CheckInFacade {
	if out == nil {
		out = io.Discard
	}
	return &CheckInFacade{
		batch:     batch,
		accounts:  accounts,
		reports:   reports,
		publisher: publisher,
		out:       out,
		logger:    logger,
	}
}

// RunBatch processes every account, prints and stores the summary and then
// publishes it. Storage and delivery problems never fail the run.
func (f *CheckInFacade) RunBatch(ctx context.Context) (*model.BatchReport, error) {
	if len(f.accounts) == 0 {
		return nil, fmt.Errorf("run batch: %w", domainErrors.ErrNoAccounts)
	}
	f.logger.Info("check-in run started", slog.Int("accounts", len(f.accounts)))

	result := f.batch.Run(ctx, f.accounts)
	text := report.Render(result)
	fmt.Fprintln(f.out, text)

	if err := f.reports.SaveLatest(context.WithoutCancel(ctx), result, text); err != nil {
		f.logger.Warn("store report failed", slog.Any("error", err))
	}

	delivered := f.publisher.Publish(context.WithoutCancel(ctx), report.Title, text)
	f.logger.Info("check-in run completed",
		slog.String("run_id", result.RunID),
		slog.Int("points_succeeded", result.Totals.PointsSucceeded),
		slog.Int("coins_succeeded", result.Totals.CoinsSucceeded),
		slog.Any("failed_accounts", result.Totals.FailedAccounts),
		slog.Int("notifications", delivered),
	)
	return result, nil
}

// LatestReport returns the most recent stored report.
func (f *CheckInFacade) LatestReport(ctx context.Context) (*model.BatchReport, string, error) {
	return f.reports.Latest(ctx)
}
