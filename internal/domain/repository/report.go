package repository

import (
	"context"

	"github.com/polkiloo/checkin/internal/domain/model"
)

// ReportRepository keeps the most recent batch report of a running process.
type ReportRepository interface {
	SaveLatest(ctx context.Context, report *model.BatchReport, rendered string) error
	Latest(ctx context.Context) (*model.BatchReport, string, error)
}
