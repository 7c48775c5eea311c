package handlers

import (
	"context"

	"github.com/polkiloo/checkin/internal/domain/model"
)

// ReportFacade exposes the stored batch report.
type ReportFacade interface {
	LatestReport(ctx context.Context) (*model.BatchReport, string, error)
}

// RunFacade starts batches on demand.
type RunFacade interface {
	TriggerRun() error
	Running() bool
}

// StatusFacade aggregates the operations used by the status API.
type StatusFacade interface {
	ReportFacade
	RunFacade
}
