package app

import (
	"context"

	domainErrors "github.com/polkiloo/checkin/internal/domain/errors"
	"github.com/polkiloo/checkin/internal/domain/model"
)

// RunTrigger starts batches outside the schedule.
type RunTrigger interface {
	Trigger() error
	Running() bool
}

// StatusService backs the status API.
type StatusService struct {
	facade  *CheckInFacade
	trigger RunTrigger
}

func NewStatusService(facade *CheckInFacade, trigger RunTrigger) *StatusService {
	return &StatusService{facade: facade, trigger: trigger}
}

func (s *StatusService) LatestReport(ctx context.Context) (*model.BatchReport, string, error) {
	return s.facade.LatestReport(ctx)
}

// TriggerRun fails with ErrRunInProgress when a batch is already running.
func (s *StatusService) TriggerRun() error {
	if s.trigger == nil {
		return domainErrors.ErrRunInProgress
	}
	return s.trigger.Trigger()
}

func (s *StatusService) Running() bool {
	return s.trigger != nil && s.trigger.Running()
}
