package memory

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/checkin/internal/domain/errors"
	"github.com/polkiloo/checkin/internal/domain/model"
)

func TestLatestBeforeFirstSave(t *testing.T) {
	if _, _, err := New().Latest(context.Background()); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveLatestReplacesReport(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.SaveLatest(ctx, &model.BatchReport{RunID: "first"}, "one"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveLatest(ctx, &model.BatchReport{RunID: "second"}, "two"); err != nil {
		t.Fatalf("save: %v", err)
	}

	report, rendered, err := s.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if report.RunID != "second" || rendered != "two" {
		t.Fatalf("unexpected latest report %q %q", report.RunID, rendered)
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New()
	if err := s.SaveLatest(ctx, &model.BatchReport{}, ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, _, err := s.Latest(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
