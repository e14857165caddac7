package models_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Charanos/andishi-mvp-sub001/models"
)

func TestTransition_LegalMoves(t *testing.T) {
	legal := []struct{ from, to string }{
		{models.StatusPending, models.StatusInProgress},
		{models.StatusPending, models.StatusRejected},
		{models.StatusPending, models.StatusReviewed},
		{models.StatusReviewed, models.StatusInProgress},
		{models.StatusReviewed, models.StatusRejected},
		{models.StatusApproved, models.StatusInProgress},
		{models.StatusInProgress, models.StatusCompleted},
		{models.StatusInProgress, models.StatusOnHold},
		{models.StatusInProgress, models.StatusCancelled},
		{models.StatusOnHold, models.StatusInProgress},
		{models.StatusOnHold, models.StatusCancelled},
	}
	for _, tc := range legal {
		if err := models.Transition(tc.from, tc.to); err != nil {
			t.Errorf("expected %s -> %s to be legal, got: %v", tc.from, tc.to, err)
		}
	}
}

func TestTransition_IllegalMoves(t *testing.T) {
	illegal := []struct{ from, to string }{
		{models.StatusCompleted, models.StatusInProgress},
		{models.StatusCancelled, models.StatusInProgress},
		{models.StatusRejected, models.StatusInProgress},
		{models.StatusPending, models.StatusOnHold},
		{models.StatusPending, models.StatusCompleted},
		{models.StatusOnHold, models.StatusCompleted},
		{models.StatusReviewed, models.StatusOnHold},
	}
	for _, tc := range illegal {
		err := models.Transition(tc.from, tc.to)
		if !errors.Is(err, models.ErrInvalidTransition) {
			t.Errorf("expected %s -> %s to fail with ErrInvalidTransition, got: %v", tc.from, tc.to, err)
		}
	}
}

func TestTransition_UnknownStatus(t *testing.T) {
	err := models.Transition(models.StatusPending, "archived")
	var vErr *models.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for unknown target status, got: %v", err)
	}
}

func TestApplyProgress_CompletesAtHundred(t *testing.T) {
	now := time.Now()
	p := &models.Project{Status: models.StatusInProgress, Progress: 80}

	if err := p.ApplyProgress(100, now); err != nil {
		t.Fatalf("ApplyProgress(100) failed: %v", err)
	}
	if p.Status != models.StatusCompleted {
		t.Errorf("expected status completed, got %s", p.Status)
	}
	if p.ActualCompletionDate == nil {
		t.Error("expected actualCompletionDate to be set")
	}
	if p.Progress != 100 {
		t.Errorf("expected progress 100, got %d", p.Progress)
	}
}

func TestApplyProgress_KeepsExistingCompletionDate(t *testing.T) {
	earlier := time.Now().Add(-24 * time.Hour)
	p := &models.Project{Status: models.StatusInProgress, Progress: 90, ActualCompletionDate: &earlier}

	if err := p.ApplyProgress(100, time.Now()); err != nil {
		t.Fatalf("ApplyProgress(100) failed: %v", err)
	}
	if !p.ActualCompletionDate.Equal(earlier) {
		t.Error("expected existing actualCompletionDate to be preserved")
	}
}

func TestApplyProgress_OutOfRange(t *testing.T) {
	p := &models.Project{Status: models.StatusInProgress}
	for _, v := range []int{-1, 101} {
		err := p.ApplyProgress(v, time.Now())
		var vErr *models.ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("expected ValidationError for progress %d, got: %v", v, err)
		}
	}
}

func TestApplyProgress_RefusesReopeningCompleted(t *testing.T) {
	p := &models.Project{Status: models.StatusCompleted, Progress: 100}
	if err := p.ApplyProgress(50, time.Now()); !errors.Is(err, models.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got: %v", err)
	}
	if p.Progress != 100 {
		t.Errorf("progress should be unchanged, got %d", p.Progress)
	}
}

func TestApplyStatus_InProgressStampsStartDate(t *testing.T) {
	p := &models.Project{Status: models.StatusPending}
	if err := p.ApplyStatus(models.StatusInProgress, time.Now()); err != nil {
		t.Fatalf("ApplyStatus failed: %v", err)
	}
	if p.StartDate == nil {
		t.Error("expected startDate to be set on entering in-progress")
	}
}

func TestApplyStatus_CompletedForcesProgress(t *testing.T) {
	p := &models.Project{Status: models.StatusInProgress, Progress: 70}
	if err := p.ApplyStatus(models.StatusCompleted, time.Now()); err != nil {
		t.Fatalf("ApplyStatus failed: %v", err)
	}
	if p.Progress != 100 {
		t.Errorf("expected progress forced to 100, got %d", p.Progress)
	}
	if p.ActualCompletionDate == nil {
		t.Error("expected actualCompletionDate to be set")
	}
}

func TestApplyStatus_IllegalLeavesProjectUnchanged(t *testing.T) {
	p := &models.Project{Status: models.StatusCompleted, Progress: 100}
	err := p.ApplyStatus(models.StatusInProgress, time.Now())
	if !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got: %v", err)
	}
	if p.Status != models.StatusCompleted {
		t.Errorf("status should be unchanged, got %s", p.Status)
	}
}
