package models_test

import (
	"testing"
	"time"

	"github.com/Charanos/andishi-mvp-sub001/models"
)

func TestTotalBudget_Fixed(t *testing.T) {
	p := &models.Project{Pricing: models.Pricing{Type: models.PricingFixed, FixedBudget: "5000"}}
	if got := models.TotalBudget(p); got != 5000 {
		t.Errorf("expected 5000, got %v", got)
	}
}

func TestTotalBudget_MilestoneSum(t *testing.T) {
	p := &models.Project{
		Pricing: models.Pricing{Type: models.PricingMilestone},
		Milestones: []models.Milestone{
			{Budget: "1000"},
			{Budget: "2500"},
		},
	}
	if got := models.TotalBudget(p); got != 3500 {
		t.Errorf("expected 3500, got %v", got)
	}
}

func TestTotalBudget_Hourly(t *testing.T) {
	p := &models.Project{Pricing: models.Pricing{Type: models.PricingHourly, HourlyRate: "50", EstimatedHours: "80"}}
	if got := models.TotalBudget(p); got != 4000 {
		t.Errorf("expected 4000, got %v", got)
	}
}

func TestSpentBudget_CountsOnlyApprovedAndPaid(t *testing.T) {
	p := &models.Project{
		Payments: []models.Payment{
			{Amount: 2000, Status: models.PaymentApproved},
			{Amount: 300, Status: models.PaymentPaid},
			{Amount: 9999, Status: models.PaymentPending},
			{Amount: 500, Status: models.PaymentRejected},
		},
	}
	if got := models.SpentBudget(p); got != 2300 {
		t.Errorf("expected 2300, got %v", got)
	}
}

func TestBudgetProgress(t *testing.T) {
	p := &models.Project{
		Pricing:  models.Pricing{Type: models.PricingFixed, FixedBudget: "5000"},
		Payments: []models.Payment{{Amount: 2000, Status: models.PaymentApproved}},
	}
	if got := models.BudgetProgress(p); got != 40 {
		t.Errorf("expected 40, got %v", got)
	}
}

func TestBudgetProgress_ZeroBudget(t *testing.T) {
	p := &models.Project{Payments: []models.Payment{{Amount: 100, Status: models.PaymentPaid}}}
	if got := models.BudgetProgress(p); got != 0 {
		t.Errorf("expected 0 for zero total budget, got %v", got)
	}
}

func TestMilestoneProgress_NoMilestones(t *testing.T) {
	p := &models.Project{}
	if got := models.MilestoneProgress(p); got != 0 {
		t.Errorf("expected 0 for zero milestones, got %v", got)
	}
}

func TestMilestoneProgress(t *testing.T) {
	p := &models.Project{
		Milestones: []models.Milestone{
			{Status: models.MilestoneCompleted},
			{Status: models.MilestoneInProgress},
			{Status: models.MilestoneCompleted},
			{Status: models.MilestonePending},
		},
	}
	if got := models.MilestoneProgress(p); got != 50 {
		t.Errorf("expected 50, got %v", got)
	}
}

func TestRecentActivity_MergesAndTruncates(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	done := base.Add(5 * time.Hour)
	p := &models.Project{
		Updates: []models.ProjectUpdate{
			{ID: "u1", Title: "First", CreatedAt: base.Add(1 * time.Hour)},
			{ID: "u2", Title: "Second", CreatedAt: base.Add(2 * time.Hour)},
			{ID: "u3", Title: "Third", CreatedAt: base.Add(3 * time.Hour)},
			{ID: "u4", Title: "Fourth", CreatedAt: base.Add(4 * time.Hour)},
			{ID: "u5", Title: "Fifth", CreatedAt: base.Add(6 * time.Hour)},
		},
		Milestones: []models.Milestone{
			{ID: "m1", Title: "Shipped", Status: models.MilestoneCompleted, CompletedAt: &done},
			{ID: "m2", Title: "Not done", Status: models.MilestoneInProgress},
		},
	}

	activity := models.RecentActivity(p)
	if len(activity) != 5 {
		t.Fatalf("expected activity truncated to 5, got %d", len(activity))
	}
	if activity[0].ID != "u5" {
		t.Errorf("expected newest item first, got %s", activity[0].ID)
	}
	if activity[1].ID != "m1" || activity[1].ActivityType != "milestone_completed" {
		t.Errorf("expected completed milestone merged at position 1, got %s/%s", activity[1].ID, activity[1].ActivityType)
	}
	for _, item := range activity {
		if item.ID == "m2" {
			t.Error("milestone without completedAt must not appear in activity")
		}
	}
}

func TestBuildReport(t *testing.T) {
	p := &models.Project{
		Pricing: models.Pricing{Type: models.PricingFixed, FixedBudget: "5000"},
		Payments: []models.Payment{
			{Amount: 2000, Status: models.PaymentApproved},
		},
		Milestones: []models.Milestone{
			{Status: models.MilestoneCompleted},
			{Status: models.MilestonePending},
		},
	}
	report := models.BuildReport(p)
	if report.TotalBudget != 5000 || report.SpentBudget != 2000 || report.BudgetProgress != 40 {
		t.Errorf("unexpected budget figures: %+v", report)
	}
	if report.TotalMilestones != 2 || report.CompletedMilestones != 1 || report.MilestoneProgress != 50 {
		t.Errorf("unexpected milestone figures: %+v", report)
	}
}
