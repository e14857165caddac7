package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectDetails struct {
	Title        string   `bson:"title" json:"title"`
	Description  string   `bson:"description" json:"description"`
	Category     string   `bson:"category" json:"category"`
	Timeline     string   `bson:"timeline" json:"timeline"`
	Priority     string   `bson:"priority" json:"priority"`
	TechStack    []string `bson:"techStack" json:"techStack"`
	Requirements string   `bson:"requirements,omitempty" json:"requirements,omitempty"`
}

type Pricing struct {
	Type           string `bson:"type" json:"type"`
	Currency       string `bson:"currency" json:"currency"`
	FixedBudget    string `bson:"fixedBudget,omitempty" json:"fixedBudget,omitempty"`
	HourlyRate     string `bson:"hourlyRate,omitempty" json:"hourlyRate,omitempty"`
	EstimatedHours string `bson:"estimatedHours,omitempty" json:"estimatedHours,omitempty"`
}

const (
	PricingFixed     = "fixed"
	PricingMilestone = "milestone"
	PricingHourly    = "hourly"

	CurrencyUSD = "USD"
	CurrencyKES = "KES"
)

type Project struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID                primitive.ObjectID `bson:"clientId" json:"clientId"`
	SubmissionID            string             `bson:"submissionId,omitempty" json:"submissionId,omitempty"`
	Status                  string             `bson:"status" json:"status"`
	Progress                int                `bson:"progress" json:"progress"`
	ProjectDetails          ProjectDetails     `bson:"projectDetails" json:"projectDetails"`
	Pricing                 Pricing            `bson:"pricing" json:"pricing"`
	StartDate               *time.Time         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate                 *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	EstimatedCompletionDate *time.Time         `bson:"estimatedCompletionDate,omitempty" json:"estimatedCompletionDate,omitempty"`
	ActualCompletionDate    *time.Time         `bson:"actualCompletionDate,omitempty" json:"actualCompletionDate,omitempty"`
	Milestones              []Milestone        `bson:"milestones" json:"milestones"`
	Payments                []Payment          `bson:"payments" json:"payments"`
	Updates                 []ProjectUpdate    `bson:"updates" json:"updates"`
	Files                   []ProjectFile      `bson:"files" json:"files"`
	CreatedAt               time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt               time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ApplyProgress validates and applies a progress value. Reaching 100 while
// the project is in progress also completes it and stamps the actual
// completion date. Lowering progress on a completed project is refused;
// completed is terminal.
func (p *Project) ApplyProgress(progress int, now time.Time) error {
	if progress < 0 || progress > 100 {
		return NewValidationError("progress", "progress must be between 0 and 100")
	}
	if p.Status == StatusCompleted && progress < 100 {
		return ErrInvalidState
	}
	p.Progress = progress
	p.UpdatedAt = now
	if progress == 100 && p.Status == StatusInProgress {
		p.Status = StatusCompleted
		if p.ActualCompletionDate == nil {
			t := now
			p.ActualCompletionDate = &t
		}
	}
	return nil
}

// ApplyStatus moves the project to a new status after checking the
// transition table. Entering in-progress stamps the start date, entering
// completed forces progress to 100 and stamps the completion date.
func (p *Project) ApplyStatus(newStatus string, now time.Time) error {
	if err := Transition(p.Status, newStatus); err != nil {
		return err
	}
	p.Status = newStatus
	p.UpdatedAt = now
	switch newStatus {
	case StatusInProgress:
		if p.StartDate == nil {
			t := now
			p.StartDate = &t
		}
	case StatusCompleted:
		p.Progress = 100
		if p.ActualCompletionDate == nil {
			t := now
			p.ActualCompletionDate = &t
		}
	}
	return nil
}
