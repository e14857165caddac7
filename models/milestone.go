package models

import (
	"strings"
	"time"
)

type Milestone struct {
	ID              string     `bson:"id" json:"id"`
	Title           string     `bson:"title" json:"title"`
	Description     string     `bson:"description" json:"description"`
	Budget          string     `bson:"budget" json:"budget"`
	Timeline        string     `bson:"timeline" json:"timeline"`
	Status          string     `bson:"status" json:"status"`
	DueDate         *time.Time `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	CompletedAt     *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Order           int        `bson:"order" json:"order"`
	Deliverables    []string   `bson:"deliverables" json:"deliverables"`
	SubmittedBy     string     `bson:"submittedBy" json:"submittedBy"`
	ApprovedBy      string     `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	RejectedBy      string     `bson:"rejectedBy,omitempty" json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time `bson:"rejectedAt,omitempty" json:"rejectedAt,omitempty"`
	RejectionReason string     `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
}

const (
	SubmittedByClient = "client"
	SubmittedByAdmin  = "admin"
)

const (
	MilestonePending    = "pending"
	MilestoneApproved   = "approved"
	MilestoneRejected   = "rejected"
	MilestoneInProgress = "in-progress"
	MilestoneCompleted  = "completed"
	MilestoneCancelled  = "cancelled"
)

// Approve stamps an admin approval. Only client-submitted milestones that
// are still pending sit in the approval queue; admin-originated ones are
// pre-approved and never pass through here.
func (m *Milestone) Approve(admin string, now time.Time) error {
	if m.Status != MilestonePending || m.SubmittedBy != SubmittedByClient {
		return ErrInvalidState
	}
	m.Status = MilestoneApproved
	m.ApprovedBy = admin
	t := now
	m.ApprovedAt = &t
	return nil
}

// Reject requires a non-empty reason and stamps the rejecting admin.
func (m *Milestone) Reject(admin, reason string, now time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return NewValidationError("reason", "rejection reason is required")
	}
	if m.Status != MilestonePending || m.SubmittedBy != SubmittedByClient {
		return ErrInvalidState
	}
	m.Status = MilestoneRejected
	m.RejectedBy = admin
	t := now
	m.RejectedAt = &t
	m.RejectionReason = reason
	return nil
}

// ToggleProgress flips a milestone between in-progress and completed.
// An in-progress milestone completes and gets its completion stamp; any
// other workable milestone moves into in-progress. Terminal milestones
// stay put.
func (m *Milestone) ToggleProgress(now time.Time) error {
	switch m.Status {
	case MilestoneInProgress:
		m.Status = MilestoneCompleted
		t := now
		m.CompletedAt = &t
	case MilestonePending, MilestoneApproved:
		m.Status = MilestoneInProgress
	default:
		return ErrInvalidState
	}
	return nil
}

// Cancel is the milestone "delete": a soft transition that keeps the item
// around for audit history.
func (m *Milestone) Cancel() error {
	if m.Status == MilestoneCompleted || m.Status == MilestoneCancelled {
		return ErrInvalidState
	}
	m.Status = MilestoneCancelled
	return nil
}
