package models

import (
	"strings"
	"time"
)

type Payment struct {
	ID              string     `bson:"id" json:"id"`
	Amount          float64    `bson:"amount" json:"amount"`
	Date            time.Time  `bson:"date" json:"date"`
	Method          string     `bson:"method" json:"method"`
	Currency        string     `bson:"currency" json:"currency"`
	Status          string     `bson:"status" json:"status"`
	Description     string     `bson:"description,omitempty" json:"description,omitempty"`
	Notes           string     `bson:"notes,omitempty" json:"notes,omitempty"`
	SubmittedBy     string     `bson:"submittedBy" json:"submittedBy"`
	InvoiceURL      string     `bson:"invoiceUrl,omitempty" json:"invoiceUrl,omitempty"`
	ApprovedBy      string     `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	RejectedBy      string     `bson:"rejectedBy,omitempty" json:"rejectedBy,omitempty"`
	RejectedAt      *time.Time `bson:"rejectedAt,omitempty" json:"rejectedAt,omitempty"`
	RejectionReason string     `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
}

const (
	PaymentPending  = "pending"
	PaymentApproved = "approved"
	PaymentRejected = "rejected"
	PaymentPaid     = "paid"
	PaymentOverdue  = "overdue"
	PaymentPartial  = "partial"
)

// Approve mirrors the milestone approval queue: only pending,
// client-submitted payments are approvable.
func (p *Payment) Approve(admin string, now time.Time) error {
	if p.Status != PaymentPending || p.SubmittedBy != SubmittedByClient {
		return ErrInvalidState
	}
	p.Status = PaymentApproved
	p.ApprovedBy = admin
	t := now
	p.ApprovedAt = &t
	return nil
}

func (p *Payment) Reject(admin, reason string, now time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return NewValidationError("reason", "rejection reason is required")
	}
	if p.Status != PaymentPending || p.SubmittedBy != SubmittedByClient {
		return ErrInvalidState
	}
	p.Status = PaymentRejected
	p.RejectedBy = admin
	t := now
	p.RejectedAt = &t
	p.RejectionReason = reason
	return nil
}
