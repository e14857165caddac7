package models

import "fmt"

const (
	StatusPending    = "pending"
	StatusReviewed   = "reviewed"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
	StatusInProgress = "in-progress"
	StatusOnHold     = "on_hold"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// statusTransitions is the full lifecycle table for a project. Completed,
// cancelled and rejected are terminal: no further actions available.
var statusTransitions = map[string][]string{
	StatusPending:    {StatusReviewed, StatusApproved, StatusInProgress, StatusRejected},
	StatusReviewed:   {StatusApproved, StatusInProgress, StatusRejected},
	StatusApproved:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusOnHold, StatusCancelled},
	StatusOnHold:     {StatusInProgress, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusRejected:   {},
}

func IsValidStatus(status string) bool {
	_, ok := statusTransitions[status]
	return ok
}

func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition checks the lifecycle table and returns ErrInvalidTransition
// for anything the table does not allow. Every mutating operation calls
// this before touching the database.
func Transition(from, to string) error {
	if !IsValidStatus(to) {
		return NewValidationError("status", fmt.Sprintf("unknown status %q", to))
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
