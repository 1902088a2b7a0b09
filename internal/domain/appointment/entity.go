package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Stamp sets the status and the timestamp that belongs to it. It returns the
// timestamp column written, or "" when the status has none.
func Stamp(ap *models.Appointment, to Status, now time.Time) string {
	ap.Status = string(to)

	switch to {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
		return "confirmed_at"
	case StatusCompleted:
		ap.CompletedAt = &now
		return "completed_at"
	case StatusCancelled:
		ap.CancelledAt = &now
		return "cancelled_at"
	case StatusNoShow:
		ap.NoShowAt = &now
		return "no_show_at"
	}
	return ""
}

// FirstCompletion reports whether moving from -> to completes the
// appointment for the first time.
func FirstCompletion(from, to Status) bool {
	return to == StatusCompleted && from != StatusCompleted
}

// TransitionGuard is evaluated against the stored status inside the update.
type TransitionGuard func(current Status) error

func LifecycleGuard(to Status) TransitionGuard {
	return func(current Status) error {
		return CanTransition(current, to)
	}
}
