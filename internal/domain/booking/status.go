package booking

import (
	"time"

	"github.com/clipperroom/clipperroom-api/internal/httperr"
	"github.com/clipperroom/clipperroom-api/internal/models"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanCancel: only pending or confirmed bookings may be cancelled.
// A completed booking is immutable history.
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

// SetStatus applies a staff transition. Staff may move a booking to any
// enumerated status, except that cancelling completed work stays forbidden.
func SetStatus(b *models.Booking, target Status, now time.Time) error {
	if !ValidStatus(target) {
		return httperr.ErrBusiness("invalid_status")
	}

	if target == StatusCancelled {
		return Cancel(b, now)
	}

	b.Status = string(target)
	if target == StatusCompleted {
		b.CompletedAt = &now
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
