package booking

import (
	"context"
	"time"

	"github.com/clipperroom/clipperroom-api/internal/models"
)

type ListFilter struct {
	BarberID uint
	Date     string
	Status   string
	UserID   *uint
}

type Repository interface {
	// -------- Barber / services --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetServices(
		ctx context.Context,
		ids []uint,
	) ([]models.Service, error)

	// -------- Availability --------
	ListBookedRanges(
		ctx context.Context,
		barberID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]Range, error)

	// -------- Booking (create / conflict) --------

	// CreateBookingIfFree re-checks the requested range against the
	// current non-cancelled bookings inside a locking transaction and
	// creates the booking only when it is still free. Returns the
	// "slot_taken" business error otherwise.
	CreateBookingIfFree(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change / read) --------
	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookings(
		ctx context.Context,
		f ListFilter,
	) ([]models.Booking, error)
}
