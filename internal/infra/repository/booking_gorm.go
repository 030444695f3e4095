package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/clipperroom/clipperroom-api/internal/domain/booking"
	"github.com/clipperroom/clipperroom-api/internal/httperr"
	"github.com/clipperroom/clipperroom-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Barber / services
// --------------------------------------------------

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetServices(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListBookedRanges(
	ctx context.Context,
	barberID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]domain.Range, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("scheduled_at", "ends_at").
		Where(
			"barber_id = ? AND status <> 'cancelled' AND scheduled_at >= ? AND scheduled_at < ?",
			barberID, dayStart, dayEnd,
		).
		Order("scheduled_at ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	ranges := make([]domain.Range, 0, len(bookings))
	for _, b := range bookings {
		end := b.EndsAt
		if end.IsZero() || !end.After(b.ScheduledAt) {
			// Legacy rows without a persisted end occupy one slot.
			end = b.ScheduledAt.Add(domain.SlotMinutes * time.Minute)
		}
		ranges = append(ranges, domain.Range{Start: b.ScheduledAt, End: end})
	}

	return ranges, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

// lockOverlapping selects, with row locks, every non-cancelled booking of
// the barber that overlaps [b.ScheduledAt, b.EndsAt). Rows without a
// persisted end are treated as one slot, same as ListBookedRanges.
func lockOverlapping(tx *gorm.DB, b *models.Booking) *gorm.DB {
	return tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			`barber_id = ? AND status <> 'cancelled' AND scheduled_at < ?
             AND (CASE WHEN ends_at > scheduled_at THEN ends_at
                       ELSE scheduled_at + interval '30 minutes' END) > ?`,
			b.BarberID,
			b.EndsAt,
			b.ScheduledAt,
		)
}

func (r *BookingGormRepository) CreateBookingIfFree(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Booking
		if err := lockOverlapping(tx, b).Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("slot_taken")
		}

		return tx.Create(b).Error
	})
}

// --------------------------------------------------
// Booking (state change / read)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Services").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Services")

	if f.BarberID != 0 {
		q = q.Where("barber_id = ?", f.BarberID)
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}

	var bookings []models.Booking
	if err := q.
		Order("scheduled_at ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
