package views

import (
	"time"

	domain "github.com/clipperroom/clipperroom-api/internal/domain/booking"
	"github.com/clipperroom/clipperroom-api/internal/models"
)

// BookingView is the wire shape for a booking. It is produced by one pure
// transform from the model; no handler patches response objects afterwards.
type BookingView struct {
	ID uint `json:"id"`

	BarberID   uint   `json:"barber_id"`
	BarberName string `json:"barber_name,omitempty"`

	Services []ServiceView `json:"services"`

	Date        string    `json:"date"`
	Time        string    `json:"time"`
	ScheduledAt time.Time `json:"scheduled_at"`
	EndsAt      time.Time `json:"ends_at"`

	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	UserID *uint  `json:"user_id,omitempty"`
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type ServiceView struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
}

// Booking normalizes a stored booking into its wire shape. Legacy rows that
// carry only the old free-text service column come out with a synthetic
// one-element services array, so consumers never see the old shape.
func Booking(b *models.Booking) BookingView {
	v := BookingView{
		ID:            b.ID,
		BarberID:      b.BarberID,
		BarberName:    b.Barber.Name,
		Date:          b.Date,
		Time:          b.Time,
		ScheduledAt:   b.ScheduledAt,
		EndsAt:        b.EndsAt,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		UserID:        b.UserID,
		Status:        b.Status,
		Notes:         b.Notes,
		CancelledAt:   b.CancelledAt,
		CompletedAt:   b.CompletedAt,
		CreatedAt:     b.CreatedAt,
	}

	for _, s := range b.Services {
		d := s.DurationMin
		if d <= 0 {
			d = domain.SlotMinutes
		}
		v.Services = append(v.Services, ServiceView{
			ID:          s.ID,
			Name:        s.Name,
			Price:       s.Price,
			DurationMin: d,
		})
	}

	if len(v.Services) == 0 && b.LegacyService != "" {
		v.Services = []ServiceView{{
			Name:        b.LegacyService,
			DurationMin: domain.SlotMinutes,
		}}
	}

	if v.EndsAt.IsZero() || !v.EndsAt.After(v.ScheduledAt) {
		v.EndsAt = v.ScheduledAt.Add(domain.SlotMinutes * time.Minute)
	}

	return v
}

func Bookings(bs []models.Booking) []BookingView {
	out := make([]BookingView, 0, len(bs))
	for i := range bs {
		out = append(out, Booking(&bs[i]))
	}
	return out
}
