package booking

import (
	"context"
	"strings"
	"time"

	"github.com/clipperroom/clipperroom-api/internal/audit"
	"github.com/clipperroom/clipperroom-api/internal/config"
	domain "github.com/clipperroom/clipperroom-api/internal/domain/booking"
	"github.com/clipperroom/clipperroom-api/internal/httperr"
	"github.com/clipperroom/clipperroom-api/internal/metrics"
	"github.com/clipperroom/clipperroom-api/internal/models"
	"github.com/clipperroom/clipperroom-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BarberID   uint
	ServiceIDs []uint

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Date  string
	Time  string
	Notes string

	UserID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	cfg   *config.Config
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	cfg *config.Config,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		cfg:   cfg,
		audit: audit,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if err := validateInput(in); err != nil {
		return nil, err
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	if !barber.Active {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	services, err := uc.repo.GetServices(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(dedupe(in.ServiceIDs)) {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	loc := timezone.Location(uc.cfg.Timezone)

	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	required := domain.TotalDuration(services)
	if required <= 0 {
		required = domain.SlotMinutes
	}
	end := start.Add(time.Duration(required) * time.Minute)

	// Read-time availability check: full grid resolution, same rules the
	// client saw. The authoritative re-check happens inside the locked
	// transaction below.
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	booked, err := uc.repo.ListBookedRanges(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(uc.cfg.Timezone)
	grid := domain.BuildGrid(dayStart, uc.cfg.SlotGridStart, uc.cfg.SlotGridEnd, loc)
	marked := domain.MarkSlots(grid, booked, now, uc.cfg.BookingLeadMinutes)
	statuses := domain.ResolveDay(marked, required)

	var slot *domain.SlotStatus
	for i := range statuses {
		if statuses[i].Time == in.Time {
			slot = &statuses[i]
			break
		}
	}

	switch {
	case slot == nil:
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	case slot.IsPast:
		return nil, httperr.ErrBusiness("too_soon")
	case !slot.Selectable:
		metrics.IncBookingConflict()
		return nil, httperr.ErrBusiness("slot_taken")
	}

	b := &models.Booking{
		BarberID:      in.BarberID,
		Services:      services,
		Date:          in.Date,
		Time:          in.Time,
		ScheduledAt:   start,
		EndsAt:        end,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		UserID:        in.UserID,
		Status:        string(domain.InitialStatus()),
		Notes:         in.Notes,
	}

	if err := uc.repo.CreateBookingIfFree(ctx, b); err != nil {
		if httperr.IsBusiness(err, "slot_taken") {
			metrics.IncBookingConflict()
		}
		return nil, err
	}

	metrics.IncBookingCreated()

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

func validateInput(in CreateBookingInput) error {
	switch {
	case in.BarberID == 0:
		return httperr.ErrBusiness("missing_barber")
	case len(in.ServiceIDs) == 0:
		return httperr.ErrBusiness("missing_services")
	case strings.TrimSpace(in.CustomerName) == "":
		return httperr.ErrBusiness("missing_name")
	case strings.TrimSpace(in.CustomerEmail) == "":
		return httperr.ErrBusiness("missing_email")
	case strings.TrimSpace(in.CustomerPhone) == "":
		return httperr.ErrBusiness("missing_phone")
	case in.Date == "" || in.Time == "":
		return httperr.ErrBusiness("missing_date_or_time")
	}
	return nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
