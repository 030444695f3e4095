package booking

import (
	"context"
	"time"

	"github.com/clipperroom/clipperroom-api/internal/config"
	domain "github.com/clipperroom/clipperroom-api/internal/domain/booking"
	"github.com/clipperroom/clipperroom-api/internal/httperr"
	"github.com/clipperroom/clipperroom-api/internal/timezone"
)

type SlotStatusInput struct {
	BarberID   uint
	Date       string
	ServiceIDs []uint
}

type GetSlotStatus struct {
	repo domain.Repository
	cfg  *config.Config
}

func NewGetSlotStatus(repo domain.Repository, cfg *config.Config) *GetSlotStatus {
	return &GetSlotStatus{repo: repo, cfg: cfg}
}

// Execute computes the per-slot availability grid for (barber, date,
// selected services). Pure derivation from the store; no caching, no state.
func (uc *GetSlotStatus) Execute(
	ctx context.Context,
	in SlotStatusInput,
) ([]domain.SlotStatus, error) {

	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	loc := timezone.Location(uc.cfg.Timezone)

	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	required := 0
	if len(in.ServiceIDs) > 0 {
		services, err := uc.repo.GetServices(ctx, in.ServiceIDs)
		if err != nil {
			return nil, err
		}
		required = domain.TotalDuration(services)
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	booked, err := uc.repo.ListBookedRanges(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(uc.cfg.Timezone)
	grid := domain.BuildGrid(dayStart, uc.cfg.SlotGridStart, uc.cfg.SlotGridEnd, loc)
	marked := domain.MarkSlots(grid, booked, now, uc.cfg.BookingLeadMinutes)

	return domain.ResolveDay(marked, required), nil
}
