package booking

import (
	"context"

	"github.com/clipperroom/clipperroom-api/internal/audit"
	"github.com/clipperroom/clipperroom-api/internal/config"
	domain "github.com/clipperroom/clipperroom-api/internal/domain/booking"
	"github.com/clipperroom/clipperroom-api/internal/httperr"
	"github.com/clipperroom/clipperroom-api/internal/models"
	"github.com/clipperroom/clipperroom-api/internal/timezone"
)

type SetBookingStatus struct {
	repo  domain.Repository
	cfg   *config.Config
	audit *audit.Dispatcher
}

func NewSetBookingStatus(
	repo domain.Repository,
	cfg *config.Config,
	audit *audit.Dispatcher,
) *SetBookingStatus {
	return &SetBookingStatus{
		repo:  repo,
		cfg:   cfg,
		audit: audit,
	}
}

func (uc *SetBookingStatus) Execute(
	ctx context.Context,
	bookingID uint,
	target string,
	staffID *uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.NowIn(uc.cfg.Timezone)
	if err := domain.SetStatus(b, domain.Status(target), now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   staffID,
		Action:   "booking_status_" + target,
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
