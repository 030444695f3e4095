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

type CancelBooking struct {
	repo  domain.Repository
	cfg   *config.Config
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	cfg *config.Config,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		cfg:   cfg,
		audit: audit,
	}
}

// Execute cancels a booking on behalf of callerID. Staff may cancel any
// booking; a customer only their own.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uint,
	callerID *uint,
	callerIsStaff bool,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if !callerIsStaff {
		if callerID == nil || b.UserID == nil || *b.UserID != *callerID {
			return nil, httperr.ErrBusiness("not_owner")
		}
	}

	now := timezone.NowIn(uc.cfg.Timezone)
	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   callerID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
