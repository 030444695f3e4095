package booking

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipperroom/clipperroom-api/internal/audit"
	domain "github.com/clipperroom/clipperroom-api/internal/domain/booking"
	"github.com/clipperroom/clipperroom-api/internal/httperr"
	"github.com/clipperroom/clipperroom-api/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func repoWithBooking(status string, userID *uint) *fakeRepo {
	repo := newFakeRepo()
	repo.booking = &models.Booking{
		ID:     5,
		UserID: userID,
		Status: status,
	}
	return repo
}

func newCancelUC(repo *fakeRepo) *CancelBooking {
	dispatcher := audit.NewDispatcher(nil, zerolog.Nop())
	return NewCancelBooking(repo, testConfig(), dispatcher)
}

func TestCancelBooking_Owner(t *testing.T) {
	repo := repoWithBooking(string(domain.StatusPending), uintPtr(7))
	uc := newCancelUC(repo)

	b, err := uc.Execute(context.Background(), 5, uintPtr(7), false)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), b.Status)
	assert.NotNil(t, b.CancelledAt)
	require.Len(t, repo.updated, 1)
}

func TestCancelBooking_StaffCanCancelAnyBooking(t *testing.T) {
	repo := repoWithBooking(string(domain.StatusConfirmed), uintPtr(7))
	uc := newCancelUC(repo)

	b, err := uc.Execute(context.Background(), 5, uintPtr(99), true)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), b.Status)
}

func TestCancelBooking_NotOwner(t *testing.T) {
	repo := repoWithBooking(string(domain.StatusPending), uintPtr(7))
	uc := newCancelUC(repo)

	_, err := uc.Execute(context.Background(), 5, uintPtr(8), false)

	assert.True(t, httperr.IsBusiness(err, "not_owner"))
	assert.Empty(t, repo.updated)
}

func TestCancelBooking_GuestBookingNotCancellableByCustomer(t *testing.T) {
	repo := repoWithBooking(string(domain.StatusPending), nil)
	uc := newCancelUC(repo)

	_, err := uc.Execute(context.Background(), 5, uintPtr(7), false)
	assert.True(t, httperr.IsBusiness(err, "not_owner"))
}

func TestCancelBooking_CompletedIsFinal(t *testing.T) {
	repo := repoWithBooking(string(domain.StatusCompleted), uintPtr(7))
	uc := newCancelUC(repo)

	_, err := uc.Execute(context.Background(), 5, uintPtr(7), false)

	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, string(domain.StatusCompleted), repo.booking.Status)
}

func TestCancelBooking_NotFound(t *testing.T) {
	uc := newCancelUC(newFakeRepo())

	_, err := uc.Execute(context.Background(), 5, uintPtr(7), false)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

func TestSetBookingStatus(t *testing.T) {
	dispatcher := audit.NewDispatcher(nil, zerolog.Nop())

	t.Run("confirm then complete", func(t *testing.T) {
		repo := repoWithBooking(string(domain.StatusPending), nil)
		uc := NewSetBookingStatus(repo, testConfig(), dispatcher)

		b, err := uc.Execute(context.Background(), 5, "confirmed", uintPtr(1))
		require.NoError(t, err)
		assert.Equal(t, "confirmed", b.Status)

		b, err = uc.Execute(context.Background(), 5, "completed", uintPtr(1))
		require.NoError(t, err)
		assert.Equal(t, "completed", b.Status)
		assert.NotNil(t, b.CompletedAt)
	})

	t.Run("cancelling completed stays forbidden", func(t *testing.T) {
		repo := repoWithBooking(string(domain.StatusCompleted), nil)
		uc := NewSetBookingStatus(repo, testConfig(), dispatcher)

		_, err := uc.Execute(context.Background(), 5, "cancelled", uintPtr(1))
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := repoWithBooking(string(domain.StatusPending), nil)
		uc := NewSetBookingStatus(repo, testConfig(), dispatcher)

		_, err := uc.Execute(context.Background(), 5, "archived", uintPtr(1))
		assert.True(t, httperr.IsBusiness(err, "invalid_status"))
	})
}
