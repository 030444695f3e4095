package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipperroom/clipperroom-api/internal/httperr"
	"github.com/clipperroom/clipperroom-api/internal/models"
)

func TestCanCancel(t *testing.T) {
	assert.NoError(t, CanCancel(StatusPending))
	assert.NoError(t, CanCancel(StatusConfirmed))
	assert.Error(t, CanCancel(StatusCompleted))
	assert.Error(t, CanCancel(StatusCancelled))
}

func TestCancel(t *testing.T) {
	now := time.Now()

	t.Run("pending booking cancels", func(t *testing.T) {
		b := &models.Booking{Status: string(StatusPending)}

		require.NoError(t, Cancel(b, now))
		assert.Equal(t, string(StatusCancelled), b.Status)
		require.NotNil(t, b.CancelledAt)
		assert.Equal(t, now, *b.CancelledAt)
	})

	t.Run("completed booking refuses", func(t *testing.T) {
		b := &models.Booking{Status: string(StatusCompleted)}

		err := Cancel(b, now)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
		assert.Equal(t, string(StatusCompleted), b.Status)
		assert.Nil(t, b.CancelledAt)
	})
}

func TestSetStatus(t *testing.T) {
	now := time.Now()

	t.Run("complete stamps completed_at", func(t *testing.T) {
		b := &models.Booking{Status: string(StatusConfirmed)}

		require.NoError(t, SetStatus(b, StatusCompleted, now))
		assert.Equal(t, string(StatusCompleted), b.Status)
		require.NotNil(t, b.CompletedAt)
	})

	t.Run("cancel goes through cancel rules", func(t *testing.T) {
		b := &models.Booking{Status: string(StatusCompleted)}

		err := SetStatus(b, StatusCancelled, now)
		require.Error(t, err)
		assert.Equal(t, string(StatusCompleted), b.Status)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		b := &models.Booking{Status: string(StatusPending)}

		err := SetStatus(b, Status("archived"), now)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "invalid_status"))
	})
}

func TestTotalDuration(t *testing.T) {
	assert.Equal(t, 0, TotalDuration(nil))

	services := []models.Service{
		{DurationMin: 45},
		{DurationMin: 30},
	}
	assert.Equal(t, 75, TotalDuration(services))

	legacy := []models.Service{{DurationMin: 0}, {DurationMin: 60}}
	assert.Equal(t, 90, TotalDuration(legacy))
}
