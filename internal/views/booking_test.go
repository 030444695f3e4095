package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipperroom/clipperroom-api/internal/models"
)

func TestBooking_ModernRow(t *testing.T) {
	start := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)

	b := &models.Booking{
		ID:       7,
		BarberID: 2,
		Barber:   models.Barber{Name: "Marco"},
		Services: []models.Service{
			{ID: 1, Name: "Haircut", Price: 30, DurationMin: 45},
		},
		Date:        "2026-03-10",
		Time:        "11:00",
		ScheduledAt: start,
		EndsAt:      start.Add(45 * time.Minute),
		Status:      "confirmed",
	}

	v := Booking(b)

	assert.Equal(t, "Marco", v.BarberName)
	require.Len(t, v.Services, 1)
	assert.Equal(t, "Haircut", v.Services[0].Name)
	assert.Equal(t, 45, v.Services[0].DurationMin)
	assert.Equal(t, start.Add(45*time.Minute), v.EndsAt)
}

func TestBooking_LegacyServiceString(t *testing.T) {
	start := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)

	b := &models.Booking{
		ID:            3,
		LegacyService: "Corte degradê",
		Date:          "2024-06-01",
		Time:          "14:00",
		ScheduledAt:   start,
		Status:        "completed",
	}

	v := Booking(b)

	require.Len(t, v.Services, 1)
	assert.Equal(t, "Corte degradê", v.Services[0].Name)
	assert.Equal(t, 30, v.Services[0].DurationMin)
	assert.Zero(t, v.Services[0].ID)

	// Legacy rows have no ends_at; one slot is assumed.
	assert.Equal(t, start.Add(30*time.Minute), v.EndsAt)
}

func TestBooking_ModernServicesWinOverLegacyColumn(t *testing.T) {
	b := &models.Booking{
		Services:      []models.Service{{ID: 4, Name: "Shave", DurationMin: 30}},
		LegacyService: "old text",
	}

	v := Booking(b)

	require.Len(t, v.Services, 1)
	assert.Equal(t, "Shave", v.Services[0].Name)
}

func TestBooking_ZeroDurationServiceNormalizedToOneSlot(t *testing.T) {
	b := &models.Booking{
		Services: []models.Service{{ID: 9, Name: "Old Cut", DurationMin: 0}},
	}

	v := Booking(b)

	require.Len(t, v.Services, 1)
	assert.Equal(t, 30, v.Services[0].DurationMin)
}

func TestBookings_EmptySliceNotNil(t *testing.T) {
	out := Bookings(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
