package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, "09:00", cfg.SlotGridStart)
	assert.Equal(t, "19:00", cfg.SlotGridEnd)
	assert.Equal(t, 30, cfg.BookingLeadMinutes)
	assert.Equal(t, 2.0, cfg.RateLimitRPS)
	assert.Equal(t, 5, cfg.RateLimitBurst)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BOOKING_LEAD_MINUTES", "60")
	t.Setenv("SHOP_TIMEZONE", "Europe/Lisbon")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 60, cfg.BookingLeadMinutes)
	assert.Equal(t, "Europe/Lisbon", cfg.Timezone)
}

func TestBadNumericEnvFallsBack(t *testing.T) {
	t.Setenv("BOOKING_LEAD_MINUTES", "soon")
	t.Setenv("RATE_LIMIT_RPS", "fast")

	cfg := Load()

	assert.Equal(t, 30, cfg.BookingLeadMinutes)
	assert.Equal(t, 2.0, cfg.RateLimitRPS)
}

func TestSlotGridValidation(t *testing.T) {
	t.Run("valid custom grid kept", func(t *testing.T) {
		t.Setenv("SLOT_GRID_START", "08:30")
		t.Setenv("SLOT_GRID_END", "17:00")

		cfg := Load()

		assert.Equal(t, "08:30", cfg.SlotGridStart)
		assert.Equal(t, "17:00", cfg.SlotGridEnd)
	})

	t.Run("malformed start resets both", func(t *testing.T) {
		t.Setenv("SLOT_GRID_START", "nine")
		t.Setenv("SLOT_GRID_END", "17:00")

		cfg := Load()

		assert.Equal(t, "09:00", cfg.SlotGridStart)
		assert.Equal(t, "19:00", cfg.SlotGridEnd)
	})

	t.Run("malformed end resets both", func(t *testing.T) {
		t.Setenv("SLOT_GRID_END", "25:99")

		cfg := Load()

		assert.Equal(t, "09:00", cfg.SlotGridStart)
		assert.Equal(t, "19:00", cfg.SlotGridEnd)
	})

	t.Run("inverted grid resets both", func(t *testing.T) {
		t.Setenv("SLOT_GRID_START", "18:00")
		t.Setenv("SLOT_GRID_END", "10:00")

		cfg := Load()

		assert.Equal(t, "09:00", cfg.SlotGridStart)
		assert.Equal(t, "19:00", cfg.SlotGridEnd)
	})
}

func TestUploadsEnabled(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.UploadsEnabled())

	cfg.S3Bucket = "media"
	cfg.S3AccessKey = "key"
	cfg.S3SecretKey = "secret"
	assert.True(t, cfg.UploadsEnabled())
}
