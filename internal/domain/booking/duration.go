package booking

import "github.com/clipperroom/clipperroom-api/internal/models"

// TotalDuration sums the selected services' durations in minutes.
// Services created before the duration column existed count as one slot.
// Zero services yields 0; callers treat that as a single default slot,
// never as a zero-length appointment.
func TotalDuration(services []models.Service) int {
	total := 0
	for _, s := range services {
		d := s.DurationMin
		if d <= 0 {
			d = SlotMinutes
		}
		total += d
	}
	return total
}
