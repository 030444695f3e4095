package booking

import "time"

// SlotMinutes is the atomic scheduling unit.
const SlotMinutes = 30

// Range is an occupied interval of a barber's day.
type Range struct {
	Start time.Time
	End   time.Time
}

// Slot is one grid point of a day with its computed flags.
type Slot struct {
	Time        string
	Start       time.Time
	IsPast      bool
	IsAvailable bool
}

func parseHM(hm string, date time.Time, loc *time.Location) time.Time {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		t, _ = time.Parse("15:04", "09:00")
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		loc,
	)
}

// BuildGrid generates the fixed slot grid for a calendar day. Start times
// run every SlotMinutes from gridStart (inclusive) to gridEnd (exclusive).
// The grid is deliberately independent of barber working hours.
func BuildGrid(date time.Time, gridStart, gridEnd string, loc *time.Location) []Slot {
	dayStart := parseHM(gridStart, date, loc)
	dayEnd := parseHM(gridEnd, date, loc)

	var slots []Slot
	for cur := dayStart; cur.Before(dayEnd); cur = cur.Add(SlotMinutes * time.Minute) {
		slots = append(slots, Slot{
			Time:  cur.Format("15:04"),
			Start: cur,
		})
	}
	return slots
}

// MarkSlots fills in IsPast and IsAvailable for every grid slot.
//
// A slot is past when its start is before now+lead. The lead buffer only
// applies when the requested date is today; for future dates nothing is past.
// A slot is available when it is not past and does not overlap a booked
// range. Boundary-touching intervals do not overlap.
func MarkSlots(slots []Slot, booked []Range, now time.Time, leadMinutes int) []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)

	minStart := now.Add(time.Duration(leadMinutes) * time.Minute)

	for i := range out {
		s := &out[i]

		if sameDay(s.Start, now) {
			s.IsPast = s.Start.Before(minStart)
		} else {
			s.IsPast = s.Start.Before(now)
		}

		slotEnd := s.Start.Add(SlotMinutes * time.Minute)
		overlaps := false
		for _, r := range booked {
			if r.Start.Before(slotEnd) && r.End.After(s.Start) {
				overlaps = true
				break
			}
		}

		s.IsAvailable = !s.IsPast && !overlaps
	}

	return out
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
