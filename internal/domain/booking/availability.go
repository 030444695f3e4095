package booking

import "time"

// SlotStatus is the per-slot decision returned to clients.
type SlotStatus struct {
	Time        string `json:"time"`
	IsPast      bool   `json:"is_past"`
	IsAvailable bool   `json:"is_available"`
	Selectable  bool   `json:"selectable"`
	Reason      string `json:"reason,omitempty"`
}

const (
	reasonPast      = "slot is in the past"
	reasonBooked    = "slot is already booked"
	reasonNotEnough = "not enough consecutive free slots"
	reasonEndOfDay  = "not enough remaining slots in the day"
)

// ResolveDay decides, for every slot of a marked grid, whether an
// appointment requiring requiredMin minutes may start there.
//
// An appointment needs ceil(requiredMin/30) consecutive grid slots. The walk
// checks each of them, except that the last slot is skipped when the
// appointment's end (start + requiredMin) does not actually reach it. A walk
// that runs off the end of the grid rejects the candidate.
//
// Pure function: same inputs, same output.
func ResolveDay(slots []Slot, requiredMin int) []SlotStatus {
	if requiredMin <= 0 {
		requiredMin = SlotMinutes
	}
	needed := (requiredMin + SlotMinutes - 1) / SlotMinutes

	out := make([]SlotStatus, len(slots))

	for i, s := range slots {
		st := SlotStatus{
			Time:        s.Time,
			IsPast:      s.IsPast,
			IsAvailable: s.IsAvailable,
		}

		end := s.Start.Add(time.Duration(requiredMin) * time.Minute)

		st.Selectable = true
		for j := 0; j < needed; j++ {
			walkStart := s.Start.Add(time.Duration(j*SlotMinutes) * time.Minute)

			// Last-slot tie-break: the appointment never reaches a slot
			// whose start is at or after its end.
			if j == needed-1 && !end.After(walkStart) {
				continue
			}

			if i+j >= len(slots) {
				st.Selectable = false
				st.Reason = reasonEndOfDay
				break
			}

			walk := slots[i+j]
			if walk.IsPast {
				st.Selectable = false
				st.Reason = reasonPast
				break
			}
			if !walk.IsAvailable {
				st.Selectable = false
				if j == 0 {
					st.Reason = reasonBooked
				} else {
					st.Reason = reasonNotEnough
				}
				break
			}
		}

		out[i] = st
	}

	return out
}

// SlotSelectable reports whether a specific start time is selectable in a
// resolved day. Used by the write-time conflict guard.
func SlotSelectable(statuses []SlotStatus, hm string) bool {
	for _, st := range statuses {
		if st.Time == hm {
			return st.Selectable
		}
	}
	return false
}
