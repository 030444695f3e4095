package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusByTime(statuses []SlotStatus) map[string]SlotStatus {
	m := make(map[string]SlotStatus, len(statuses))
	for _, st := range statuses {
		m[st.Time] = st
	}
	return m
}

func TestResolveDay_EmptyFutureDayAllSelectable(t *testing.T) {
	date := day(2026, 3, 10)
	now := at(day(2026, 3, 9), "12:00")

	slots := MarkSlots(BuildGrid(date, "09:00", "19:00", time.UTC), nil, now, 30)
	statuses := ResolveDay(slots, 30)

	for _, st := range statuses {
		assert.True(t, st.Selectable, st.Time)
		assert.Empty(t, st.Reason, st.Time)
	}
}

func TestResolveDay_SixtyMinuteServiceAroundExistingBooking(t *testing.T) {
	date := day(2026, 3, 10)
	now := at(date, "10:00")

	booked := []Range{{Start: at(date, "11:00"), End: at(date, "11:30")}}
	slots := MarkSlots(BuildGrid(date, "09:00", "19:00", time.UTC), booked, now, 30)
	statuses := ResolveDay(slots, 60)

	m := statusByTime(statuses)

	// 09:00 through 10:00 are inside the lead window.
	assert.False(t, m["10:00"].Selectable)
	assert.Equal(t, reasonPast, m["10:00"].Reason)

	// A 60-minute cut starting 10:30 would run into the 11:00 booking.
	require.False(t, m["10:30"].Selectable)
	assert.Equal(t, reasonNotEnough, m["10:30"].Reason)

	// Starting on the booked slot itself.
	require.False(t, m["11:00"].Selectable)
	assert.Equal(t, reasonBooked, m["11:00"].Reason)

	// 11:30 and 12:00 are both free, so 11:30 works.
	assert.True(t, m["11:30"].Selectable)
	assert.True(t, m["12:00"].Selectable)
}

func TestResolveDay_NinetyMinutesNeedsThreeConsecutiveSlots(t *testing.T) {
	date := day(2026, 3, 10)
	now := at(day(2026, 3, 9), "12:00")

	booked := []Range{{Start: at(date, "10:30"), End: at(date, "11:00")}}
	slots := MarkSlots(BuildGrid(date, "09:00", "19:00", time.UTC), booked, now, 30)
	statuses := ResolveDay(slots, 90)

	m := statusByTime(statuses)

	assert.True(t, m["09:00"].Selectable)
	assert.False(t, m["09:30"].Selectable)
	assert.Equal(t, reasonNotEnough, m["09:30"].Reason)
	assert.False(t, m["10:00"].Selectable)
	assert.False(t, m["10:30"].Selectable)
	assert.Equal(t, reasonBooked, m["10:30"].Reason)
	assert.True(t, m["11:00"].Selectable)
}

func TestResolveDay_RunsOffEndOfGrid(t *testing.T) {
	date := day(2026, 3, 10)
	now := at(day(2026, 3, 9), "12:00")

	slots := MarkSlots(BuildGrid(date, "09:00", "19:00", time.UTC), nil, now, 30)
	statuses := ResolveDay(slots, 60)

	m := statusByTime(statuses)

	assert.True(t, m["18:00"].Selectable)
	assert.False(t, m["18:30"].Selectable)
	assert.Equal(t, reasonEndOfDay, m["18:30"].Reason)
}

func TestResolveDay_FullyBookedDay(t *testing.T) {
	date := day(2026, 3, 10)
	now := at(day(2026, 3, 9), "12:00")

	booked := []Range{{Start: at(date, "09:00"), End: at(date, "19:00")}}
	slots := MarkSlots(BuildGrid(date, "09:00", "19:00", time.UTC), booked, now, 30)
	statuses := ResolveDay(slots, 30)

	for _, st := range statuses {
		assert.False(t, st.Selectable, st.Time)
	}
}

func TestResolveDay_ZeroDurationCountsAsOneSlot(t *testing.T) {
	date := day(2026, 3, 10)
	now := at(day(2026, 3, 9), "12:00")

	slots := MarkSlots(BuildGrid(date, "09:00", "19:00", time.UTC), nil, now, 30)

	assert.Equal(t, ResolveDay(slots, 30), ResolveDay(slots, 0))
}

func TestResolveDay_Idempotent(t *testing.T) {
	date := day(2026, 3, 10)
	now := at(date, "10:00")

	booked := []Range{
		{Start: at(date, "11:00"), End: at(date, "12:30")},
		{Start: at(date, "15:00"), End: at(date, "15:30")},
	}
	slots := MarkSlots(BuildGrid(date, "09:00", "19:00", time.UTC), booked, now, 30)

	first := ResolveDay(slots, 60)
	second := ResolveDay(slots, 60)

	assert.Equal(t, first, second)
}

func TestSlotSelectable(t *testing.T) {
	statuses := []SlotStatus{
		{Time: "09:00", Selectable: true},
		{Time: "09:30", Selectable: false},
	}

	assert.True(t, SlotSelectable(statuses, "09:00"))
	assert.False(t, SlotSelectable(statuses, "09:30"))
	assert.False(t, SlotSelectable(statuses, "23:00"))
}
