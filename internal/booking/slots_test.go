package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsip/visit-sync/internal/booking"
)

func TestRoomCode(t *testing.T) {
	assert.Equal(t, "VSIP_SOC", booking.RoomCode(false))
	assert.Equal(t, "VSIP_CLO", booking.RoomCode(true))
}

func TestRoomDescription_NestsUnderParent(t *testing.T) {
	// GIVEN: the prison has a top-level visits room
	desc := booking.RoomDescription("LEI", "LEI-VISITS-HALL", false)
	assert.Equal(t, "LEI-VISITS-HALL-VSIP_SOC", desc)

	desc = booking.RoomDescription("LEI", "LEI-VISITS-HALL", true)
	assert.Equal(t, "LEI-VISITS-HALL-VSIP_CLO", desc)
}

func TestRoomDescription_SynthesizedWithoutParent(t *testing.T) {
	desc := booking.RoomDescription("MDI", "", false)
	assert.Equal(t, "MDI-VISITS-VSIP_SOC", desc)
}

func TestRoomDescription_DistinguishesOpenAndClosed(t *testing.T) {
	// Open and closed visits at the same prison must resolve to
	// different rooms, and therefore different slots.
	open := booking.RoomDescription("LEI", "", false)
	closed := booking.RoomDescription("LEI", "", true)
	assert.NotEqual(t, open, closed)
}

func TestScheduleRange_DayBeforeVisit(t *testing.T) {
	visit := time.Date(2026, time.July, 14, 14, 30, 0, 0, time.UTC)

	effective, expiry := booking.ScheduleRange(visit)

	// Effective and expiry both land on the day before the visit, so the
	// row is already expired and never appears as a recurring slot.
	want := time.Date(2026, time.July, 13, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, effective)
	assert.Equal(t, want, expiry)
	assert.True(t, expiry.Before(visit))
}

func TestScheduleRange_MonthBoundary(t *testing.T) {
	visit := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	effective, _ := booking.ScheduleRange(visit)
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), effective)
}

func TestWeekdayCode_AllDays(t *testing.T) {
	// 2026-08-31 is a Monday; walk one full week from it
	monday := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	want := []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

	for i, code := range want {
		got, err := booking.WeekdayCode(monday.AddDate(0, 0, i))
		require.NoError(t, err)
		assert.Equal(t, code, got)
	}
}
