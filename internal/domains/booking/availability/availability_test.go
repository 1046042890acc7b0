package availability_test

import (
	"slices"
	"testing"

	"clinic/internal/domains/booking/availability"
	"clinic/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(start, end, status string, provider *string) model.Booking {
	return model.Booking{StartTime: start, EndTime: end, Status: status, ProviderID: provider}
}

func ptr(s string) *string {
	return &s
}

func TestSlots_Scenarios(t *testing.T) {
	hours := availability.DefaultClinicHours
	exact := availability.Query{Mode: availability.ModeExact}
	overlap := availability.Query{Mode: availability.ModeOverlap, Duration: 30}

	t.Run("empty day offers 24 slots", func(t *testing.T) {
		for _, query := range []availability.Query{exact, overlap} {
			slots := availability.Slots(hours, query, nil)

			require.Len(t, slots, 24)
			assert.Equal(t, "08:00", slots[0])
			assert.Equal(t, "19:30", slots[len(slots)-1])
		}
	})

	t.Run("confirmed booking removes its start only", func(t *testing.T) {
		bookings := []model.Booking{booking("10:00", "10:30", model.StatusConfirmed, nil)}

		for _, query := range []availability.Query{exact, overlap} {
			slots := availability.Slots(hours, query, bookings)

			assert.NotContains(t, slots, "10:00")
			assert.Contains(t, slots, "09:30")
			assert.Contains(t, slots, "10:30")
			assert.Len(t, slots, 23)
		}
	})

	t.Run("cancelled booking does not hold the slot", func(t *testing.T) {
		bookings := []model.Booking{booking("10:00", "10:30", model.StatusCancelled, nil)}

		assert.Contains(t, availability.Slots(hours, exact, bookings), "10:00")
		assert.Contains(t, availability.Slots(hours, overlap, bookings), "10:00")
	})

	t.Run("only pending and confirmed hold", func(t *testing.T) {
		for _, status := range model.Statuses {
			bookings := []model.Booking{booking("11:00", "11:30", status, nil)}
			held := !slices.Contains(availability.Slots(hours, exact, bookings), "11:00")

			assert.Equal(t, availability.HoldsSlot(status), held, status)
		}
	})
}

func TestSlots_ProviderFilter(t *testing.T) {
	hours := availability.DefaultClinicHours
	bookings := []model.Booking{
		booking("09:00", "09:30", model.StatusPending, ptr("dr-a")),
		booking("09:30", "10:00", model.StatusConfirmed, ptr("dr-b")),
		booking("10:00", "10:30", model.StatusConfirmed, nil),
	}

	noPreference := availability.Slots(hours, availability.Query{Mode: availability.ModeExact}, bookings)
	assert.NotContains(t, noPreference, "09:00")
	assert.NotContains(t, noPreference, "09:30")
	assert.NotContains(t, noPreference, "10:00")

	forA := availability.Slots(hours, availability.Query{Mode: availability.ModeExact, ProviderID: "dr-a"}, bookings)
	assert.NotContains(t, forA, "09:00")
	assert.Contains(t, forA, "09:30")
	assert.Contains(t, forA, "10:00")
}

func TestSlots_Overlap(t *testing.T) {
	hours := availability.DefaultClinicHours
	bookings := []model.Booking{booking("10:00", "11:00", model.StatusConfirmed, nil)}

	short := availability.Slots(hours, availability.Query{Mode: availability.ModeOverlap, Duration: 30}, bookings)
	assert.Contains(t, short, "09:30")
	assert.NotContains(t, short, "10:00")
	assert.NotContains(t, short, "10:30")
	assert.Contains(t, short, "11:00")

	long := availability.Slots(hours, availability.Query{Mode: availability.ModeOverlap, Duration: 60}, bookings)
	assert.NotContains(t, long, "09:30")
	assert.Contains(t, long, "09:00")
	assert.Contains(t, long, "11:00")

	exact := availability.Slots(hours, availability.Query{Mode: availability.ModeExact, Duration: 60}, bookings)
	assert.Contains(t, exact, "10:30", "exact mode only compares start times")
}

func TestSlots_MissingEndCountsOneSlot(t *testing.T) {
	hours := availability.DefaultClinicHours
	bookings := []model.Booking{booking("14:00", "", model.StatusPending, nil)}

	slots := availability.Slots(hours, availability.Query{Mode: availability.ModeOverlap, Duration: 30}, bookings)

	assert.NotContains(t, slots, "14:00")
	assert.Contains(t, slots, "14:30")
}

func TestSlots_NeverNil(t *testing.T) {
	hours := availability.ClinicHours{Opening: 8 * 60, Closing: 9 * 60, Granularity: 30}
	bookings := []model.Booking{
		booking("08:00", "08:30", model.StatusConfirmed, nil),
		booking("08:30", "09:00", model.StatusPending, nil),
	}

	slots := availability.Slots(hours, availability.Query{}, bookings)

	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestConflict_UnalignedStart(t *testing.T) {
	hours := availability.DefaultClinicHours
	bookings := []model.Booking{booking("10:00", "10:45", model.StatusConfirmed, nil)}

	found, taken := availability.Conflict(hours, availability.Query{Mode: availability.ModeOverlap, Duration: 15}, bookings, 10*60+30)
	assert.True(t, taken)
	assert.Equal(t, "10:00", found.StartTime)

	_, taken = availability.Conflict(hours, availability.Query{Mode: availability.ModeOverlap, Duration: 15}, bookings, 10*60+45)
	assert.False(t, taken)
}

func TestEndTime(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		minutes  int
		expected string
		wantErr  error
	}{
		{name: "within the hour", start: "09:00", minutes: 30, expected: "09:30"},
		{name: "rolls over the hour", start: "19:30", minutes: 90, expected: "21:00"},
		{name: "past closing is allowed", start: "19:45", minutes: 45, expected: "20:30"},
		{name: "last minute of the day", start: "23:00", minutes: 59, expected: "23:59"},
		{name: "reaching midnight", start: "23:30", minutes: 30, wantErr: availability.ErrCrossesMidnight},
		{name: "zero duration", start: "10:00", minutes: 0, wantErr: availability.ErrInvalidDuration},
		{name: "bad clock", start: "9:00", minutes: 30, wantErr: availability.ErrInvalidClock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, err := availability.EndTime(tt.start, tt.minutes)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, end)
		})
	}
}

func TestEndTime_EveryStartAndDuration(t *testing.T) {
	for start := 0; start < 24*60; start += 15 {
		for _, duration := range []int{15, 30, 45, 60, 90, 120} {
			end, err := availability.EndTime(availability.FormatClock(start), duration)
			if start+duration >= 24*60 {
				assert.Error(t, err)

				continue
			}

			require.NoError(t, err)

			minutes, err := availability.ParseClock(end)
			require.NoError(t, err)
			assert.Equal(t, start+duration, minutes)
		}
	}
}

func TestParseClinicHours(t *testing.T) {
	hours, err := availability.ParseClinicHours("08:00", "20:00", 30)
	require.NoError(t, err)
	assert.Equal(t, availability.DefaultClinicHours, hours)

	_, err = availability.ParseClinicHours("20:00", "08:00", 30)
	assert.ErrorIs(t, err, availability.ErrInvalidHours)

	_, err = availability.ParseClinicHours("08:00", "20:00", 0)
	assert.ErrorIs(t, err, availability.ErrInvalidSlotLength)

	_, err = availability.ParseClinicHours("8am", "20:00", 30)
	assert.ErrorIs(t, err, availability.ErrInvalidClock)
}

func TestParseMode(t *testing.T) {
	mode, err := availability.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, availability.ModeOverlap, mode)

	mode, err = availability.ParseMode(" EXACT ")
	require.NoError(t, err)
	assert.Equal(t, availability.ModeExact, mode)

	_, err = availability.ParseMode("fuzzy")
	assert.ErrorIs(t, err, availability.ErrInvalidMode)
}
