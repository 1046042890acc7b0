// Package availability computes the bookable start times of a clinic day.
//
// Times are "HH:MM" wall-clock strings in clinic local time and are handled
// internally as minutes since midnight. Nothing here performs I/O: callers
// fetch the day's bookings fresh and pass them in.
package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic/internal/domains/booking/model"
	"clinic/shared/constant"
)

// Mode selects how a candidate slot collides with an existing booking.
type Mode string

const (
	// ModeOverlap excludes a candidate whose [start, start+duration) window overlaps a booking's [start, end).
	ModeOverlap Mode = "overlap"
	// ModeExact excludes a candidate only when a booking starts at exactly the same time.
	ModeExact Mode = "exact"
)

var (
	ErrInvalidClock      = errors.New("time must be in HH:MM format")
	ErrInvalidDuration   = errors.New("duration must be greater than zero")
	ErrCrossesMidnight   = errors.New("booking must end before midnight")
	ErrInvalidHours      = errors.New("closing time must be after opening time")
	ErrInvalidSlotLength = errors.New("slot granularity must be greater than zero")
	ErrInvalidMode       = errors.New("slot match mode must be overlap or exact")
)

// ClinicHours is the bookable window of a day, in minutes since midnight.
type ClinicHours struct {
	Opening     int
	Closing     int
	Granularity int
}

var DefaultClinicHours = ClinicHours{
	Opening:     8 * 60,
	Closing:     20 * 60,
	Granularity: 30,
}

func ParseClinicHours(opening, closing string, granularity int) (ClinicHours, error) {
	open, err := ParseClock(opening)
	if err != nil {
		return ClinicHours{}, fmt.Errorf("opening time %q: %w", opening, err)
	}

	end, err := ParseClock(closing)
	if err != nil {
		return ClinicHours{}, fmt.Errorf("closing time %q: %w", closing, err)
	}

	if end <= open {
		return ClinicHours{}, ErrInvalidHours
	}

	if granularity <= 0 {
		return ClinicHours{}, ErrInvalidSlotLength
	}

	return ClinicHours{Opening: open, Closing: end, Granularity: granularity}, nil
}

func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeOverlap, "":
		return ModeOverlap, nil
	case ModeExact:
		return ModeExact, nil
	default:
		return "", ErrInvalidMode
	}
}

// Query narrows a day's slots. An empty ProviderID means "no preference" and every holding booking counts.
type Query struct {
	ProviderID string
	Duration   int
	Mode       Mode
}

// HoldsSlot reports whether a booking in this status blocks its time for others.
func HoldsSlot(status string) bool {
	return status == model.StatusPending || status == model.StatusConfirmed
}

// Slots lists the granularity-aligned start times from opening (inclusive) to closing (exclusive)
// that no holding booking collides with. The result is ascending and never nil.
func Slots(hours ClinicHours, query Query, bookings []model.Booking) []string {
	slots := []string{}

	if hours.Granularity <= 0 {
		return slots
	}

	for candidate := hours.Opening; candidate < hours.Closing; candidate += hours.Granularity {
		if _, taken := Conflict(hours, query, bookings, candidate); !taken {
			slots = append(slots, FormatClock(candidate))
		}
	}

	return slots
}

// Conflict returns the first holding booking that blocks a start at the given minute.
// The start does not have to be aligned, so admin entries at odd times are checked the same way.
func Conflict(hours ClinicHours, query Query, bookings []model.Booking, start int) (model.Booking, bool) {
	for _, booking := range bookings {
		if !HoldsSlot(booking.Status) {
			continue
		}

		if query.ProviderID != constant.Empty && booking.Provider() != query.ProviderID {
			continue
		}

		if Collides(hours, query, booking, start) {
			return booking, true
		}
	}

	return model.Booking{}, false
}

// Collides applies the query's matching mode to one booking, ignoring status and provider.
func Collides(hours ClinicHours, query Query, booking model.Booking, start int) bool {
	if query.Mode == ModeExact {
		return booking.StartTime == FormatClock(start)
	}

	bookedStart, err := ParseClock(booking.StartTime)
	if err != nil {
		return false
	}

	bookedEnd, err := ParseClock(booking.EndTime)
	if err != nil || bookedEnd <= bookedStart {
		bookedEnd = bookedStart + hours.Granularity
	}

	duration := query.Duration
	if duration <= 0 {
		duration = hours.Granularity
	}

	return start < bookedEnd && bookedStart < start+duration
}

// EndTime adds minutes to an "HH:MM" start, carrying into the hour. Ends at or after midnight are refused.
func EndTime(start string, minutes int) (string, error) {
	begin, err := ParseClock(start)
	if err != nil {
		return "", err
	}

	if minutes <= 0 {
		return "", ErrInvalidDuration
	}

	end := begin + minutes
	if end >= constant.MinutesPerDay {
		return "", ErrCrossesMidnight
	}

	return FormatClock(end), nil
}

// ParseClock turns a zero padded 24h "HH:MM" into minutes since midnight.
func ParseClock(value string) (int, error) {
	if len(value) != len(constant.ClockFormat) {
		return 0, ErrInvalidClock
	}

	parsed, err := time.Parse(constant.ClockFormat, value)
	if err != nil {
		return 0, ErrInvalidClock
	}

	return parsed.Hour()*60 + parsed.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
