package timezone_test

import (
	"testing"
	"time"

	"clinic/shared/timezone"
)

func TestTimezoneInit(t *testing.T) {
	// Test Now() function
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	// Test GetLocation()
	loc := timezone.GetLocation()
	if loc == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestTimezoneWithStandardLocation(t *testing.T) {
	utcTime := time.Now().UTC()
	appTime := timezone.ToAppTime(utcTime)

	if appTime.Location() == nil {
		t.Error("Expected converted time to have a location")
	}
}

func TestTimezoneFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	formatted := timezone.Format(testTime, "2006-01-02 15:04:05 MST")

	if formatted == "" {
		t.Error("Format() returned empty string")
	}

	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	if err != nil {
		t.Errorf("Parse() failed: %v", err)
	}

	if parsed == (time.Time{}) {
		t.Error("Parse() returned a zero time")
	}
}

func TestTimezoneToday(t *testing.T) {
	today := timezone.Today()

	if today.Hour() != 0 || today.Minute() != 0 || today.Second() != 0 || today.Nanosecond() != 0 {
		t.Errorf("Today() should be midnight, got %v", today)
	}

	if !today.Equal(timezone.DateOf(timezone.Now())) {
		t.Error("Today() should match DateOf(Now())")
	}
}

func TestTimezoneDateOf(t *testing.T) {
	source := time.Date(2025, 6, 10, 17, 45, 12, 0, timezone.GetLocation())
	date := timezone.DateOf(source)

	if date.Year() != 2025 || date.Month() != time.June || date.Day() != 10 {
		t.Errorf("DateOf() kept wrong day: %v", date)
	}

	if date.Hour() != 0 {
		t.Errorf("DateOf() should drop the clock, got %v", date)
	}
}
