package model

import (
	"time"

	"clinic/shared/constant"
	"clinic/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldContactName     = "contact_name"
	FieldContactPhone    = "contact_phone"
	FieldContactEmail    = "contact_email"
	FieldServiceID       = "service_id"
	FieldServiceName     = "service_name"
	FieldServiceDuration = "service_duration"
	FieldProviderID      = "provider_id"
	FieldProviderName    = "provider_name"
	FieldBookingDate     = "booking_date"
	FieldStartTime       = "start_time"
	FieldEndTime         = "end_time"
	FieldNotes           = "notes"
	FieldStatus          = "status"
	FieldSource          = "source"
	FieldReminderSent    = "reminder_sent"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

const (
	SourceOnline = "online"
	SourcePhone  = "phone"
	SourceWalkIn = "walk_in"
)

var Statuses = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow}

type Booking struct {
	ID              string    `db:"id"`
	ContactName     string    `db:"contact_name"`
	ContactPhone    string    `db:"contact_phone"`
	ContactEmail    string    `db:"contact_email"`
	ServiceID       string    `db:"service_id"`
	ServiceName     string    `db:"service_name"`
	ServiceDuration int       `db:"service_duration"`
	ProviderID      *string   `db:"provider_id"`
	ProviderName    string    `db:"provider_name"`
	BookingDate     time.Time `db:"booking_date"`
	StartTime       string    `db:"start_time"`
	EndTime         string    `db:"end_time"`
	Notes           string    `db:"notes"`
	Status          string    `db:"status"`
	Source          string    `db:"source"`
	ReminderSent    bool      `db:"reminder_sent"`
	model.Metadata
}

// Provider returns the assigned provider id, empty for "no preference".
func (b Booking) Provider() string {
	if b.ProviderID == nil {
		return constant.Empty
	}

	return *b.ProviderID
}

// Date returns booking_date as YYYY-MM-DD.
func (b Booking) Date() string {
	return b.BookingDate.Format(constant.DateOnly)
}

// ParseDate reads a YYYY-MM-DD calendar date anchored at UTC midnight, the form DATE columns round trip in.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(constant.DateOnly, value) //nolint:wrapcheck
}

// CalendarDate re-anchors t's calendar day at UTC midnight so it compares with ParseDate values.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
