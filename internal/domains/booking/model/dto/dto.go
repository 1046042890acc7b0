package dto

import (
	"strings"

	"clinic/internal/domains/booking/model"
	"clinic/shared"
	gDto "clinic/shared/dto"
	gModel "clinic/shared/model"
	"clinic/shared/timezone"
)

type AvailabilityRequest struct {
	Date       string `json:"date"        validate:"required,isodate"`
	ServiceID  string `json:"service_id"  validate:"required"`
	ProviderID string `json:"provider_id" validate:"omitempty"`
}

type AvailabilityResponse struct {
	Date       string   `json:"date"`
	ServiceID  string   `json:"service_id"`
	ProviderID string   `json:"provider_id,omitempty"`
	Duration   int      `json:"duration"`
	Slots      []string `json:"slots"`
}

// CreateBookingRequest is the admin form. Email is length checked only.
type CreateBookingRequest struct {
	ContactName  string `json:"contact_name"  validate:"required,max=100"`
	ContactPhone string `json:"contact_phone" validate:"required,max=30"`
	ContactEmail string `json:"contact_email" validate:"omitempty,max=100"`
	ServiceID    string `json:"service_id"    validate:"required"`
	ProviderID   string `json:"provider_id"   validate:"omitempty"`
	BookingDate  string `json:"booking_date"  validate:"required,isodate"`
	StartTime    string `json:"start_time"    validate:"required,hhmm"`
	Notes        string `json:"notes"         validate:"omitempty,max=1000"`
	Status       string `json:"status"        validate:"omitempty,oneof=pending confirmed completed cancelled no_show"`
	Source       string `json:"source"        validate:"omitempty,oneof=online phone walk_in"`
	ReminderSent bool   `json:"reminder_sent"`
}

// ToModel fills the request fields. Service and provider snapshots and the end time are set by the caller.
func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	date, err := model.ParseDate(c.BookingDate)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	status := model.StatusConfirmed
	if c.Status != "" {
		status = c.Status
	}

	source := model.SourcePhone
	if c.Source != "" {
		source = c.Source
	}

	return model.Booking{
		ContactName:  strings.TrimSpace(c.ContactName),
		ContactPhone: strings.TrimSpace(c.ContactPhone),
		ContactEmail: strings.TrimSpace(c.ContactEmail),
		ServiceID:    c.ServiceID,
		ProviderID:   optional(c.ProviderID),
		BookingDate:  date,
		StartTime:    c.StartTime,
		Notes:        strings.TrimSpace(c.Notes),
		Status:       status,
		Source:       source,
		ReminderSent: c.ReminderSent,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}, nil
}

// UpdateBookingRequest replaces every editable field of a booking.
type UpdateBookingRequest struct {
	ContactName  string `json:"contact_name"  validate:"required,max=100"`
	ContactPhone string `json:"contact_phone" validate:"required,max=30"`
	ContactEmail string `json:"contact_email" validate:"omitempty,max=100"`
	ServiceID    string `json:"service_id"    validate:"required"`
	ProviderID   string `json:"provider_id"   validate:"omitempty"`
	BookingDate  string `json:"booking_date"  validate:"required,isodate"`
	StartTime    string `json:"start_time"    validate:"required,hhmm"`
	Notes        string `json:"notes"         validate:"omitempty,max=1000"`
	Status       string `json:"status"        validate:"required,oneof=pending confirmed completed cancelled no_show"`
	Source       string `json:"source"        validate:"required,oneof=online phone walk_in"`
	ReminderSent bool   `json:"reminder_sent"`
}

// Apply copies the request onto current, keeping id, snapshots and audit fields.
func (u *UpdateBookingRequest) Apply(current model.Booking) (model.Booking, error) {
	date, err := model.ParseDate(u.BookingDate)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	current.ContactName = strings.TrimSpace(u.ContactName)
	current.ContactPhone = strings.TrimSpace(u.ContactPhone)
	current.ContactEmail = strings.TrimSpace(u.ContactEmail)
	current.ServiceID = u.ServiceID
	current.ProviderID = optional(u.ProviderID)
	current.BookingDate = date
	current.StartTime = u.StartTime
	current.Notes = strings.TrimSpace(u.Notes)
	current.Status = u.Status
	current.Source = u.Source
	current.ReminderSent = u.ReminderSent

	return current, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled no_show"`
}

// AdminListRequest narrows the admin schedule. Date wins over the range; neither means today.
type AdminListRequest struct {
	Date     string `validate:"omitempty,isodate"`
	DateFrom string `validate:"omitempty,isodate"`
	DateTo   string `validate:"omitempty,isodate"`
	Query    string `validate:"omitempty,max=100"`
	Status   string `validate:"omitempty,oneof=pending confirmed completed cancelled no_show"`
}

type BookingResponse struct {
	ID              string  `json:"id"`
	ContactName     string  `json:"contact_name"`
	ContactPhone    string  `json:"contact_phone"`
	ContactEmail    string  `json:"contact_email,omitempty"`
	ServiceID       string  `json:"service_id"`
	ServiceName     string  `json:"service_name"`
	ServiceDuration int     `json:"service_duration"`
	ProviderID      *string `json:"provider_id"`
	ProviderName    string  `json:"provider_name,omitempty"`
	BookingDate     string  `json:"booking_date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	Notes           string  `json:"notes"`
	Status          string  `json:"status"`
	Source          string  `json:"source"`
	ReminderSent    bool    `json:"reminder_sent"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.ContactName = model.ContactName
	r.ContactPhone = model.ContactPhone
	r.ContactEmail = model.ContactEmail
	r.ServiceID = model.ServiceID
	r.ServiceName = model.ServiceName
	r.ServiceDuration = model.ServiceDuration
	r.ProviderID = model.ProviderID
	r.ProviderName = model.ProviderName
	r.BookingDate = model.Date()
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.Notes = model.Notes
	r.Status = model.Status
	r.Source = model.Source
	r.ReminderSent = model.ReminderSent
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	return &value
}
