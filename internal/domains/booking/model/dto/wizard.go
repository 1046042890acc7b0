package dto

import (
	"slices"

	"clinic/internal/domains/booking/model"
	"clinic/internal/domains/booking/wizard"
	"clinic/shared/constant"
	"clinic/shared/timezone"
)

// Revision, when sent, must match the session's current revision.
type NavigateRequest struct {
	Revision *int `json:"revision"`
}

type SelectServiceRequest struct {
	ServiceID string `json:"service_id" validate:"required"`
	Revision  *int   `json:"revision"`
}

// SelectProviderRequest with an empty provider id means "no preference".
type SelectProviderRequest struct {
	ProviderID string `json:"provider_id" validate:"omitempty"`
	Revision   *int   `json:"revision"`
}

type SelectDateRequest struct {
	Date     string `json:"date"     validate:"required,isodate"`
	Revision *int   `json:"revision"`
}

type SelectTimeRequest struct {
	Time     string `json:"time"     validate:"required,hhmm"`
	Revision *int   `json:"revision"`
}

// ContactRequest only bounds lengths. Presence is checked after trimming, email and phone are free text.
type ContactRequest struct {
	Name     string `json:"name"     validate:"max=100"`
	Phone    string `json:"phone"    validate:"max=30"`
	Email    string `json:"email"    validate:"max=100"`
	Notes    string `json:"notes"    validate:"max=1000"`
	Revision *int   `json:"revision"`
}

type WizardResponse struct {
	ID           string                 `json:"id"`
	Step         wizard.Step            `json:"step"`
	Revision     int                    `json:"revision"`
	Service      *wizard.ServiceChoice  `json:"service"`
	Provider     *wizard.ProviderChoice `json:"provider"`
	Date         string                 `json:"date,omitempty"`
	Time         string                 `json:"time,omitempty"`
	Slots        []string               `json:"slots"`
	SlotsLoaded  bool                   `json:"slots_loaded"`
	Contact      *wizard.ContactChoice  `json:"contact"`
	Confirmation *wizard.Confirmation   `json:"confirmation"`
	CanGoBack    bool                   `json:"can_go_back"`
}

func (r *WizardResponse) FromWizard(w wizard.Wizard) {
	r.ID = w.ID
	r.Step = w.Step
	r.Revision = w.Revision
	r.Service = w.Service
	r.Provider = w.Provider
	r.Date = w.Schedule.Date
	r.Time = w.Schedule.Time
	r.Slots = slices.Clone(w.Schedule.Slots)
	r.SlotsLoaded = w.Schedule.SlotsLoaded
	r.Contact = w.Contact
	r.Confirmation = w.Confirmation
	r.CanGoBack = w.Step != wizard.StepService && w.Step != wizard.StepSubmitted

	if r.Slots == nil {
		r.Slots = []string{}
	}
}

// BookingCreatedEvent is the payload published once a public booking is stored.
type BookingCreatedEvent struct {
	BookingID    string `json:"booking_id"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email,omitempty"`
	ServiceName  string `json:"service_name"`
	ProviderName string `json:"provider_name,omitempty"`
	BookingDate  string `json:"booking_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Status       string `json:"status"`
	Source       string `json:"source"`
	CreatedAt    string `json:"created_at"`
}

func (e *BookingCreatedEvent) FromModel(booking model.Booking) {
	e.BookingID = booking.ID
	e.ContactName = booking.ContactName
	e.ContactPhone = booking.ContactPhone
	e.ContactEmail = booking.ContactEmail
	e.ServiceName = booking.ServiceName
	e.ProviderName = booking.ProviderName
	e.BookingDate = booking.Date()
	e.StartTime = booking.StartTime
	e.EndTime = booking.EndTime
	e.Status = booking.Status
	e.Source = booking.Source
	e.CreatedAt = timezone.Format(booking.CreatedAt, constant.DateFormat)
}
