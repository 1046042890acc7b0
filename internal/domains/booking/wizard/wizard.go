// Package wizard is the public booking flow as a typed state machine.
//
// A Wizard only ever holds choices that passed validation: each Choose*
// method validates its input before storing it, and forward navigation
// is gated by the current step's exit guard. The package is pure; the
// booking service loads a Wizard, applies one transition and saves it.
package wizard

import (
	"slices"
	"strings"
	"time"

	"clinic/internal/domains/booking/availability"
	"clinic/internal/domains/booking/model"
	"clinic/shared/failure"
)

type Step string

const (
	StepService   Step = "service"
	StepProvider  Step = "provider"
	StepDateTime  Step = "date_time"
	StepContact   Step = "contact"
	StepSubmitted Step = "submitted"
)

var steps = []Step{StepService, StepProvider, StepDateTime, StepContact, StepSubmitted}

var (
	ErrWrongStep        = failure.BadRequestFromString("this choice belongs to another step")
	ErrServiceRequired  = failure.BadRequestFromString("service is required")
	ErrServiceInvalid   = failure.BadRequestFromString("service must have a positive duration")
	ErrDateRequired     = failure.BadRequestFromString("date is required")
	ErrDateInvalid      = failure.BadRequestFromString("date must be in YYYY-MM-DD format")
	ErrDateInPast       = failure.BadRequestFromString("date must be today or later")
	ErrTimeRequired     = failure.BadRequestFromString("time is required")
	ErrTimeUnavailable  = failure.Conflict("selected time is not available")
	ErrSlotsUnavailable = failure.ServiceUnavailable("available times could not be loaded, please retry")
	ErrNameRequired     = failure.BadRequestFromString("name is required")
	ErrPhoneRequired    = failure.BadRequestFromString("phone is required")
	ErrCannotAdvance    = failure.BadRequestFromString("use submit to finish the booking")
	ErrCannotGoBack     = failure.BadRequestFromString("already at the first step")
	ErrAlreadySubmitted = failure.Conflict("booking already submitted")
	ErrIncomplete       = failure.BadRequestFromString("booking details are incomplete")
	ErrStaleRevision    = failure.Conflict("wizard state changed, reload")
)

// ServiceChoice snapshots the chosen service so later catalog edits do not change the booking.
type ServiceChoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
}

func NewServiceChoice(id, name string, duration int) (ServiceChoice, error) {
	if strings.TrimSpace(id) == "" {
		return ServiceChoice{}, ErrServiceRequired
	}

	if duration <= 0 {
		return ServiceChoice{}, ErrServiceInvalid
	}

	return ServiceChoice{ID: id, Name: name, Duration: duration}, nil
}

// ProviderChoice with an empty ID is "no preference".
type ProviderChoice struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

func (p ProviderChoice) NoPreference() bool {
	return p.ID == ""
}

// DateTimeChoice keeps the offered slots next to the chosen date. SlotsLoaded false with a Date set
// means the fetch failed and time selection is blocked until a reload succeeds.
type DateTimeChoice struct {
	Date        string   `json:"date,omitempty"`
	Time        string   `json:"time,omitempty"`
	Slots       []string `json:"slots"`
	SlotsLoaded bool     `json:"slots_loaded"`
}

type ContactChoice struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// NewContactChoice trims every field. Email and phone formats are not checked.
func NewContactChoice(name, phone, email, notes string) (ContactChoice, error) {
	contact := ContactChoice{
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
		Email: strings.TrimSpace(email),
		Notes: strings.TrimSpace(notes),
	}

	if contact.Name == "" {
		return ContactChoice{}, ErrNameRequired
	}

	if contact.Phone == "" {
		return ContactChoice{}, ErrPhoneRequired
	}

	return contact, nil
}

type Confirmation struct {
	BookingID string `json:"booking_id"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

type Wizard struct {
	ID           string          `json:"id"`
	Step         Step            `json:"step"`
	Revision     int             `json:"revision"`
	Service      *ServiceChoice  `json:"service,omitempty"`
	Provider     *ProviderChoice `json:"provider,omitempty"`
	Schedule     DateTimeChoice  `json:"schedule"`
	Contact      *ContactChoice  `json:"contact,omitempty"`
	Confirmation *Confirmation   `json:"confirmation,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func New(id string, now time.Time) Wizard {
	return Wizard{
		ID:        id,
		Step:      StepService,
		Schedule:  DateTimeChoice{Slots: []string{}},
		CreatedAt: now,
	}
}

func (w *Wizard) touch() {
	w.Revision++
}

// At refuses any edit outside the given step, and every edit once submitted.
func (w *Wizard) At(step Step) error {
	if w.Step == StepSubmitted {
		return ErrAlreadySubmitted
	}

	if w.Step != step {
		return ErrWrongStep
	}

	return nil
}

// CheckRevision refuses a request rendered from an older state. A nil revision skips the check.
func (w *Wizard) CheckRevision(revision *int) error {
	if revision != nil && *revision != w.Revision {
		return ErrStaleRevision
	}

	return nil
}

// clearTime drops the chosen time and the slots, which depend on service duration and provider.
func (w *Wizard) clearTime() {
	w.Schedule.Time = ""
	w.Schedule.Slots = []string{}
	w.Schedule.SlotsLoaded = false
}

func (w *Wizard) ChooseService(choice ServiceChoice) error {
	if err := w.At(StepService); err != nil {
		return err
	}

	if w.Service == nil || *w.Service != choice {
		w.clearTime()
	}

	w.Service = &choice
	w.touch()

	return nil
}

func (w *Wizard) ChooseProvider(choice ProviderChoice) error {
	if err := w.At(StepProvider); err != nil {
		return err
	}

	if w.Provider == nil || *w.Provider != choice {
		w.clearTime()
	}

	w.Provider = &choice
	w.touch()

	return nil
}

// ValidateDate parses a YYYY-MM-DD date and refuses days before today.
func ValidateDate(value string, today time.Time) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, ErrDateRequired
	}

	date, err := model.ParseDate(value)
	if err != nil {
		return time.Time{}, ErrDateInvalid
	}

	if date.Before(model.CalendarDate(today)) {
		return time.Time{}, ErrDateInPast
	}

	return date, nil
}

// ChooseDate sets the date with its freshly computed slots and clears any chosen time.
func (w *Wizard) ChooseDate(value string, today time.Time, slots []string) error {
	if err := w.At(StepDateTime); err != nil {
		return err
	}

	if _, err := ValidateDate(value, today); err != nil {
		return err
	}

	w.Schedule = DateTimeChoice{Date: value, Slots: nonNil(slots), SlotsLoaded: true}
	w.touch()

	return nil
}

// MarkSlotsUnavailable records a date whose bookings could not be read. No time can be chosen for it.
func (w *Wizard) MarkSlotsUnavailable(value string) error {
	if err := w.At(StepDateTime); err != nil {
		return err
	}

	w.Schedule = DateTimeChoice{Date: value, Slots: []string{}}
	w.touch()

	return nil
}

// ChooseTime accepts a time only if it is in the slots just computed for the current date.
func (w *Wizard) ChooseTime(value string, slots []string) error {
	if err := w.At(StepDateTime); err != nil {
		return err
	}

	if w.Schedule.Date == "" {
		return ErrDateRequired
	}

	if value == "" {
		return ErrTimeRequired
	}

	w.Schedule.Slots = nonNil(slots)
	w.Schedule.SlotsLoaded = true

	if !slices.Contains(w.Schedule.Slots, value) {
		w.Schedule.Time = ""
		w.touch()

		return ErrTimeUnavailable
	}

	w.Schedule.Time = value
	w.touch()

	return nil
}

func (w *Wizard) ChooseContact(choice ContactChoice) error {
	if err := w.At(StepContact); err != nil {
		return err
	}

	w.Contact = &choice
	w.touch()

	return nil
}

// Next leaves the current step once its exit guard holds.
func (w *Wizard) Next() error {
	switch w.Step {
	case StepService:
		if w.Service == nil {
			return ErrServiceRequired
		}
	case StepProvider:
		if w.Provider == nil {
			w.Provider = &ProviderChoice{}
		}
	case StepDateTime:
		if w.Schedule.Date == "" {
			return ErrDateRequired
		}

		if !w.Schedule.SlotsLoaded {
			return ErrSlotsUnavailable
		}

		if w.Schedule.Time == "" {
			return ErrTimeRequired
		}
	case StepContact:
		return ErrCannotAdvance
	case StepSubmitted:
		return ErrAlreadySubmitted
	}

	w.Step = steps[slices.Index(steps, w.Step)+1]
	w.touch()

	return nil
}

func (w *Wizard) Back() error {
	switch w.Step {
	case StepSubmitted:
		return ErrAlreadySubmitted
	case StepService:
		return ErrCannotGoBack
	}

	w.Step = steps[slices.Index(steps, w.Step)-1]
	w.touch()

	return nil
}

// Ready reports whether every field a booking needs is present.
func (w *Wizard) Ready() bool {
	return w.Service != nil &&
		w.Schedule.Date != "" &&
		w.Schedule.Time != "" &&
		w.Contact != nil &&
		w.Contact.Name != "" &&
		w.Contact.Phone != ""
}

// Payload assembles the pending online booking, computing its end time from the snapshotted duration.
// The date is checked against today again since a session may outlive the day it was filled in.
func (w *Wizard) Payload(today time.Time) (model.Booking, error) {
	if err := w.At(StepContact); err != nil {
		return model.Booking{}, err
	}

	if !w.Ready() {
		return model.Booking{}, ErrIncomplete
	}

	date, err := ValidateDate(w.Schedule.Date, today)
	if err != nil {
		return model.Booking{}, err
	}

	end, err := availability.EndTime(w.Schedule.Time, w.Service.Duration)
	if err != nil {
		return model.Booking{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	booking := model.Booking{
		ContactName:     w.Contact.Name,
		ContactPhone:    w.Contact.Phone,
		ContactEmail:    w.Contact.Email,
		ServiceID:       w.Service.ID,
		ServiceName:     w.Service.Name,
		ServiceDuration: w.Service.Duration,
		BookingDate:     date,
		StartTime:       w.Schedule.Time,
		EndTime:         end,
		Notes:           w.Contact.Notes,
		Status:          model.StatusPending,
		Source:          model.SourceOnline,
	}

	if w.Provider != nil && !w.Provider.NoPreference() {
		id := w.Provider.ID
		booking.ProviderID = &id
		booking.ProviderName = w.Provider.Name
	}

	return booking, nil
}

// Complete moves to the terminal Submitted step after the booking was persisted.
func (w *Wizard) Complete(booking model.Booking) error {
	if err := w.At(StepContact); err != nil {
		return err
	}

	w.Confirmation = &Confirmation{
		BookingID: booking.ID,
		EndTime:   booking.EndTime,
		Status:    booking.Status,
	}
	w.Step = StepSubmitted
	w.touch()

	return nil
}

func nonNil(slots []string) []string {
	if slots == nil {
		return []string{}
	}

	return slots
}
