package service

//go:generate go run go.uber.org/mock/mockgen -source=./wizard.go -destination=./mocks/wizard_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic/config"
	"clinic/infras/metrics"
	"clinic/infras/otel"
	"clinic/internal/domains/booking/model"
	"clinic/internal/domains/booking/model/dto"
	"clinic/internal/domains/booking/repository"
	"clinic/internal/domains/booking/wizard"
	catalogService "clinic/internal/domains/catalog/service"
	staffService "clinic/internal/domains/staff/service"
	"clinic/shared"
	"clinic/shared/constant"
	"clinic/shared/failure"
	"clinic/shared/lock"
	"clinic/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	lockKeySession        = "wizard"
	sessionLockTTL        = 30 * time.Second
	defaultSessionSeconds = 1800
	notificationSent      = "sent"
	notificationFailed    = "failed"
)

var (
	errSubmitInProgress = failure.Conflict("submission already in progress")
	errSessionBusy      = failure.Conflict("wizard is being updated, reload")
)

// Wizard drives the public booking flow. Each call locks the session, loads it, applies one transition
// and saves it.
type Wizard interface {
	Start(ctx context.Context) (dto.WizardResponse, error)
	Get(ctx context.Context, id string) (dto.WizardResponse, error)
	SelectService(ctx context.Context, id string, req dto.SelectServiceRequest) (dto.WizardResponse, error)
	SelectProvider(ctx context.Context, id string, req dto.SelectProviderRequest) (dto.WizardResponse, error)
	SelectDate(ctx context.Context, id string, req dto.SelectDateRequest) (dto.WizardResponse, error)
	SelectTime(ctx context.Context, id string, req dto.SelectTimeRequest) (dto.WizardResponse, error)
	SetContact(ctx context.Context, id string, req dto.ContactRequest) (dto.WizardResponse, error)
	Next(ctx context.Context, id string, req dto.NavigateRequest) (dto.WizardResponse, error)
	Back(ctx context.Context, id string, req dto.NavigateRequest) (dto.WizardResponse, error)
	Submit(ctx context.Context, id string, req dto.NavigateRequest) (dto.WizardResponse, error)
}

type wizardImpl struct {
	sessions repository.Session
	bookings Booking
	catalog  catalogService.Catalog
	staff    staffService.Staff
	notifier Notifier
	locker   lock.Locker
	cfg      *config.Config
	otel     otel.Otel
	metrics  *metrics.Metrics
}

func NewWizard(
	sessions repository.Session,
	bookings Booking,
	catalog catalogService.Catalog,
	staff staffService.Staff,
	notifier Notifier,
	locker lock.Locker,
	cfg *config.Config,
	otel otel.Otel,
	metrics *metrics.Metrics,
) Wizard {
	return &wizardImpl{
		sessions: sessions,
		bookings: bookings,
		catalog:  catalog,
		staff:    staff,
		notifier: notifier,
		locker:   locker,
		cfg:      cfg,
		otel:     otel,
		metrics:  metrics,
	}
}

func (s *wizardImpl) ttl() int {
	if s.cfg.App.Wizard.SessionTTLSeconds <= 0 {
		return defaultSessionSeconds
	}

	return s.cfg.App.Wizard.SessionTTLSeconds
}

func (s *wizardImpl) Start(ctx context.Context) (res dto.WizardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".wizard.Start")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	w := wizard.New(uuid.NewString(), timezone.Now())

	if err = s.sessions.Save(ctx, w, s.ttl()); err != nil {
		log.Error().Err(err).Msg("failed to start booking wizard")

		return res, fmt.Errorf("failed to start booking wizard: %w", err)
	}

	s.metrics.ObserveWizardStep(string(w.Step))
	res.FromWizard(w)

	return res, nil
}

func (s *wizardImpl) Get(ctx context.Context, id string) (res dto.WizardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".wizard.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	w, err := s.sessions.Get(ctx, id)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromWizard(w)

	return res, nil
}

// withSession holds the session lock around fn. attempts of 1 fails fast when the lock is taken.
func (s *wizardImpl) withSession(ctx context.Context, id string, attempts int, busy error, fn func(ctx context.Context) error) error {
	err := lock.Do(ctx, s.locker, shared.BuildCacheKey(lockKeySession, id), sessionLockTTL, attempts, lockRetryDelay, fn)
	if errors.Is(err, lock.ErrNotAcquired) {
		return busy
	}

	return err //nolint:wrapcheck
}

// apply runs one transition under the session lock. Whatever the transition changed is saved even
// when it also reports an error, so refreshed slots and a failed slot load survive into the next request.
func (s *wizardImpl) apply(ctx context.Context, id string, revision *int, transition func(ctx context.Context, w *wizard.Wizard) error) (res dto.WizardResponse, err error) {
	var transitionErr error

	err = s.withSession(ctx, id, lockAttempts, errSessionBusy, func(ctx context.Context) error {
		w, err := s.sessions.Get(ctx, id)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if err = w.CheckRevision(revision); err != nil {
			return err //nolint:wrapcheck
		}

		revisionBefore, stepBefore := w.Revision, w.Step

		transitionErr = transition(ctx, &w)

		if w.Revision != revisionBefore {
			if err = s.sessions.Save(ctx, w, s.ttl()); err != nil {
				log.Error().Err(err).Str("wizard", id).Msg("failed to save booking wizard")

				return fmt.Errorf("failed to save booking wizard: %w", err)
			}
		}

		if w.Step != stepBefore {
			s.metrics.ObserveWizardStep(string(w.Step))
		}

		res.FromWizard(w)

		return nil
	})
	if err != nil {
		return dto.WizardResponse{}, err
	}

	if transitionErr != nil {
		return dto.WizardResponse{}, transitionErr
	}

	return res, nil
}

func (s *wizardImpl) SelectService(ctx context.Context, id string, req dto.SelectServiceRequest) (res dto.WizardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".wizard.SelectService")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.apply(ctx, id, req.Revision, func(ctx context.Context, w *wizard.Wizard) error {
		if err := w.At(wizard.StepService); err != nil {
			return err //nolint:wrapcheck
		}

		service, err := s.catalog.GetActive(ctx, req.ServiceID)
		if err != nil {
			return err //nolint:wrapcheck
		}

		choice, err := wizard.NewServiceChoice(service.ID, service.Name, service.Duration)
		if err != nil {
			return err //nolint:wrapcheck
		}

		return w.ChooseService(choice) //nolint:wrapcheck
	})
}

func (s *wizardImpl) SelectProvider(ctx context.Context, id string, req dto.SelectProviderRequest) (res dto.WizardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".wizard.SelectProvider")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.apply(ctx, id, req.Revision, func(ctx context.Context, w *wizard.Wizard) error {
		if err := w.At(wizard.StepProvider); err != nil {
			return err //nolint:wrapcheck
		}

		choice := wizard.ProviderChoice{}

		if req.ProviderID != constant.Empty {
			provider, err := s.staff.GetProvider(ctx, req.ProviderID)
			if err != nil {
				return err //nolint:wrapcheck
			}

			choice = wizard.ProviderChoice{ID: provider.ID, Name: provider.Name}
		}

		return w.ChooseProvider(choice) //nolint:wrapcheck
	})
}

func (s *wizardImpl) SelectDate(ctx context.Context, id string, req dto.SelectDateRequest) (res dto.WizardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".wizard.SelectDate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.apply(ctx, id, req.Revision, func(ctx context.Context, w *wizard.Wizard) error {
		if err := w.At(wizard.StepDateTime); err != nil {
			return err //nolint:wrapcheck
		}

		today := timezone.Today()

		if _, err := wizard.ValidateDate(req.Date, today); err != nil {
			return err //nolint:wrapcheck
		}

		slots, err := s.slots(ctx, w, req.Date)
		if err != nil {
			return err
		}

		return w.ChooseDate(req.Date, today, slots) //nolint:wrapcheck
	})
}

func (s *wizardImpl) SelectTime(ctx context.Context, id string, req dto.SelectTimeRequest) (res dto.WizardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".wizard.SelectTime")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.apply(ctx, id, req.Revision, func(ctx context.Context, w *wizard.Wizard) error {
		if err := w.At(wizard.StepDateTime); err != nil {
			return err //nolint:wrapcheck
		}

		if w.Schedule.Date == constant.Empty {
			return wizard.ErrDateRequired
		}

		slots, err := s.slots(ctx, w, w.Schedule.Date)
		if err != nil {
			return err
		}

		return w.ChooseTime(req.Time, slots) //nolint:wrapcheck
	})
}

// slots computes the offered times for the wizard's service and provider. A failed read marks
// the date as unavailable so time selection stays blocked until a reload succeeds.
func (s *wizardImpl) slots(ctx context.Context, w *wizard.Wizard, date string) ([]string, error) {
	providerID := constant.Empty
	if w.Provider != nil {
		providerID = w.Provider.ID
	}

	slots, err := s.bookings.Slots(ctx, date, providerID, w.Service.Duration)
	if err != nil {
		log.Error().Err(err).Str("wizard", w.ID).Str("date", date).Msg("failed to load available times")

		if markErr := w.MarkSlotsUnavailable(date); markErr != nil {
			return nil, markErr //nolint:wrapcheck
		}

		return nil, wizard.ErrSlotsUnavailable
	}

	return slots, nil
}

func (s *wizardImpl) SetContact(ctx context.Context, id string, req dto.ContactRequest) (res dto.WizardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".wizard.SetContact")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.apply(ctx, id, req.Revision, func(_ context.Context, w *wizard.Wizard) error {
		if err := w.At(wizard.StepContact); err != nil {
			return err //nolint:wrapcheck
		}

		contact, err := wizard.NewContactChoice(req.Name, req.Phone, req.Email, req.Notes)
		if err != nil {
			return err //nolint:wrapcheck
		}

		return w.ChooseContact(contact) //nolint:wrapcheck
	})
}

func (s *wizardImpl) Next(ctx context.Context, id string, req dto.NavigateRequest) (res dto.WizardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".wizard.Next")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.apply(ctx, id, req.Revision, func(_ context.Context, w *wizard.Wizard) error {
		return w.Next() //nolint:wrapcheck
	})
}

func (s *wizardImpl) Back(ctx context.Context, id string, req dto.NavigateRequest) (res dto.WizardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".wizard.Back")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.apply(ctx, id, req.Revision, func(_ context.Context, w *wizard.Wizard) error {
		return w.Back() //nolint:wrapcheck
	})
}

// Submit books the session's choices once. A second submit of the same session, concurrent or
// later, is refused with a conflict; a failed booking leaves the session on the contact step.
func (s *wizardImpl) Submit(ctx context.Context, id string, req dto.NavigateRequest) (res dto.WizardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".wizard.Submit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.withSession(ctx, id, 1, errSubmitInProgress, func(ctx context.Context) error {
		w, err := s.sessions.Get(ctx, id)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if err = w.CheckRevision(req.Revision); err != nil {
			return err //nolint:wrapcheck
		}

		payload, err := w.Payload(timezone.Today())
		if err != nil {
			return err //nolint:wrapcheck
		}

		booking, err := s.bookings.Book(ctx, payload)
		if err != nil {
			log.Error().Err(err).Str("wizard", id).Msg("failed to submit booking wizard")

			return err //nolint:wrapcheck
		}

		if err = w.Complete(booking); err != nil {
			return err //nolint:wrapcheck
		}

		// The booking exists; a lost session save only costs the client its confirmation screen.
		if saveErr := s.sessions.Save(ctx, w, s.ttl()); saveErr != nil {
			log.Error().Err(saveErr).Str("wizard", id).Str("booking", booking.ID).Msg("failed to save submitted booking wizard")
		}

		s.metrics.ObserveWizardStep(string(w.Step))
		s.notify(ctx, booking)

		res.FromWizard(w)

		return nil
	})
	if err != nil {
		return dto.WizardResponse{}, err
	}

	return res, nil
}

// notify publishes in the background. Failures are logged and counted, never returned.
func (s *wizardImpl) notify(ctx context.Context, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.notifier.BookingCreated(c, booking); err != nil {
			log.Error().Err(err).Str("booking", booking.ID).Msg("failed to send booking notification")
			s.metrics.ObserveNotification(notificationFailed)

			return
		}

		s.metrics.ObserveNotification(notificationSent)
	}()
}
