package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"clinic/config"
	"clinic/infras/metrics"
	"clinic/infras/otel"
	"clinic/internal/domains/booking/availability"
	"clinic/internal/domains/booking/model"
	"clinic/internal/domains/booking/model/dto"
	"clinic/internal/domains/booking/repository"
	"clinic/internal/domains/booking/wizard"
	catalogService "clinic/internal/domains/catalog/service"
	staffService "clinic/internal/domains/staff/service"
	"clinic/shared"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/failure"
	"clinic/shared/lock"
	"clinic/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	lockKeyDate        = "booking"
	lockAttempts       = 5
	lockRetryDelay     = 50 * time.Millisecond
	defaultLockSeconds = 10
)

const (
	operationCreate = "create"
	operationUpdate = "update"
	operationStatus = "status"
)

var (
	errSlotsUnavailable = failure.ServiceUnavailable("available times could not be loaded, please retry")
	errScheduleBusy     = failure.ServiceUnavailable("schedule is busy, please retry")
	errDateInPast       = failure.BadRequestFromString("booking date must be today or later")
	errNotFound         = failure.NotFound("booking not found")
)

type Booking interface {
	Availability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	Slots(ctx context.Context, date, providerID string, duration int) ([]string, error)
	Book(ctx context.Context, booking model.Booking) (model.Booking, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	ListForDay(ctx context.Context, req gDto.QueryParams, list dto.AdminListRequest) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo    repository.Booking
	catalog catalogService.Catalog
	staff   staffService.Staff
	locker  lock.Locker
	cfg     *config.Config
	otel    otel.Otel
	metrics *metrics.Metrics
	hours   availability.ClinicHours
	mode    availability.Mode
}

func New(
	repo repository.Booking,
	catalog catalogService.Catalog,
	staff staffService.Staff,
	locker lock.Locker,
	cfg *config.Config,
	otel otel.Otel,
	metrics *metrics.Metrics,
) Booking {
	hours, err := availability.ParseClinicHours(cfg.App.Clinic.OpeningTime, cfg.App.Clinic.ClosingTime, cfg.App.Clinic.SlotMinutes)
	if err != nil {
		log.Error().Err(err).Msg("invalid clinic hours, using 08:00-20:00 every 30 minutes")

		hours = availability.DefaultClinicHours
	}

	mode, err := availability.ParseMode(cfg.App.Clinic.SlotMatch)
	if err != nil {
		log.Error().Err(err).Str("mode", cfg.App.Clinic.SlotMatch).Msg("invalid slot match mode, using overlap")

		mode = availability.ModeOverlap
	}

	return &serviceImpl{
		repo:    repo,
		catalog: catalog,
		staff:   staff,
		locker:  locker,
		cfg:     cfg,
		otel:    otel,
		metrics: metrics,
		hours:   hours,
		mode:    mode,
	}
}

func (s *serviceImpl) Availability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = wizard.ValidateDate(req.Date, timezone.Today()); err != nil {
		return res, err //nolint:wrapcheck
	}

	service, err := s.catalog.GetActive(ctx, req.ServiceID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if req.ProviderID != constant.Empty {
		if _, err = s.staff.GetProvider(ctx, req.ProviderID); err != nil {
			return res, err //nolint:wrapcheck
		}
	}

	slots, err := s.Slots(ctx, req.Date, req.ProviderID, service.Duration)
	if err != nil {
		return res, err
	}

	return dto.AvailabilityResponse{
		Date:       req.Date,
		ServiceID:  service.ID,
		ProviderID: req.ProviderID,
		Duration:   service.Duration,
		Slots:      slots,
	}, nil
}

// Slots recomputes a day's free start times from a fresh read. Results are never cached.
func (s *serviceImpl) Slots(ctx context.Context, date, providerID string, duration int) (res []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Slots")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	started := time.Now()

	bookings, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("failed to load bookings for availability")

		return nil, errSlotsUnavailable
	}

	res = availability.Slots(s.hours, s.query(providerID, duration), bookings)

	s.metrics.ObserveAvailability(started)

	return res, nil
}

func (s *serviceImpl) query(providerID string, duration int) availability.Query {
	return availability.Query{ProviderID: providerID, Duration: duration, Mode: s.mode}
}

// Book persists a fully assembled booking dated today or later. The date is locked while the slot
// is re-checked and written.
func (s *serviceImpl) Book(ctx context.Context, booking model.Booking) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Book")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if booking.BookingDate.Before(model.CalendarDate(timezone.Today())) {
		return res, errDateInPast
	}

	err = s.withDateLock(ctx, booking.Date(), func(ctx context.Context) error {
		if err := s.checkSlot(ctx, booking); err != nil {
			return err
		}

		created, err := s.repo.Create(ctx, booking)
		if err != nil {
			return err //nolint:wrapcheck
		}

		res = created

		return nil
	})
	if err != nil {
		if errors.Is(err, failure.SlotTakenError) {
			s.metrics.ObserveSlotConflict(operationCreate)

			return res, failure.SlotTakenError
		}

		log.Error().Err(err).Msg("failed to book")

		return res, fmt.Errorf("failed to book: %w", err)
	}

	s.metrics.ObserveBookingCreated(res.Source)

	return res, nil
}

// checkSlot refuses a holding booking whose start collides with another holding booking of the day.
func (s *serviceImpl) checkSlot(ctx context.Context, booking model.Booking) error {
	if !availability.HoldsSlot(booking.Status) {
		return nil
	}

	start, err := availability.ParseClock(booking.StartTime)
	if err != nil {
		return failure.BadRequest(err) //nolint:wrapcheck
	}

	bookings, err := s.repo.FindByDateForUpdate(ctx, booking.Date())
	if err != nil {
		return fmt.Errorf("failed to load bookings: %w", err)
	}

	if booking.ID != constant.Empty {
		bookings = slices.DeleteFunc(bookings, func(existing model.Booking) bool { return existing.ID == booking.ID })
	}

	if clash, taken := availability.Conflict(s.hours, s.query(booking.Provider(), booking.ServiceDuration), bookings, start); taken {
		log.Info().Str("date", booking.Date()).Str("start", booking.StartTime).Str("held_by", clash.ID).Msg("slot already held")

		return failure.SlotTakenError
	}

	return nil
}

// withDateLock serializes read-check-write sequences on one booking date.
func (s *serviceImpl) withDateLock(ctx context.Context, date string, fn func(ctx context.Context) error) error {
	ttl := time.Duration(s.cfg.App.Clinic.LockTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultLockSeconds * time.Second
	}

	err := lock.Do(ctx, s.locker, shared.BuildCacheKey(lockKeyDate, date), ttl, lockAttempts, lockRetryDelay, fn)
	if errors.Is(err, lock.ErrNotAcquired) {
		return errScheduleBusy
	}

	return err //nolint:wrapcheck
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	if booking.BookingDate.Before(model.CalendarDate(timezone.Today())) {
		return res, errDateInPast
	}

	if booking, err = s.snapshot(ctx, booking, true); err != nil {
		return res, err
	}

	created, err := s.Book(ctx, booking)
	if err != nil {
		return res, err
	}

	res.FromModel(created)

	return res, nil
}

// snapshot copies the service and provider names and the duration onto the booking and derives the end time.
func (s *serviceImpl) snapshot(ctx context.Context, booking model.Booking, refreshService bool) (model.Booking, error) {
	if refreshService {
		service, err := s.catalog.GetActive(ctx, booking.ServiceID)
		if err != nil {
			return booking, err //nolint:wrapcheck
		}

		booking.ServiceName = service.Name
		booking.ServiceDuration = service.Duration
	}

	booking.ProviderName = constant.Empty

	if booking.ProviderID != nil {
		provider, err := s.staff.GetProvider(ctx, *booking.ProviderID)
		if err != nil {
			return booking, err //nolint:wrapcheck
		}

		booking.ProviderName = provider.Name
	}

	end, err := availability.EndTime(booking.StartTime, booking.ServiceDuration)
	if err != nil {
		return booking, failure.BadRequest(err) //nolint:wrapcheck
	}

	booking.EndTime = end

	return booking, nil
}

// GetAll always reads the database. The schedule must show a booking as soon as Book returns.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// ListForDay is the admin schedule: one day (today by default) or a date range, earliest first.
func (s *serviceImpl) ListForDay(ctx context.Context, req gDto.QueryParams, list dto.AdminListRequest) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ListForDay")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.And()

	switch {
	case list.Date != constant.Empty:
		filter.Add(gDto.Filter{Field: model.FieldBookingDate, Value: list.Date, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	case list.DateFrom != constant.Empty || list.DateTo != constant.Empty:
		if list.DateFrom != constant.Empty {
			filter.Add(gDto.Filter{
				Field: model.FieldBookingDate, ArgName: constant.RequestParamDateFrom, Value: list.DateFrom,
				Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName,
			})
		}

		if list.DateTo != constant.Empty {
			filter.Add(gDto.Filter{
				Field: model.FieldBookingDate, ArgName: constant.RequestParamDateTo, Value: list.DateTo,
				Operator: gDto.FilterOperatorLessEq, Table: model.TableName,
			})
		}
	default:
		filter.Add(gDto.Filter{
			Field: model.FieldBookingDate, Value: timezone.Today().Format(constant.DateOnly),
			Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	if list.Query != constant.Empty {
		filter.Add(gDto.Or(
			gDto.Filter{Field: model.FieldContactName, ArgName: "q_name", Value: list.Query, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			gDto.Filter{Field: model.FieldContactPhone, ArgName: "q_phone", Value: list.Query, Operator: gDto.FilterOperatorLike, Table: model.TableName},
		))
	}

	if list.Status != constant.Empty {
		filter.Add(gDto.Filter{Field: model.FieldStatus, Value: list.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	req.SortBy = model.FieldBookingDate + "," + model.FieldStartTime
	req.SortDir = gDto.SortDirAsc

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, errNotFound
	}

	return booking, nil
}

// Update replaces the editable fields. The end time follows a new start or service; otherwise it is kept.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	updated, err := req.Apply(current)
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	serviceChanged := updated.ServiceID != current.ServiceID

	if serviceChanged || updated.StartTime != current.StartTime || updated.Provider() != current.Provider() {
		if updated, err = s.snapshot(ctx, updated, serviceChanged); err != nil {
			return res, err
		}
	}

	updated.Touch(user, timezone.Now())

	err = s.withDateLock(ctx, updated.Date(), func(ctx context.Context) error {
		if err := s.checkSlot(ctx, updated); err != nil {
			return err
		}

		return s.repo.Update(ctx, fields(updated), shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
	})
	if err != nil {
		if errors.Is(err, failure.SlotTakenError) {
			s.metrics.ObserveSlotConflict(operationUpdate)

			return res, failure.SlotTakenError
		}

		log.Error().Err(err).Str("id", id).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	res.FromModel(updated)

	return res, nil
}

// UpdateStatus allows any transition. Moving back into a slot-holding status re-checks the slot.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if current.Status == req.Status {
		return nil
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	update := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	write := func(ctx context.Context) error {
		return s.repo.Update(ctx, update, filter) //nolint:wrapcheck
	}

	if !availability.HoldsSlot(current.Status) && availability.HoldsSlot(req.Status) {
		revived := current
		revived.Status = req.Status

		err = s.withDateLock(ctx, current.Date(), func(ctx context.Context) error {
			if err := s.checkSlot(ctx, revived); err != nil {
				return err
			}

			return write(ctx)
		})
	} else {
		err = write(ctx)
	}

	if err != nil {
		if errors.Is(err, failure.SlotTakenError) {
			s.metrics.ObserveSlotConflict(operationStatus)

			return failure.SlotTakenError
		}

		log.Error().Err(err).Str("id", id).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return errNotFound
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	return nil
}

// fields lists every column a full edit writes.
func fields(booking model.Booking) map[string]any {
	return map[string]any{
		model.FieldContactName:     booking.ContactName,
		model.FieldContactPhone:    booking.ContactPhone,
		model.FieldContactEmail:    booking.ContactEmail,
		model.FieldServiceID:       booking.ServiceID,
		model.FieldServiceName:     booking.ServiceName,
		model.FieldServiceDuration: booking.ServiceDuration,
		model.FieldProviderID:      booking.ProviderID,
		model.FieldProviderName:    booking.ProviderName,
		model.FieldBookingDate:     booking.BookingDate,
		model.FieldStartTime:       booking.StartTime,
		model.FieldEndTime:         booking.EndTime,
		model.FieldNotes:           booking.Notes,
		model.FieldStatus:          booking.Status,
		model.FieldSource:          booking.Source,
		model.FieldReminderSent:    booking.ReminderSent,
		constant.FieldModifiedAt:   booking.ModifiedAt,
		constant.FieldModifiedBy:   booking.ModifiedBy,
	}
}
