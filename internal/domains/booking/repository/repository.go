package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"clinic/infras/otel"
	"clinic/infras/postgres"
	"clinic/internal/domains/booking/model"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/failure"
	gRepo "clinic/shared/repository"
	"clinic/shared/timezone"

	"github.com/google/uuid"
)

type Booking interface {
	Create(ctx context.Context, booking model.Booking) (model.Booking, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	FindByDate(ctx context.Context, date string) ([]model.Booking, error)
	FindByDateForUpdate(ctx context.Context, date string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// Create assigns the id and inserts the booking. A taken slot surfaces as failure.SlotTakenError.
func (r *repositoryImpl) Create(ctx context.Context, booking model.Booking) (model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Create")
	defer scope.End()

	if booking.ID == constant.Empty {
		booking.ID = uuid.NewString()
	}

	now := timezone.Now()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}

	if booking.ModifiedAt.IsZero() {
		booking.ModifiedAt = now
	}

	if err := r.Insert(ctx, booking); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return model.Booking{}, failure.SlotTakenError
		}

		return model.Booking{}, fmt.Errorf("failed to create booking: %w", err)
	}

	return booking, nil
}

// Update maps a violated slot index to failure.SlotTakenError like Create does.
func (r *repositoryImpl) Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error {
	if err := r.Repository.Update(ctx, req, filter); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return failure.SlotTakenError
		}

		return err //nolint:wrapcheck
	}

	return nil
}

// FindByDate loads every booking of one calendar day, whatever its status, ordered by start time.
func (r *repositoryImpl) FindByDate(ctx context.Context, date string) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindByDate")
	defer scope.End()

	return r.findByDate(ctx, date, r.GetAll)
}

// FindByDateForUpdate is FindByDate against the write pool, for slot checks made while the date is locked.
func (r *repositoryImpl) FindByDateForUpdate(ctx context.Context, date string) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindByDateForUpdate")
	defer scope.End()

	return r.findByDate(ctx, date, r.GetAllPrimary)
}

type selectFunc func(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)

func (r *repositoryImpl) findByDate(ctx context.Context, date string, load selectFunc) ([]model.Booking, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingDate, Value: date, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	bookings, err := load(ctx, gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings by date: %w", err)
	}

	if bookings == nil {
		bookings = []model.Booking{}
	}

	return bookings, nil
}
