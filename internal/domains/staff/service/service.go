package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"clinic/config"
	"clinic/infras/otel"
	"clinic/internal/domains/staff/model"
	"clinic/internal/domains/staff/model/dto"
	"clinic/internal/domains/staff/repository"
	"clinic/shared"
	"clinic/shared/cache"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetStaff      = "staff:get"
	cacheGetAllStaff   = "staff:gets"
	cacheCountStaff    = "staff:count"
	cacheGetProviders  = "staff:providers"
	errProviderMissing = "provider not found"
)

type Staff interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetStaffResponse, error)
	Get(ctx context.Context, id string) (dto.StaffResponse, error)
	GetProviders(ctx context.Context) ([]dto.StaffResponse, error)
	GetProvider(ctx context.Context, id string) (model.Staff, error)
}

type serviceImpl struct {
	repo  repository.Staff
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Staff, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Staff {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetStaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllStaff, req, filter)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for staff")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count staff")

		return res, fmt.Errorf("failed to count staff: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return res, fmt.Errorf("failed to get staff: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.StaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetStaff, id)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	staff, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if staff.ID == constant.Empty {
		return res, failure.NotFound("staff not found") // nolint:wrapcheck
	}

	res.FromModel(staff)

	s.save(ctx, cacheKey, res)

	return res, nil
}

// GetProviders lists active dentists ordered by name, the choices offered by the booking flow.
func (s *serviceImpl) GetProviders(ctx context.Context) (res []dto.StaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.GetProviders")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err := s.cache.Get(ctx, cacheGetProviders, &res); err == nil {
		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRole, Value: model.RoleDentist, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldName, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get providers")

		return nil, fmt.Errorf("failed to get providers: %w", err)
	}

	res = make([]dto.StaffResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	s.save(ctx, cacheGetProviders, res)

	return res, nil
}

// GetProvider reads past the cache so a deactivated dentist is refused immediately.
func (s *serviceImpl) GetProvider(ctx context.Context, id string) (res model.Staff, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.GetProvider")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !res.IsProvider() {
		return model.Staff{}, failure.NotFound(errProviderMissing) // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Staff, error) {
	staff, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get staff")

		return staff, fmt.Errorf("failed to get staff: %w", err)
	}

	return staff, nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save staff to cache")
		}
	}()
}
