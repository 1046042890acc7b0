package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"clinic/config"
	"clinic/infras/otel/mocks"
	catalogMocks "clinic/internal/domains/catalog/mocks"
	"clinic/internal/domains/catalog/model"
	"clinic/internal/domains/catalog/model/dto"
	"clinic/internal/domains/catalog/service"
	cacheMocks "clinic/shared/cache/mocks"
	gDto "clinic/shared/dto"
	"clinic/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (service.Catalog, *catalogMocks.MockCatalog, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestCatalogService_GetAll(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Service{
		{ID: "svc-1", Name: "Cleaning", Duration: 30, Price: 80, Category: "hygiene", Active: true},
		{ID: "svc-2", Name: "Filling", Duration: 45, Price: 150, Category: "restorative", Active: true},
	}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})
	require.NoError(t, err)

	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.Services, 2)
	assert.Equal(t, "Filling", res.Services[1].Name)
	assert.Equal(t, 45, res.Services[1].Duration)
}

func TestCatalogService_GetAllCacheHit(t *testing.T) {
	svc, _, mockCache := newService(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, value any) error {
			*value.(*dto.GetServicesResponse) = dto.GetServicesResponse{TotalData: 7, TotalPage: 1}

			return nil
		})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 7, res.TotalData)
}

func TestCatalogService_GetAllRepositoryError(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("connection refused"))

	_, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	assert.Error(t, err)
}

func TestCatalogService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *catalogMocks.MockCatalog)
		wantCode  int
	}{
		{
			name: "found",
			setupMock: func(repo *catalogMocks.MockCatalog) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Service{ID: "svc-1", Name: "Cleaning", Duration: 30}, nil)
			},
		},
		{
			name: "not found",
			setupMock: func(repo *catalogMocks.MockCatalog) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Service{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			setupMock: func(repo *catalogMocks.MockCatalog) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Service{}, errors.New("timeout"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newService(t)
			mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
			tt.setupMock(mockRepo)

			res, err := svc.Get(context.Background(), "svc-1")
			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, "Cleaning", res.Name)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestCatalogService_GetActive(t *testing.T) {
	tests := []struct {
		name     string
		stored   model.Service
		wantCode int
	}{
		{name: "active", stored: model.Service{ID: "svc-1", Duration: 30, Active: true}},
		{name: "inactive", stored: model.Service{ID: "svc-1", Duration: 30}, wantCode: http.StatusNotFound},
		{name: "missing", stored: model.Service{}, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newService(t)
			mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.stored, nil)

			res, err := svc.GetActive(context.Background(), "svc-1")
			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, 30, res.Duration)

				return
			}

			assert.True(t, failure.Is(err, tt.wantCode))
		})
	}
}
