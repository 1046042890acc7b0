//go:build wireinject
// +build wireinject

package di

import (
	"clinic/config"
	"clinic/infras/jwt"
	"clinic/infras/kafka"
	"clinic/infras/metrics"
	"clinic/infras/otel"
	"clinic/infras/postgres"
	"clinic/infras/redis"
	"clinic/permissions"
	"clinic/shared/cache"
	"clinic/shared/lock"
	"clinic/transport/http"
	"clinic/transport/http/middleware"
	"clinic/transport/http/router"

	bookingRepository "clinic/internal/domains/booking/repository"
	bookingService "clinic/internal/domains/booking/service"
	catalogRepository "clinic/internal/domains/catalog/repository"
	catalogService "clinic/internal/domains/catalog/service"
	staffRepository "clinic/internal/domains/staff/repository"
	staffService "clinic/internal/domains/staff/service"
	bookingHandler "clinic/internal/handlers/booking"
	catalogHandler "clinic/internal/handlers/catalog"
	providerHandler "clinic/internal/handlers/provider"
	wizardHandler "clinic/internal/handlers/wizard"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	lock.NewRedisLocker,
)

var catalogDomain = wire.NewSet(
	catalogRepository.New,
	catalogService.New,
)

var staffDomain = wire.NewSet(
	staffRepository.New,
	staffService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewSession,
	bookingService.New,
	bookingService.NewNotifier,
	bookingService.NewWizard,
)

var domains = wire.NewSet(
	catalogDomain,
	staffDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	catalogHandler.New,
	providerHandler.New,
	bookingHandler.New,
	wizardHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
