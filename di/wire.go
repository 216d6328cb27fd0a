//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"mehfil/config"
	"mehfil/infras/filestore"
	"mehfil/infras/jwt"
	"mehfil/infras/kafka"
	"mehfil/infras/mailer"
	"mehfil/infras/otel"
	"mehfil/infras/postgres"
	"mehfil/infras/redis"
	"mehfil/permissions"
	"mehfil/shared/cache"
	"mehfil/transport/http"
	"mehfil/transport/http/middleware"
	"mehfil/transport/http/router"

	authService "mehfil/internal/domains/auth/service"
	bookingRepository "mehfil/internal/domains/booking/repository"
	bookingService "mehfil/internal/domains/booking/service"
	experienceRepository "mehfil/internal/domains/experience/repository"
	experienceService "mehfil/internal/domains/experience/service"
	feedbackRepository "mehfil/internal/domains/feedback/repository"
	feedbackService "mehfil/internal/domains/feedback/service"
	authHandler "mehfil/internal/handlers/auth"
	bookingHandler "mehfil/internal/handlers/booking"
	experienceHandler "mehfil/internal/handlers/experience"
	feedbackHandler "mehfil/internal/handlers/feedback"
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
	filestore.New,
	mailer.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var experienceDomain = wire.NewSet(
	experienceRepository.New,
	experienceService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var feedbackDomain = wire.NewSet(
	feedbackRepository.New,
	feedbackService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	experienceDomain,
	bookingDomain,
	feedbackDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	experienceHandler.New,
	bookingHandler.New,
	feedbackHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}
