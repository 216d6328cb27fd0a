// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

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
	"mehfil/internal/domains/auth/service"
	repository2 "mehfil/internal/domains/booking/repository"
	service3 "mehfil/internal/domains/booking/service"
	"mehfil/internal/domains/experience/repository"
	service2 "mehfil/internal/domains/experience/service"
	repository3 "mehfil/internal/domains/feedback/repository"
	service4 "mehfil/internal/domains/feedback/service"
	"mehfil/internal/handlers/auth"
	"mehfil/internal/handlers/booking"
	"mehfil/internal/handlers/experience"
	"mehfil/internal/handlers/feedback"
	"mehfil/permissions"
	"mehfil/shared/cache"
	"mehfil/transport/http"
	"mehfil/transport/http/middleware"
	"mehfil/transport/http/router"
)

// Injectors from wire.go:

func InitializeService() (*http.HTTP, error) {
	configConfig := config.Get()
	otelOtel := otel.New(configConfig)
	jwtJWT := jwt.New(configConfig)
	serviceAuth := service.New(configConfig, otelOtel, jwtJWT)
	handler := auth.New(serviceAuth, otelOtel)
	connection := postgres.New(configConfig)
	repositoryExperience := repository.New(connection, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	fileStore, err := filestore.New(configConfig, otelOtel)
	if err != nil {
		return nil, err
	}
	serviceExperience := service2.New(repositoryExperience, configConfig, redisCache, otelOtel, fileStore)
	experienceHandler := experience.New(serviceExperience, otelOtel)
	repositoryBooking := repository2.New(connection, otelOtel)
	mailerMailer, err := mailer.New(configConfig, otelOtel)
	if err != nil {
		return nil, err
	}
	kafkaClient := kafka.New(configConfig)
	serviceBooking := service3.New(repositoryBooking, repositoryExperience, configConfig, redisCache, otelOtel, mailerMailer, kafkaClient)
	bookingHandler := booking.New(serviceBooking, otelOtel)
	repositoryFeedback := repository3.New(connection, otelOtel)
	serviceFeedback := service4.New(repositoryFeedback, repositoryExperience, configConfig, redisCache, otelOtel)
	feedbackHandler := feedback.New(serviceFeedback, otelOtel)
	domainHandlers := router.DomainHandlers{
		Auth:       handler,
		Experience: experienceHandler,
		Booking:    bookingHandler,
		Feedback:   feedbackHandler,
	}
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	permissionData := permissions.Get()
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, permissionData, configConfig)
	routerRouter := router.New(domainHandlers, appMiddleware, authRole)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware)
	return httpHTTP, nil
}

// wire.go:

var configurations = wire.NewSet(config.Get, permissions.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, filestore.New, mailer.New, kafka.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var experienceDomain = wire.NewSet(repository.New, service2.New)

var bookingDomain = wire.NewSet(repository2.New, service3.New)

var feedbackDomain = wire.NewSet(repository3.New, service4.New)

var authDomain = wire.NewSet(service.New)

var domains = wire.NewSet(
	experienceDomain,
	bookingDomain,
	feedbackDomain,
	authDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), auth.New, experience.New, booking.New, feedback.New, router.New)
