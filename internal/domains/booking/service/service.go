package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"mehfil/config"
	"mehfil/infras/kafka"
	"mehfil/infras/mailer"
	"mehfil/infras/otel"
	"mehfil/internal/domains/booking/model"
	"mehfil/internal/domains/booking/model/dto"
	"mehfil/internal/domains/booking/repository"
	expModel "mehfil/internal/domains/experience/model"
	expRepo "mehfil/internal/domains/experience/repository"
	"mehfil/shared"
	"mehfil/shared/cache"
	"mehfil/shared/constant"
	gDto "mehfil/shared/dto"
	"mehfil/shared/failure"
)

const (
	cacheBookingsByExperience = "booking:experience"
	cacheCountBooking         = "booking:count"

	bookingConfirmedMessage = "Booking confirmed. See you there!"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	GetByExperience(ctx context.Context, experienceID string, params gDto.QueryParams) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo   repository.Booking
	expo   expRepo.Experience
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
	mailer mailer.Mailer
	events kafka.Client
}

func New(repo repository.Booking, expo expRepo.Experience, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, mailer mailer.Mailer, events kafka.Client) Booking {
	return &serviceImpl{
		repo:   repo,
		expo:   expo,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
		mailer: mailer,
		events: events,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	experience, err := s.expo.Get(ctx, shared.FilterByID(req.ExperienceID, expModel.FieldID, expModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get experience for booking")

		return res, fmt.Errorf("failed to get experience for booking: %w", err)
	}

	if experience.ID == constant.Empty {
		return res, failure.NotFound("experience not found") //nolint:wrapcheck
	}

	booking := req.ToModel(user)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	// The booking is durable from here on. Confirmation mail and the
	// booking.created event are best effort and never fail the request.
	go s.notify(context.WithoutCancel(ctx), booking, experience)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheBookingsByExperience)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	res.Booking.FromModel(booking)
	res.Message = bookingConfirmedMessage

	return res, nil
}

func (s *serviceImpl) GetByExperience(ctx context.Context, experienceID string, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByExperience")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(experienceID, model.FieldExperienceID, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheBookingsByExperience, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) notify(ctx context.Context, booking model.Booking, experience expModel.Experience) {
	subject := fmt.Sprintf("Booking confirmed: %s", experience.Name)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour spot for %s is confirmed.\n\nDate: %s (%s)\nTime: %s\nFee: %.2f\n\nSee you there!",
		booking.FirstName,
		experience.Name,
		experience.Date.Format("2006-01-02"),
		experience.Day,
		experience.Time,
		experience.RegistrationFee,
	)

	if err := s.mailer.Send(ctx, booking.Email, subject, body); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to send booking confirmation")
	}

	if s.cfg.Kafka.Enable {
		message := kafka.Message{
			Key: booking.ID,
			Value: map[string]any{
				"booking_id":    booking.ID,
				"experience_id": booking.ExperienceID,
				"email":         booking.Email,
				"booked_at":     booking.BookingDate.Format(constant.DateFormat),
			},
		}

		if err := s.events.SendMessages(ctx, s.cfg.Kafka.BookingTopic, message); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking event")
		}
	}
}
