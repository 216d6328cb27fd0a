package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"mehfil/config"
	"mehfil/infras/otel"
	expModel "mehfil/internal/domains/experience/model"
	expRepo "mehfil/internal/domains/experience/repository"
	"mehfil/internal/domains/feedback/model"
	"mehfil/internal/domains/feedback/model/dto"
	"mehfil/internal/domains/feedback/repository"
	"mehfil/shared"
	"mehfil/shared/cache"
	"mehfil/shared/constant"
	gDto "mehfil/shared/dto"
	"mehfil/shared/failure"
)

const (
	cacheFeedbacksByExperience = "feedback:experience"
)

type Feedback interface {
	Create(ctx context.Context, req dto.CreateFeedbackRequest) error
	GetByExperience(ctx context.Context, experienceID string, params gDto.QueryParams) (dto.GetFeedbacksResponse, error)
}

type serviceImpl struct {
	repo  repository.Feedback
	expo  expRepo.Experience
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Feedback, expo expRepo.Experience, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Feedback {
	return &serviceImpl{
		repo:  repo,
		expo:  expo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFeedbackRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exists, err := s.expo.Exist(ctx, shared.FilterByID(req.ExperienceID, expModel.FieldID, expModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if experience exists")

		return fmt.Errorf("failed to check if experience exists: %w", err)
	}

	if !exists {
		return failure.NotFound("experience not found") //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create feedback")

		return fmt.Errorf("failed to create feedback: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheFeedbacksByExperience)
	}()

	return nil
}

func (s *serviceImpl) GetByExperience(ctx context.Context, experienceID string, params gDto.QueryParams) (res dto.GetFeedbacksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByExperience")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(experienceID, model.FieldExperienceID, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheFeedbacksByExperience, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for feedbacks")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count feedbacks")

		return res, fmt.Errorf("failed to count feedbacks: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedbacks")

		return res, fmt.Errorf("failed to get feedbacks: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save feedbacks to cache")
		}
	}()

	return res, nil
}
