package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"mehfil/config"
	"mehfil/infras/filestore"
	"mehfil/infras/otel"
	"mehfil/internal/domains/experience/model"
	"mehfil/internal/domains/experience/model/dto"
	"mehfil/internal/domains/experience/repository"
	"mehfil/shared"
	"mehfil/shared/cache"
	"mehfil/shared/constant"
	gDto "mehfil/shared/dto"
	"mehfil/shared/failure"
	"mehfil/shared/timezone"
)

const (
	cacheGetExperience    = "experience:get"
	cacheGetAllExperience = "experience:gets"
	cacheCountExperience  = "experience:count"
)

type Experience interface {
	Create(ctx context.Context, req dto.CreateExperienceRequest) (dto.ExperienceResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetExperiencesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ExperienceResponse, error)
	Update(ctx context.Context, req dto.UpdateExperienceRequest, id string) (dto.ExperienceResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateExperienceStatusRequest, id string) (dto.ExperienceResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Experience
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	filestore filestore.FileStore
}

func New(repo repository.Experience, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, filestore filestore.FileStore) Experience {
	return &serviceImpl{
		repo:      repo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		filestore: filestore,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateExperienceRequest) (res dto.ExperienceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	// An uploaded file wins over a URL given in the same request.
	imageURL := req.ImageURL

	if req.Image != nil {
		imageURL, err = s.filestore.Store(ctx, req.ImageFile, req.Image)
		if err != nil {
			log.Error().Err(err).Msg("failed to store experience image")

			return res, err
		}
	}

	if imageURL == constant.Empty {
		return res, failure.BadRequestFromString("an image file or image_url is required") //nolint:wrapcheck
	}

	experience, err := req.ToModel(imageURL, user)
	if err != nil {
		log.Error().Err(err).Msg("failed to build experience from request")

		return res, err
	}

	if err = s.repo.Insert(ctx, experience); err != nil {
		log.Error().Err(err).Msg("failed to create experience")

		return res, fmt.Errorf("failed to create experience: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllExperience)
		shared.InvalidateCaches(c, s.cache, cacheCountExperience)
	}()

	res.FromModel(experience)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetExperiencesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllExperience, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for experiences")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count experiences")

		return res, fmt.Errorf("failed to count experiences: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get experiences")

		return res, fmt.Errorf("failed to get experiences: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save experiences to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountExperience, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for experience count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count experiences")

		return res, fmt.Errorf("failed to count experiences: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save experience count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ExperienceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetExperience, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for experience")

		return res, nil
	}

	experience, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get experience")

		return res, fmt.Errorf("failed to get experience: %w", err)
	}

	if experience.ID == constant.Empty {
		return res, failure.NotFound("experience not found") //nolint:wrapcheck
	}

	res.FromModel(experience)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save experience to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateExperienceRequest, id string) (res dto.ExperienceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	existing, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get experience")

		return res, fmt.Errorf("failed to get experience: %w", err)
	}

	if existing.ID == constant.Empty {
		return res, failure.NotFound("experience not found") //nolint:wrapcheck
	}

	// Replacement keeps the previous file on disk, only the reference moves.
	imageURL := existing.ImageURL

	if req.Image != nil {
		imageURL, err = s.filestore.Store(ctx, req.ImageFile, req.Image)
		if err != nil {
			log.Error().Err(err).Msg("failed to store experience image")

			return res, err
		}
	} else if req.ImageURL != constant.Empty {
		imageURL = req.ImageURL
	}

	updatedFields, err := req.ToUpdateMap(imageURL, existing, user)
	if err != nil {
		log.Error().Err(err).Msg("failed to build update fields")

		return res, err
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update experience")

		return res, fmt.Errorf("failed to update experience: %w", err)
	}

	s.invalidateExperience(ctx, id)

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get updated experience")

		return res, fmt.Errorf("failed to get updated experience: %w", err)
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateExperienceStatusRequest, id string) (res dto.ExperienceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if experience exists")

		return res, fmt.Errorf("failed to check if experience exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("experience not found") //nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldIsActive:      *req.IsActive,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update experience status")

		return res, fmt.Errorf("failed to update experience status: %w", err)
	}

	s.invalidateExperience(ctx, id)

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get updated experience")

		return res, fmt.Errorf("failed to get updated experience: %w", err)
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	experience, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get experience")

		return fmt.Errorf("failed to get experience: %w", err)
	}

	if experience.ID == constant.Empty {
		return failure.NotFound("experience not found") //nolint:wrapcheck
	}

	// Locally owned files are removed before the row; external URLs are
	// referenced by value only and left untouched.
	if strings.HasPrefix(experience.ImageURL, constant.UploadsPublicPrefix) {
		if err = s.filestore.Remove(ctx, experience.ImageURL); err != nil {
			log.Error().Err(err).Msg("failed to remove experience image")

			return fmt.Errorf("failed to remove experience image: %w", err)
		}
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete experience")

		return fmt.Errorf("failed to delete experience: %w", err)
	}

	s.invalidateExperience(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateExperience(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetExperience, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete experience from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllExperience)
		shared.InvalidateCaches(c, s.cache, cacheCountExperience)
	}()
}
