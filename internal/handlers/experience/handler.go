package experience

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"mehfil/infras/otel"
	"mehfil/internal/domains/experience/model"
	"mehfil/internal/domains/experience/model/dto"
	"mehfil/internal/domains/experience/service"
	"mehfil/shared/constant"
	gDto "mehfil/shared/dto"
	"mehfil/shared/validator"
	"mehfil/transport/http/response"
)

type Handler struct {
	service service.Experience
	otel    otel.Otel
}

func New(service service.Experience, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/experiences", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetExperiences)
		routerGroup.Get("/active", handler.GetActiveExperiences)
		routerGroup.Get("/{id}", handler.GetExperienceByID)
		routerGroup.Post("/", handler.CreateExperience)
		routerGroup.Put("/{id}", handler.UpdateExperience)
		routerGroup.Patch("/{id}/status", handler.UpdateExperienceStatus)
		routerGroup.Delete("/{id}", handler.DeleteExperience)
	})
}

// GetExperiences retrieves all experiences sorted by date.
// @Summary Get all experiences
// @Description Retrieve all experiences sorted by scheduled date ascending.
// @Tags Experience
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetExperiencesResponse "List of experiences"
// @Failure 500 {object} response.Error
// @Router /v1/experiences [get]
// @Security BearerAuth
func (handler *Handler) GetExperiences(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExperiences")
	defer scope.End()

	queryParams := handler.queryParams(r)

	res, err := handler.service.GetAll(ctx, queryParams, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get experiences")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetActiveExperiences retrieves experiences visible to the public listing.
// @Summary Get active experiences
// @Description Retrieve experiences with is_active set, sorted by scheduled date ascending.
// @Tags Experience
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetExperiencesResponse "List of active experiences"
// @Failure 500 {object} response.Error
// @Router /v1/experiences/active [get]
func (handler *Handler) GetActiveExperiences(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveExperiences")
	defer scope.End()

	queryParams := handler.queryParams(r)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIsActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active experiences")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetExperienceByID retrieves a single experience.
// @Summary Get an experience by ID
// @Description Retrieve a single experience by its identifier.
// @Tags Experience
// @Accept json
// @Produce json
// @Param id path string true "Experience ID"
// @Success 200 {object} dto.ExperienceResponse "Experience details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/experiences/{id} [get]
func (handler *Handler) GetExperienceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExperienceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get experience")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateExperience handles the creation of a new experience.
// @Summary Create a new experience
// @Description Create an experience from a multipart form, with an optional image file.
// @Tags Experience
// @Accept multipart/form-data
// @Produce json
// @Param image formData file false "Image file"
// @Success 201 {object} dto.ExperienceResponse "Experience created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/experiences [post]
// @Security BearerAuth
func (handler *Handler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateExperience")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	req := dto.CreateExperienceRequest{}

	if err := req.FromForm(r); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read form values")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFieldImage)
	if err == nil {
		defer file.Close()

		req.Image = fileHeader
		req.ImageFile = file
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create experience")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Experience created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// UpdateExperience handles a full overwrite of an experience.
// @Summary Update an experience
// @Description Overwrite an experience from a multipart form, with an optional replacement image.
// @Tags Experience
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Experience ID"
// @Param image formData file false "Image file"
// @Success 200 {object} dto.ExperienceResponse "Experience updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/experiences/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateExperience")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	req := dto.UpdateExperienceRequest{}

	if err := req.FromForm(r); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read form values")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFieldImage)
	if err == nil {
		defer file.Close()

		req.Image = fileHeader
		req.ImageFile = file
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update experience")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateExperienceStatus toggles the public visibility of an experience.
// @Summary Update experience status
// @Description Set the is_active flag of an experience.
// @Tags Experience
// @Accept json
// @Produce json
// @Param id path string true "Experience ID"
// @Param request body dto.UpdateExperienceStatusRequest true "Update Status Request"
// @Success 200 {object} dto.ExperienceResponse "Experience status updated"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/experiences/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateExperienceStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateExperienceStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateExperienceStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpdateStatus(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update experience status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteExperience removes an experience and its locally stored image.
// @Summary Delete an experience
// @Description Delete an experience, removing its stored image file when locally hosted.
// @Tags Experience
// @Accept json
// @Produce json
// @Param id path string true "Experience ID"
// @Success 200 {object} response.Message "Experience deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/experiences/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteExperience")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete experience")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Experience deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Experience deleted successfully")
}

// Listings default to the schedule order.
func (handler *Handler) queryParams(r *http.Request) gDto.QueryParams {
	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	if queryParams.SortBy == constant.Empty {
		queryParams.SortBy = model.FieldDate
		queryParams.SortDir = "ASC"
	}

	return queryParams
}
