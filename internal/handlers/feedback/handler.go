package feedback

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"mehfil/infras/otel"
	"mehfil/internal/domains/feedback/model/dto"
	"mehfil/internal/domains/feedback/service"
	"mehfil/shared/constant"
	gDto "mehfil/shared/dto"
	"mehfil/shared/validator"
	"mehfil/transport/http/response"
)

type Handler struct {
	service service.Feedback
	otel    otel.Otel
}

func New(service service.Feedback, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/feedbacks", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateFeedback)
		routerGroup.Get("/experience/{id}", handler.GetFeedbacksByExperience)
	})
}

// CreateFeedback captures a post-event survey submission.
// @Summary Create feedback
// @Description Record a post-event survey for an experience.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body dto.CreateFeedbackRequest true "Create Feedback Request"
// @Success 201 {object} response.Message "Feedback recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedbacks [post]
func (handler *Handler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFeedback")
	defer scope.End()

	req := dto.CreateFeedbackRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create feedback")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Feedback recorded successfully")
}

// GetFeedbacksByExperience returns survey answers for one experience.
// @Summary List feedback for an experience
// @Description Retrieve all survey answers recorded against the given experience.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path string true "Experience ID"
// @Success 200 {object} dto.GetFeedbacksResponse "List of feedback"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedbacks/experience/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetFeedbacksByExperience(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeedbacksByExperience")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetByExperience(ctx, id, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get feedbacks")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
