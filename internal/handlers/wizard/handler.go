package wizard

import (
	"context"
	"net/http"

	"clinic/infras/otel"
	"clinic/internal/domains/booking/model/dto"
	"clinic/internal/domains/booking/service"
	"clinic/shared/constant"
	"clinic/shared/validator"
	"clinic/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Wizard
	otel    otel.Otel
}

func New(service service.Wizard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/wizard", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.Start)
		routerGroup.Get("/{id}", handler.Get)
		routerGroup.Put("/{id}/service", handler.SelectService)
		routerGroup.Put("/{id}/provider", handler.SelectProvider)
		routerGroup.Put("/{id}/date", handler.SelectDate)
		routerGroup.Put("/{id}/time", handler.SelectTime)
		routerGroup.Put("/{id}/contact", handler.SetContact)
		routerGroup.Post("/{id}/next", handler.Next)
		routerGroup.Post("/{id}/back", handler.Back)
		routerGroup.Post("/{id}/submit", handler.Submit)
	})
}

// run decodes a transition body, applies it and writes the resulting wizard state.
// Navigation bodies only carry the optional revision, so an empty body is accepted for them.
func run[T any](handler *Handler, w http.ResponseWriter, r *http.Request, span string, emptyBody bool,
	apply func(ctx context.Context, id string, req T) (dto.WizardResponse, error),
) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+span)
	defer scope.End()

	var req T

	if !emptyBody || r.ContentLength != 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}
	}

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := apply(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("wizard", id).Str("step", span).Msg("booking wizard transition refused")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Start opens a booking session on the service step.
// @Summary Start a booking
// @Tags Wizard
// @Produce json
// @Success 201 {object} response.Data[dto.WizardResponse]
// @Router /v1/wizard [post]
func (handler *Handler) Start(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".WizardStart")
	defer scope.End()

	res, err := handler.service.Start(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start booking wizard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// Get returns the session's current state.
// @Summary Get booking session
// @Tags Wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Data[dto.WizardResponse]
// @Failure 404 {object} response.Error
// @Router /v1/wizard/{id} [get]
func (handler *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".WizardGet")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// @Summary Choose the service
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SelectServiceRequest true "Service"
// @Success 200 {object} response.Data[dto.WizardResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/wizard/{id}/service [put]
func (handler *Handler) SelectService(w http.ResponseWriter, r *http.Request) {
	run(handler, w, r, "WizardSelectService", false, handler.service.SelectService)
}

// @Summary Choose a provider or no preference
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SelectProviderRequest true "Provider, empty for no preference"
// @Success 200 {object} response.Data[dto.WizardResponse]
// @Router /v1/wizard/{id}/provider [put]
func (handler *Handler) SelectProvider(w http.ResponseWriter, r *http.Request) {
	run(handler, w, r, "WizardSelectProvider", false, handler.service.SelectProvider)
}

// @Summary Choose a date and load its free times
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SelectDateRequest true "Date"
// @Success 200 {object} response.Data[dto.WizardResponse]
// @Failure 503 {object} response.Error
// @Router /v1/wizard/{id}/date [put]
func (handler *Handler) SelectDate(w http.ResponseWriter, r *http.Request) {
	run(handler, w, r, "WizardSelectDate", false, handler.service.SelectDate)
}

// @Summary Choose a start time
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SelectTimeRequest true "Time"
// @Success 200 {object} response.Data[dto.WizardResponse]
// @Failure 409 {object} response.Error
// @Router /v1/wizard/{id}/time [put]
func (handler *Handler) SelectTime(w http.ResponseWriter, r *http.Request) {
	run(handler, w, r, "WizardSelectTime", false, handler.service.SelectTime)
}

// @Summary Enter contact details
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ContactRequest true "Contact"
// @Success 200 {object} response.Data[dto.WizardResponse]
// @Failure 400 {object} response.Error
// @Router /v1/wizard/{id}/contact [put]
func (handler *Handler) SetContact(w http.ResponseWriter, r *http.Request) {
	run(handler, w, r, "WizardSetContact", false, handler.service.SetContact)
}

// @Summary Go to the next step
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.NavigateRequest false "Revision"
// @Success 200 {object} response.Data[dto.WizardResponse]
// @Router /v1/wizard/{id}/next [post]
func (handler *Handler) Next(w http.ResponseWriter, r *http.Request) {
	run(handler, w, r, "WizardNext", true, handler.service.Next)
}

// @Summary Go back one step
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.NavigateRequest false "Revision"
// @Success 200 {object} response.Data[dto.WizardResponse]
// @Router /v1/wizard/{id}/back [post]
func (handler *Handler) Back(w http.ResponseWriter, r *http.Request) {
	run(handler, w, r, "WizardBack", true, handler.service.Back)
}

// Submit books the session's choices. The response carries the confirmation.
// @Summary Submit the booking
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.NavigateRequest false "Revision"
// @Success 200 {object} response.Data[dto.WizardResponse]
// @Failure 409 {object} response.Error
// @Router /v1/wizard/{id}/submit [post]
func (handler *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	run(handler, w, r, "WizardSubmit", true, handler.service.Submit)
}
