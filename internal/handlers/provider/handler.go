package provider

import (
	"net/http"

	"clinic/infras/otel"
	"clinic/internal/domains/staff/model/dto"
	"clinic/internal/domains/staff/service"
	"clinic/shared/constant"
	"clinic/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Staff
	otel    otel.Otel
}

func New(service service.Staff, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/providers", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetProviders)
		routerGroup.Get("/{id}", handler.GetProviderByID)
	})
}

// GetProviders lists the dentists a patient can pick in the booking flow.
// @Summary List providers
// @Tags Provider
// @Produce json
// @Success 200 {object} response.Data[[]dto.StaffResponse]
// @Failure 500 {object} response.Error
// @Router /v1/providers [get]
func (handler *Handler) GetProviders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProviders")
	defer scope.End()

	providers, err := handler.service.GetProviders(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get providers")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, providers)
}

// GetProviderByID returns one selectable provider; inactive staff and non-dentists are not found.
// @Summary Get a provider
// @Tags Provider
// @Produce json
// @Param id path string true "Provider ID"
// @Success 200 {object} response.Data[dto.StaffResponse]
// @Failure 404 {object} response.Error
// @Router /v1/providers/{id} [get]
func (handler *Handler) GetProviderByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProviderByID")
	defer scope.End()

	provider, err := handler.service.GetProvider(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get provider by ID")

		response.WithError(w, err)

		return
	}

	res := dto.StaffResponse{}
	res.FromModel(provider)

	response.WithJSON(w, http.StatusOK, res)
}
