package report

import (
	"bytes"
	"hotel/infras/otel"
	"hotel/internal/domains/report/service"
	"hotel/shared/constant"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryParamFormat = "format"
	formatYAML       = "yaml"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/revenue", handler.GetRevenue)
	})
}

// GetRevenue reports the total booking revenue per hotel.
// @Summary Revenue per hotel
// @Description Sum of booking costs per hotel. Use format=yaml for the exported document.
// @Tags Report
// @Produce json
// @Produce application/yaml
// @Param format query string false "Response format (json, yaml)"
// @Success 200 {object} response.Data[dto.RevenueReport] "Revenue per hotel"
// @Failure 500 {object} response.Error
// @Router /v1/reports/revenue [get]
func (handler *Handler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenue")
	defer scope.End()

	if r.URL.Query().Get(queryParamFormat) == formatYAML {
		var document bytes.Buffer

		if err := handler.service.Export(ctx, &document); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to export revenue report")

			response.WithError(w, err)

			return
		}

		response.WithBody(w, http.StatusOK, constant.ContentTypeYAML, document.Bytes())

		return
	}

	report, err := handler.service.Revenue(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get revenue report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, report)
}
