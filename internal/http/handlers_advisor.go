package http

import (
	"errors"
	"net/http"
	"strings"

	"finsight/internal/advisor"
	"finsight/internal/genflow"
	"finsight/internal/log"
	"finsight/internal/services"
)

// validRequest answers 400 when in would be refused before generation,
// so a client mistake is not reported as an upstream failure.
func validRequest(w http.ResponseWriter, d *genflow.Descriptor, in any) bool {
	err := genflow.ValidateInput(d, in)
	if err == nil {
		return true
	}
	NewJSONResponse().
		Status(http.StatusBadRequest).
		Body(ErrorBody{Error: "invalid request", Detail: validationDetail(err)}).
		Write(w)
	return false
}

func validationDetail(err error) string {
	var fe *genflow.FieldError
	if errors.As(err, &fe) {
		return fe.Error()
	}
	return err.Error()
}

// writeEnvelope answers 200 for a success envelope and 502 for a failure.
func writeEnvelope[T any](w http.ResponseWriter, env advisor.Envelope[T]) {
	status := http.StatusOK
	if !env.Success {
		status = http.StatusBadGateway
	}
	NewJSONResponse().Status(status).Body(env).Write(w)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	var req advisor.ForecastRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if !validRequest(w, advisor.ForecastRequestSchema, req) {
		return
	}
	writeEnvelope(w, s.dash.Forecast(r.Context(), req))
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	var req advisor.InsightsRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if !validRequest(w, advisor.InsightsRequestSchema, req) {
		return
	}
	writeEnvelope(w, s.dash.Insights(r.Context(), req))
}

func (s *Server) handleDashboardForecast(w http.ResponseWriter, r *http.Request) {
	var req dashboardForecastRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	if strings.TrimSpace(req.MarketTrends) == "" {
		NewJSONResponse().
			Status(http.StatusBadRequest).
			Body(ErrorBody{Error: "invalid request", Detail: "field marketTrends: text must not be blank"}).
			Write(w)
		return
	}

	env, err := s.dash.ForecastFromLedger(r.Context(), req.MarketTrends, req.Assumptions)
	if errors.Is(err, services.ErrNotEnoughData) {
		NewJSONResponse().
			Status(http.StatusUnprocessableEntity).
			Body(ErrorBody{
				Error:  "Not Enough Data",
				Detail: "Please add some transactions before generating a forecast.",
			}).
			Write(w)
		return
	}
	if err != nil {
		writeServiceError(w, r, log.OpForecast, err)
		return
	}
	writeEnvelope(w, env)
}

func (s *Server) handleDashboardInsights(w http.ResponseWriter, r *http.Request) {
	env, err := s.dash.InsightsFromLedger(r.Context())
	if err != nil {
		writeServiceError(w, r, log.OpInsights, err)
		return
	}
	writeEnvelope(w, env)
}
