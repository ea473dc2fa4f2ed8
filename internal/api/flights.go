package api

import (
	"net/http"

	models "github.com/seatwise/seatwise/internal"
	"github.com/seatwise/seatwise/internal/ports"
	"github.com/seatwise/seatwise/internal/utils"
	"github.com/seatwise/seatwise/internal/validator"
	"go.uber.org/zap"
)

func AddFlight(service ports.FlightService, logger *zap.Logger) http.HandlerFunc {
	v := validator.NewCustomValidator()
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AddFlightRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			ae := utils.NewBadRequest("error json decoding body")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		if err := v.Validate(req); err != nil {
			ae := utils.NewBadRequest(err.Error())
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		flight, err := service.AddFlight(r.Context(), &req)
		if err != nil {
			renderError(w, r, logger, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusCreated, flight)
	}
}

func UpdateFlight(service ports.FlightService, logger *zap.Logger) http.HandlerFunc {
	v := validator.NewCustomValidator()
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UpdateFlightRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			ae := utils.NewBadRequest("error json decoding body")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		if err := v.Validate(req); err != nil {
			ae := utils.NewBadRequest(err.Error())
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		flight, err := service.UpdateFlight(r.Context(), &req)
		if err != nil {
			renderError(w, r, logger, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, flight)
	}
}

func FetchFlight(service ports.FlightService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flight, err := service.GetFlight(r.Context(), r.PathValue("id"))
		if err != nil {
			renderError(w, r, logger, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, flight)
	}
}

func FetchFlights(service ports.FlightService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flights, err := service.ListFlights(r.Context())
		if err != nil {
			renderError(w, r, logger, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, flights)
	}
}
