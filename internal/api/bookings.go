package api

import (
	"net/http"

	models "github.com/seatwise/seatwise/internal"
	"github.com/seatwise/seatwise/internal/ports"
	"github.com/seatwise/seatwise/internal/utils"
	"github.com/seatwise/seatwise/internal/validator"
	"go.uber.org/zap"
)

func BookTicket(service ports.BookingService, logger *zap.Logger) http.HandlerFunc {
	v := validator.NewCustomValidator()
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.BookTicketRequest
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

		claims, _ := ClaimsFromContext(r.Context())
		booking, err := service.BookTicket(r.Context(), claims, &req)
		if err != nil {
			renderError(w, r, logger, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusCreated, booking)
	}
}

func CancelTicket(service ports.BookingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		booking, err := service.CancelTicket(r.Context(), claims, r.PathValue("id"))
		if err != nil {
			renderError(w, r, logger, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, booking)
	}
}

func FetchBookings(service ports.BookingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookings, err := service.AllBookings(r.Context())
		if err != nil {
			renderError(w, r, logger, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, bookings)
	}
}
