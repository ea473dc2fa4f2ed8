package api

import (
	"errors"
	"net/http"

	models "github.com/seatwise/seatwise/internal"
	"github.com/seatwise/seatwise/internal/utils"
	"go.uber.org/zap"
)

func getApiError(err error) utils.ApiError {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return utils.NewBadRequest(ve.Msg)
	}

	ae := utils.ApiError{Msg: err.Error()}
	switch {
	case errors.Is(err, models.ErrDuplicateUser),
		errors.Is(err, models.ErrInvalidRole),
		errors.Is(err, models.ErrNotOperator),
		errors.Is(err, models.ErrInsufficientSeats),
		errors.Is(err, models.ErrAlreadyCancelled):
		ae.StatusCode = http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrUnauthenticated):
		ae.StatusCode = http.StatusUnauthorized
	case errors.Is(err, models.ErrOperatorNotApproved),
		errors.Is(err, models.ErrForbidden):
		ae.StatusCode = http.StatusForbidden
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrFlightNotFound),
		errors.Is(err, models.ErrBookingNotFound):
		ae.StatusCode = http.StatusNotFound
	default:
		ae.StatusCode = http.StatusInternalServerError
	}
	return ae
}

// renderError maps a service error onto the wire. Unclassified faults go
// out as a bare 500; the detail stays in the server log.
func renderError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	ae := getApiError(err)
	if ae.StatusCode == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		ae.Msg = "internal server error"
	}
	utils.RenderResponse(r, w, ae.StatusCode, ae)
}
