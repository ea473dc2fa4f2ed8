package api

import (
	"net/http"

	models "github.com/seatwise/seatwise/internal"
	"github.com/seatwise/seatwise/internal/ports"
	"github.com/seatwise/seatwise/internal/utils"
	"github.com/seatwise/seatwise/internal/validator"
	"go.uber.org/zap"
)

func Register(service ports.AuthService, logger *zap.Logger) http.HandlerFunc {
	v := validator.NewCustomValidator()
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
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

		ans, err := service.Register(r.Context(), &req)
		if err != nil {
			renderError(w, r, logger, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusCreated, ans)
	}
}

func Login(service ports.AuthService, logger *zap.Logger) http.HandlerFunc {
	v := validator.NewCustomValidator()
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
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

		ans, err := service.Login(r.Context(), &req)
		if err != nil {
			renderError(w, r, logger, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, ans)
	}
}

func ApproveOperator(service ports.AuthService, logger *zap.Logger) http.HandlerFunc {
	return operatorAction(service, logger, true)
}

func RejectOperator(service ports.AuthService, logger *zap.Logger) http.HandlerFunc {
	return operatorAction(service, logger, false)
}

func operatorAction(service ports.AuthService, logger *zap.Logger, approve bool) http.HandlerFunc {
	v := validator.NewCustomValidator()
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.OperatorActionRequest
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

		var (
			user *models.User
			err  error
		)
		if approve {
			user, err = service.ApproveOperator(r.Context(), req.ID)
		} else {
			user, err = service.RejectOperator(r.Context(), req.ID)
		}
		if err != nil {
			renderError(w, r, logger, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, user)
	}
}

// FetchUser serves one user record; callers may read themselves, admins
// may read anyone.
func FetchUser(service ports.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		claims, _ := ClaimsFromContext(r.Context())
		if claims.Role != models.RoleAdmin && claims.UserID != id {
			ae := utils.NewForbidden(models.ErrForbidden.Error())
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		user, err := service.GetUser(r.Context(), id)
		if err != nil {
			renderError(w, r, logger, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, user)
	}
}

func FetchUsers(service ports.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := service.ListUsers(r.Context())
		if err != nil {
			renderError(w, r, logger, err)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, users)
	}
}
