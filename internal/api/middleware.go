package api

import (
	"context"
	"net/http"

	models "github.com/seatwise/seatwise/internal"
	"github.com/seatwise/seatwise/internal/ports"
	"github.com/seatwise/seatwise/internal/utils"
)

// AuthTokenHeader carries the session token on every authenticated call.
const AuthTokenHeader = "x-auth-token"

type contextKey int

const claimsContextKey contextKey = iota

func ClaimsFromContext(ctx context.Context) (models.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(models.Claims)
	return claims, ok
}

// RequireAuth verifies the session token and stashes its claims in the
// request context for the wrapped handler.
func RequireAuth(tokens ports.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.Header.Get(AuthTokenHeader)
		if tokenString == "" {
			ae := utils.NewUnauthorized(models.ErrUnauthenticated.Error())
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			ae := utils.NewUnauthorized(models.ErrUnauthenticated.Error())
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || claims.Role != models.RoleAdmin {
			ae := utils.NewForbidden(models.ErrForbidden.Error())
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		next(w, r)
	}
}

// RequireApprovedOperator admits approved flight operators and admins.
func RequireApprovedOperator(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			ae := utils.NewForbidden(models.ErrForbidden.Error())
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}

		operator := claims.Role == models.RoleFlightOperator && claims.Approval == models.ApprovalApproved
		if !operator && claims.Role != models.RoleAdmin {
			ae := utils.NewForbidden(models.ErrForbidden.Error())
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		next(w, r)
	}
}
