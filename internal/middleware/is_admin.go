package middleware

import (
	"net/http"
	"time"

	"booking-system/airline/internal/auth"
	"booking-system/airline/internal/common"
	"booking-system/airline/internal/constants"
)

// IsAdminMiddleware must run after AuthMiddleware.
func IsAdminMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				common.RespondError(w, time.Now(), common.NewUnauthenticated(constants.MsgMissingToken))
				return
			}

			if !claims.IsAdmin() {
				common.RespondError(w, time.Now(), common.NewForbidden(constants.MsgAdminOnly))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
