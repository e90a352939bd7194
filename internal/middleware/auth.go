package middleware

import (
	"net/http"
	"strings"
	"time"

	"booking-system/airline/internal/auth"
	"booking-system/airline/internal/common"
	"booking-system/airline/internal/constants"
)

// AuthMiddleware verifies the identity token from the auth-token header or
// an Authorization: Bearer header and stores the claims on the context.
func AuthMiddleware(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				common.RespondError(w, time.Now(), common.NewUnauthenticated(constants.MsgMissingToken))
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				common.RespondError(w, time.Now(), common.NewUnauthenticated(constants.MsgInvalidToken))
				return
			}

			getRequestMeta(r.Context()).userID = claims.UserID()
			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(constants.HeaderAuthToken)); token != "" {
		return token
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}
