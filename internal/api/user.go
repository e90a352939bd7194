package api

import (
	"net/http"
	"time"

	"booking-system/airline/internal/auth"
	"booking-system/airline/internal/common"
	"booking-system/airline/internal/constants"
	"booking-system/airline/internal/models/dtos"
)

// Register handles POST /api/users/register
//
// Responds with {username, email}; the identity token is in the auth-token header.
func (h *Handlers) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.RegisterUserReq
		if err := h.decodeAndValidate(r, &req); err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		user, token, err := h.deps.Services.Users.Register(r.Context(), req)
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		w.Header().Set(constants.HeaderAuthToken, token)
		common.RespondSuccess(w, initTime, "User registered successfully", dtos.RegisteredUser{
			Username: user.Username,
			Email:    user.Email,
		}, http.StatusCreated)
	}
}

// Login handles POST /api/users/login
func (h *Handlers) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.LoginReq
		if err := h.decodeAndValidate(r, &req); err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		_, token, err := h.deps.Services.Users.Login(r.Context(), req)
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		w.Header().Set(constants.HeaderAuthToken, token)
		common.RespondSuccess(w, initTime, "User logged in successfully", nil)
	}
}

// ValidateToken handles GET /api/users/validate-token. Reaching it means the
// auth middleware accepted the token.
func (h *Handlers) ValidateToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, common.NewUnauthenticated(constants.MsgMissingToken))
			return
		}

		common.RespondSuccess(w, initTime, "Token is valid", dtos.TokenStatus{
			Success: true,
			UserID:  claims.UserID(),
			IsAdmin: claims.IsAdmin(),
		})
	}
}
