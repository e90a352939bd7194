package api

import (
	"net/http"
	"time"

	"booking-system/airline/internal/auth"
	"booking-system/airline/internal/common"
	"booking-system/airline/internal/models/dtos"
)

// CreateBooking handles POST /api/bookings
func (h *Handlers) CreateBooking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.BookingReq
		if err := h.decodeAndValidate(r, &req); err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		booking, err := h.deps.Services.Bookings.CreateBooking(r.Context(), auth.GetUserClaims(r.Context()), req.FlightID, req.SeatID)
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Booking created", booking, http.StatusCreated)
	}
}

// GetBooking handles GET /api/bookings/{id}
func (h *Handlers) GetBooking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		booking, err := h.deps.Services.Bookings.GetBooking(r.Context(), auth.GetUserClaims(r.Context()), id)
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Booking fetched", booking)
	}
}
