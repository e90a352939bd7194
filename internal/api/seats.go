package api

import (
	"net/http"
	"time"

	"booking-system/airline/internal/auth"
	"booking-system/airline/internal/common"
	"booking-system/airline/internal/models/dtos"
)

// ListSeatsForFlightOnDate handles GET /api/seats/{flight_id}/{date}
func (h *Handlers) ListSeatsForFlightOnDate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		flightID, err := pathID(r, "flight_id")
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		date, err := pathDate(r, "date")
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		seats, err := h.deps.Services.Seats.ListForFlightOnDate(r.Context(), flightID, date)
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Seats fetched", seats)
	}
}

// GetSeat handles GET /api/seats/{id}
func (h *Handlers) GetSeat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		seat, err := h.deps.Services.Seats.GetSeat(r.Context(), id)
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Seat fetched", seat)
	}
}

// UpdateSeat handles PUT /api/seats/{id}. Only the seat number can change.
func (h *Handlers) UpdateSeat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		var req dtos.SeatUpdateReq
		if err := h.decodeAndValidate(r, &req); err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		seat, err := h.deps.Services.Seats.RenumberSeat(r.Context(), auth.GetUserClaims(r.Context()), id, req.SeatNumber)
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Seat updated", seat)
	}
}
