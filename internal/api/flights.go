package api

import (
	"net/http"
	"time"

	"booking-system/airline/internal/common"
	"booking-system/airline/internal/models/dtos"
	"booking-system/airline/internal/services"
)

// CreateFlight handles POST /api/flights. The flight and its seat inventory
// are created together.
func (h *Handlers) CreateFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.FlightReq
		if err := h.decodeAndValidate(r, &req); err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		flight, err := h.deps.Services.Provisioning.CreateFlight(r.Context(), services.NewFlightInput(req))
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Flight created", flight, http.StatusCreated)
	}
}

// GetFlight handles GET /api/flights/{id}
func (h *Handlers) GetFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		flight, err := h.deps.Services.Flights.GetFlight(r.Context(), id)
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Flight fetched", flight)
	}
}

// ListFlightsByDate handles GET /api/flights/by-date/{date}
func (h *Handlers) ListFlightsByDate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		date, err := pathDate(r, "date")
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		flights, err := h.deps.Services.Flights.ListByDate(r.Context(), date)
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Flights fetched", flights)
	}
}

// UpdateFlight handles PUT /api/flights/{id}
func (h *Handlers) UpdateFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		var req dtos.FlightReq
		if err := h.decodeAndValidate(r, &req); err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		flight, err := h.deps.Services.Provisioning.UpdateFlight(r.Context(), id, services.NewFlightInput(req))
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Flight updated", flight)
	}
}

// DeleteFlight handles DELETE /api/flights/{id}
func (h *Handlers) DeleteFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		if err := h.deps.Services.Provisioning.DeleteFlight(r.Context(), id); err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Flight deleted", nil)
	}
}

// RestoreFlight handles PUT /api/flights/undelete/{id}
func (h *Handlers) RestoreFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		flight, err := h.deps.Services.Provisioning.RestoreFlight(r.Context(), id)
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Flight restored", flight)
	}
}
