package api

import (
	"net/http"
	"time"

	"booking-system/airline/internal/common"
	"booking-system/airline/internal/models/dtos"
)

// CreateAircraft handles POST /api/aircraft
func (h *Handlers) CreateAircraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AircraftReq
		if err := h.decodeAndValidate(r, &req); err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		aircraft, err := h.deps.Services.Aircraft.Create(r.Context(), req)
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft created", aircraft, http.StatusCreated)
	}
}

// ListAircraft handles GET /api/aircraft
func (h *Handlers) ListAircraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		aircraft, err := h.deps.Services.Aircraft.List(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft fetched", aircraft)
	}
}

// GetAircraft handles GET /api/aircraft/{id}
func (h *Handlers) GetAircraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		aircraft, err := h.deps.Services.Aircraft.Get(r.Context(), id)
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft fetched", aircraft)
	}
}

// UpdateAircraft handles PUT /api/aircraft/{id}
func (h *Handlers) UpdateAircraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		var req dtos.AircraftReq
		if err := h.decodeAndValidate(r, &req); err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		aircraft, err := h.deps.Services.Aircraft.Update(r.Context(), id, req)
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft updated", aircraft)
	}
}

// DeleteAircraft handles DELETE /api/aircraft/{id}
func (h *Handlers) DeleteAircraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		if err := h.deps.Services.Aircraft.Delete(r.Context(), id); err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft deleted", nil)
	}
}

// RestoreAircraft handles PUT /api/aircraft/undelete/{id}
func (h *Handlers) RestoreAircraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}

		aircraft, err := h.deps.Services.Aircraft.Restore(r.Context(), id)
		if err != nil {
			common.RespondError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft restored", aircraft)
	}
}
