package api

import (
	"net/http"
	"strconv"
	"time"

	"booking-system/airline/internal/common"
	"booking-system/airline/internal/constants"
	"booking-system/airline/internal/validation"

	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	if deps.Validator == nil {
		deps.Validator = validation.New()
	}
	return &Handlers{
		deps: deps,
	}
}

// decodeAndValidate reads a JSON body into dst and shape-checks it.
func (h *Handlers) decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := common.DecodeJSON(r, dst); err != nil {
		return err
	}
	return h.deps.Validator.Struct(dst)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewValidationError(map[string]string{name: constants.MsgInvalidID})
	}
	return id, nil
}

func pathDate(r *http.Request, name string) (time.Time, error) {
	date, err := time.Parse(constants.DateLayout, chi.URLParam(r, name))
	if err != nil {
		return time.Time{}, common.NewValidationError(map[string]string{name: constants.MsgInvalidDate})
	}
	return date, nil
}
