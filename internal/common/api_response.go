package common

import (
	"encoding/json"
	"net/http"
	"time"

	"booking-system/airline/internal/constants"
	"booking-system/airline/internal/logging"
	"booking-system/airline/internal/models/dtos"
)

// RespondSuccess sends a standardized JSON success response.
func RespondSuccess(w http.ResponseWriter, initTime time.Time, message string, data any, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := dtos.APIResponse{
		Status:       string(constants.APIStatusOk),
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
		Data:         data,
	}

	writeJSON(w, code, response)
}

// RespondError maps err onto its category's status code and writes the
// error envelope. Server errors never expose their cause.
func RespondError(w http.ResponseWriter, initTime time.Time, err error) {
	appErr := AsAppError(err)
	code := StatusCode(appErr.Category)

	if appErr.Category == CategoryServer {
		logging.Error("request failed", "error", err)
	}
	if appErr.Retryable {
		w.Header().Set("Retry-After", "1")
	}

	message := appErr.Message
	if appErr.Category == CategoryServer {
		message = constants.MsgServerError
	}

	response := dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Code:         string(appErr.Category),
		Message:      message,
		Errors:       appErr.Fields,
		ResponseTime: GetResponseTime(initTime),
	}

	writeJSON(w, code, response)
}

// StatusCode is the HTTP status for an error category.
func StatusCode(category ErrorCategory) int {
	switch category {
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryUnauthenticated:
		return http.StatusUnauthorized
	case CategoryForbidden:
		return http.StatusForbidden
	case CategoryConflict:
		return http.StatusConflict
	case CategoryNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON reads a single JSON object from r into dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return NewBadRequest(constants.MsgInvalidJSON)
	}
	if dec.More() {
		return NewBadRequest(constants.MsgInvalidJSON)
	}
	return nil
}

// writeJSON marshals data and writes it to the HTTP response.
func writeJSON(w http.ResponseWriter, code int, body dtos.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err)
	}
}

// RespondErrorStatus writes an error envelope for statuses outside the
// error taxonomy, such as rate limiting.
func RespondErrorStatus(w http.ResponseWriter, initTime time.Time, statusCode int, code, message string) {
	writeJSON(w, statusCode, dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Code:         code,
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
	})
}
