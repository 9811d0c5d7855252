// Package respond writes the JSON envelope every endpoint answers with:
//
//	{"success": true|false, "message": "...", "<data key>": ...}
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"kegiatan-kampus/internal/logging"
	"kegiatan-kampus/internal/service"
)

const maxBodyBytes = 1 << 20

type Envelope map[string]any

func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// OK answers 200 with a confirmation message.
func OK(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, Envelope{"success": true, "message": message})
}

// Data answers 200 with value under key.
func Data(w http.ResponseWriter, key string, value any) {
	JSON(w, http.StatusOK, Envelope{"success": true, key: value})
}

func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{"success": false, "message": message})
}

// Error maps err onto a status code. Errors without a known kind are logged
// and hidden behind "server error".
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrAuth),
		errors.Is(err, service.ErrDeadline):
		status = http.StatusBadRequest
	default:
		logging.FromContext(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		Fail(w, http.StatusInternalServerError, "server error")
		return
	}

	msg := err.Error()
	var se *service.Error
	if errors.As(err, &se) {
		msg = se.Message()
	}
	Fail(w, status, msg)
}

// Decode reads a JSON body into v. A malformed body is a validation error.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return service.Invalid("invalid request body")
	}
	return nil
}
