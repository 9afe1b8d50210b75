// Package respond writes the JSON envelopes every API endpoint returns:
//
//	{ "success": true,  "data": ..., "message": "...", "pagination": {...} }
//	{ "success": false, "message": "..." }
package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/dalemusser/mediateam/internal/app/system/apperr"
	"github.com/dalemusser/mediateam/internal/app/system/inputval"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// exposeErrors controls whether 500 responses include the underlying error
// text. Off in production.
var exposeErrors atomic.Bool

// Configure sets whether internal error messages are returned to clients.
func Configure(expose bool) {
	exposeErrors.Store(expose)
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Data       any               `json:"data,omitempty"`
	Pagination *Pagination       `json:"pagination,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

// OKMessage writes a 200 success envelope with a message.
func OKMessage(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

// List writes a 200 success envelope with pagination.
func List(w http.ResponseWriter, data any, p Pagination) {
	JSON(w, http.StatusOK, envelope{Success: true, Data: data, Pagination: &p})
}

// Fail writes a failure envelope.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, envelope{Success: false, Message: message})
}

func BadRequest(w http.ResponseWriter, message string) { Fail(w, http.StatusBadRequest, message) }
func Unauthorized(w http.ResponseWriter, message string) {
	Fail(w, http.StatusUnauthorized, message)
}
func Forbidden(w http.ResponseWriter, message string) { Fail(w, http.StatusForbidden, message) }
func NotFound(w http.ResponseWriter, message string)  { Fail(w, http.StatusNotFound, message) }
func Conflict(w http.ResponseWriter, message string)  { Fail(w, http.StatusConflict, message) }

// Invalid writes a 400 with per-field messages.
func Invalid(w http.ResponseWriter, err *inputval.Error) {
	JSON(w, http.StatusBadRequest, envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  err.Fields,
	})
}

// Internal logs err and writes a 500. The client sees err's text only when
// Configure(true) was called.
func Internal(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	if log != nil {
		log.Error(op, zap.Error(err))
	}
	msg := "Server error"
	if exposeErrors.Load() && err != nil {
		msg = err.Error()
	}
	Fail(w, http.StatusInternalServerError, msg)
}

// Error maps err onto the taxonomy in apperr and writes the matching
// response. Unknown errors become 500s.
func Error(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	var verr *inputval.Error
	switch {
	case errors.As(err, &verr):
		Invalid(w, verr)
	case errors.Is(err, apperr.ErrInvalid):
		BadRequest(w, err.Error())
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, mongo.ErrNoDocuments):
		NotFound(w, notFoundMessage(err))
	case errors.Is(err, apperr.ErrConflict):
		Conflict(w, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		Forbidden(w, err.Error())
	case errors.Is(err, apperr.ErrUnauthenticated):
		Unauthorized(w, err.Error())
	default:
		Internal(w, log, op, err)
	}
}

func notFoundMessage(err error) string {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "Not found"
	}
	return err.Error()
}

// DecodeJSON decodes the request body into dst and validates it.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.New(apperr.ErrInvalid, "Malformed JSON body")
	}
	return inputval.Validate(dst)
}
