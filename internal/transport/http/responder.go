package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"quiz-master-gateway/internal/domain"
)

// JSON responds with 200 OK and the payload.
func JSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	render.JSON(w, r, v)
}

// Created responds with 201 Created and the payload.
func Created(w http.ResponseWriter, r *http.Request, v interface{}) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, v)
}

// NoContent responds with 204.
func NoContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// ErrorResponse is the standard error envelope. Field is set for validation
// failures tied to one input group so clients can render the message inline.
type ErrorResponse struct {
	HTTPStatusCode int `json:"-"`

	ErrorText string `json:"error"`
	Field     string `json:"field,omitempty"`
}

func (e *ErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// Error translates the error taxonomy into an HTTP response. Messages arrive
// already user-presentable from the data-access layer, so they pass through
// verbatim.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	resp := &ErrorResponse{HTTPStatusCode: statusFor(err), ErrorText: err.Error()}

	var de *domain.Error
	if errors.As(err, &de) && de.Field != "" {
		resp.Field = de.Field
	}
	_ = render.Render(w, r, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrConfirmationRequired),
		errors.Is(err, domain.ErrDialogNotOpen):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return http.StatusTooManyRequests
	}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindPermission:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
