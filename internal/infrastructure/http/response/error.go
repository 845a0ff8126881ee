package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rezkam/todo/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []ErrorField `json:"details,omitempty"`
}

// ErrorField describes a field-specific error.
type ErrorField struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// BadRequest sends a 400 Bad Request error for requests that could not be decoded.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, "INVALID_REQUEST", message, http.StatusBadRequest)
}

// ValidationError sends a 400 validation error with field details.
func ValidationError(w http.ResponseWriter, field, issue string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed",
			Details: []ErrorField{
				{Field: field, Issue: issue},
			},
		},
	})
}

// NotFound sends a 404 Not Found error.
func NotFound(w http.ResponseWriter, resource string) {
	Error(w, "NOT_FOUND", resource+" not found", http.StatusNotFound)
}

// InternalError sends a 500 Internal Server Error.
// The error is logged server-side; the client only sees a generic message.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), "internal server error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
	}

	Error(w, "INTERNAL_ERROR", "an internal error occurred", http.StatusInternalServerError)
}

// Error sends a generic error response.
func Error(w http.ResponseWriter, code, message string, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// FromDomainError maps domain errors to HTTP responses.
func FromDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	// Validation errors (400)
	case errors.Is(err, domain.ErrInvalidStatus):
		ValidationError(w, "status", "must be 0 (incomplete) or 1 (complete)")
	case errors.Is(err, domain.ErrInvalidScope):
		ValidationError(w, "content", "must be one of incomplete, complete, all")
	case errors.Is(err, domain.ErrUnsupportedDirection):
		ValidationError(w, "sortDirection", "must be ASC or DESC")
	case errors.Is(err, domain.ErrInvalidSortColumn):
		ValidationError(w, "sortColumns", "unknown sort column")
	case errors.Is(err, domain.ErrPageOutOfRange):
		ValidationError(w, "page", "page offset exceeds the supported range")

	// Not found errors (404)
	case errors.Is(err, domain.ErrNotFound):
		NotFound(w, "todo item")

	// Unknown errors (500)
	default:
		InternalError(w, r, err)
	}
}
