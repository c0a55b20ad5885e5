package analysis

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/vigil/internal/binding"
	"github.com/JaimeStill/vigil/internal/orchestrator"
)

// Domain errors for analysis operations.
var (
	ErrEmptyRequest = errors.New("request text is required")
)

// MapHTTPStatus maps analysis pipeline errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrEmptyRequest) {
		return http.StatusBadRequest
	}
	if errors.Is(err, binding.ErrUseCaseNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, orchestrator.ErrExecutionNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, orchestrator.ErrExecutionCancelled) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// statusHTTPCode maps a finished execution's status to the response code for
// its report. Failed and cancelled runs still return the full report body so
// callers can inspect step statuses and errors.
func statusHTTPCode(status string) int {
	switch status {
	case orchestrator.StatusFailed:
		return http.StatusUnprocessableEntity
	case orchestrator.StatusCancelled:
		return http.StatusConflict
	default:
		return http.StatusOK
	}
}
