package api

import (
	"encoding/json"
	"net/http"

	"github.com/pharmetrics/askdb/internal/domain"
)

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error JSON response
func Error(w http.ResponseWriter, status int, errText, message string) {
	JSON(w, status, ErrorResponse{Error: errText, Message: message})
}

// DomainErrorToHTTP maps domain errors to HTTP status codes
func DomainErrorToHTTP(err error) int {
	if err == nil {
		return http.StatusOK
	}

	domainErr, ok := err.(*domain.DomainError)
	if !ok {
		return http.StatusInternalServerError
	}

	switch domainErr.Code {
	case domain.ErrCodeValidation:
		return http.StatusBadRequest
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes an appropriate error response based on the error type
func HandleError(w http.ResponseWriter, err error) {
	status := DomainErrorToHTTP(err)
	Error(w, status, http.StatusText(status), err.Error())
}

// RunStatusToHTTP maps a terminal pipeline state to an HTTP status code.
// Unrelated-query rejections are graceful, not server errors.
func RunStatusToHTTP(run *domain.PipelineRun) int {
	if run.Status != domain.StatusError {
		return http.StatusOK
	}

	switch run.ErrorType {
	case domain.ErrorSecurityViolation:
		return http.StatusBadRequest
	case domain.ErrorUnrelatedQuery:
		return http.StatusOK
	case domain.ErrorDatabaseExecution:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
