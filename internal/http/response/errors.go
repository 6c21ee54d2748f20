package response

import (
	"encoding/json"
	"net/http"

	"github.com/lumiere-atelier/salon-bookings/pkg/logger"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Common error codes
const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeInvalidToken    = "INVALID_TOKEN"
	CodeDispatchFailure = "DISPATCH_FAILURE"
	CodeInternalError   = "INTERNAL_ERROR"
)

func WriteError(w http.ResponseWriter, statusCode int, message string, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message, Code: code}); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

// Forbidden reports a rejected link. The message stays generic on purpose:
// it must not reveal which field broke verification.
func Forbidden(w http.ResponseWriter) {
	WriteError(w, http.StatusForbidden, "invalid or expired link", CodeInvalidToken)
}

func DispatchFailure(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, "could not send notifications, please try again", CodeDispatchFailure)
}

func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, CodeInternalError)
}

// Success writes the protocol's one success shape.
func Success(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"success":true}`))
}
