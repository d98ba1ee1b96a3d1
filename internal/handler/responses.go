package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to a pooled buffer first; headers are already sent so an
	// encoding failure can only be logged
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing error response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error(opName+" failed", "error", err)
	status, userMsg := mapServiceErrorToUserMessage(err)
	respondError(w, status, userMsg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgUnavailableError   = "Server is temporarily unavailable. Please try again later."

	ErrMsgCharacterNotFoundError = "Character not found"
	ErrMsgCharacterArchivedError = "Character is archived and cannot be modified"
	ErrMsgItemNotFoundError      = "Item not found in inventory"
	ErrMsgDefinitionNotFoundErr  = "Item definition not found"
	ErrMsgNotEnoughCoinsError    = "Not enough coins"
	ErrMsgAccountNotFoundError   = "Ledger account not found"
	ErrMsgGrantInFlightError     = "A grant with this key is still being processed. Try again shortly."
	ErrMsgResultConflictError    = "This idempotency key was already used for a different grant"
	ErrMsgSlotMismatchError      = "Item does not fit that equipment slot"
	ErrMsgLevelRequirementError  = "Level requirement not met"
	ErrMsgPreconditionError      = "Request conflicts with the current state"
	ErrMsgEmptyPoolError         = "No eligible students to select from"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// status codes and messages.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrCharacterNotFound):
		return http.StatusNotFound, ErrMsgCharacterNotFoundError
	case errors.Is(err, domain.ErrCharacterArchived):
		return http.StatusConflict, ErrMsgCharacterArchivedError
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrItemNotOwned):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrDefinitionNotFound):
		return http.StatusNotFound, ErrMsgDefinitionNotFoundErr
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughCoinsError
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundError
	case errors.Is(err, domain.ErrResultConflict):
		return http.StatusConflict, ErrMsgResultConflictError
	case errors.Is(err, domain.ErrGrantInFlight):
		return http.StatusConflict, ErrMsgGrantInFlightError
	case errors.Is(err, domain.ErrSlotMismatch):
		return http.StatusBadRequest, ErrMsgSlotMismatchError
	case errors.Is(err, domain.ErrLevelRequirement):
		return http.StatusBadRequest, ErrMsgLevelRequirementError
	case errors.Is(err, domain.ErrPreconditionFailed):
		return http.StatusConflict, ErrMsgPreconditionError
	case errors.Is(err, domain.ErrEmptyPool):
		return http.StatusNotFound, ErrMsgEmptyPoolError
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrTransientStore):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	}

	// Wrapped errors with a domain error further down the chain
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	// Short messages pass through so callers see actionable detail;
	// anything longer collapses to the generic message
	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
