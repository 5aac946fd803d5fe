package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/auctiongame-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeRoomNotFound        = "ROOM_NOT_FOUND"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodeAlreadyInRoom       = "ALREADY_IN_ROOM"
	CodeNotRoomOwner        = "NOT_ROOM_OWNER"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeSessionOver         = "SESSION_OVER"
	CodeNotInSession        = "NOT_IN_SESSION"
	CodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	CodeInvalidJokerValue   = "INVALID_JOKER_VALUE"
	CodeTooManyPlayers      = "TOO_MANY_PLAYERS"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrAlreadyInRoom):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInRoom, "Already in this room"}}
	case errors.Is(err, model.ErrNotRoomOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotRoomOwner, "Only the room owner can perform this action"}}
	case errors.Is(err, model.ErrInsufficientPlayers), errors.Is(err, model.ErrNoPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrTooManyPlayers):
		return &httpError{http.StatusConflict, APIError{CodeTooManyPlayers, "Too many players for the catalog"}}
	case errors.Is(err, model.ErrSessionOver):
		return &httpError{http.StatusConflict, APIError{CodeSessionOver, "Session is already over"}}
	case errors.Is(err, model.ErrPlayerNotInSession):
		return &httpError{http.StatusForbidden, APIError{CodeNotInSession, "Player is not part of this session"}}
	case errors.Is(err, model.ErrInsufficientFunds):
		return &httpError{http.StatusPaymentRequired, APIError{CodeInsufficientFunds, "Not enough money"}}
	case errors.Is(err, model.ErrInvalidJokerValue):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidJokerValue, "Joker value must be between 1 and 10"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
