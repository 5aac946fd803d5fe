package model

import "errors"

// Common errors used across the application. Domain errors leave the
// session untouched and are safe to retry with corrected input; not-found
// errors are fatal for the command that hit them.
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Room errors
	ErrRoomNotFound        = errors.New("room not found")
	ErrAlreadyInRoom       = errors.New("player is already in room")
	ErrNotRoomOwner        = errors.New("player is not the room owner")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")

	// Session errors
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionOver        = errors.New("session is already over")
	ErrPlayerNotInSession = errors.New("player is not in this session")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidJokerValue  = errors.New("joker value must be between 1 and 10")
	ErrEmptyRoster        = errors.New("session has no players")

	// Catalog errors
	ErrNoPlayers      = errors.New("at least one player required")
	ErrTooManyPlayers = errors.New("too many players for the item catalog")
)
