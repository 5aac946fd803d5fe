package model

// EventType identifies an event on a session's SSE stream
type EventType string

const (
	// EventSessionUpdated carries a full session snapshot after every
	// committed command
	EventSessionUpdated EventType = "session_updated"
	// EventSessionEnded fires once, alongside the final snapshot, when the
	// session ends
	EventSessionEnded EventType = "session_ended"
	// EventSessionRemoved tells clients the session no longer exists
	EventSessionRemoved EventType = "session_removed"
)

// SessionEndedPayload is the data for session_ended events
type SessionEndedPayload struct {
	WinnerID PlayerID         `json:"winner_id"`
	Points   map[PlayerID]int `json:"points"`
}
