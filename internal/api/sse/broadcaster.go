package sse

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mcoot/auctiongame-go/internal/api/response"
	"github.com/mcoot/auctiongame-go/internal/model"
)

// Broadcaster publishes committed session snapshots to SSE clients. It
// satisfies the auction controller's notifier contract: publication happens
// after persistence and never fails a command.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// SessionChanged broadcasts the session's new snapshot. When the session
// has just ended a session_ended event with the final standings follows the
// snapshot.
func (b *Broadcaster) SessionChanged(_ context.Context, sess *model.AuctionSession) {
	hub := b.hubManager.GetHub(sess.ID)
	if hub == nil {
		// Nobody is listening yet
		return
	}

	snapshot, err := json.Marshal(response.SessionFromModel(sess))
	if err != nil {
		b.logger.Error("sse failed to marshal session snapshot",
			slog.String("session_id", string(sess.ID)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(string(model.EventSessionUpdated), string(snapshot))

	if !sess.IsOver() {
		return
	}

	ended, err := json.Marshal(model.SessionEndedPayload{
		WinnerID: sess.WinnerID,
		Points:   sess.Points,
	})
	if err != nil {
		b.logger.Error("sse failed to marshal session ended payload",
			slog.String("session_id", string(sess.ID)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(string(model.EventSessionEnded), string(ended))
}

// SessionRemoved tells clients the session is gone and tears down its hub
func (b *Broadcaster) SessionRemoved(_ context.Context, id model.SessionID) {
	hub := b.hubManager.GetHub(id)
	if hub == nil {
		return
	}

	hub.BroadcastEvent(string(model.EventSessionRemoved), string(id))
	b.hubManager.RemoveHub(id)
}
