package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/auctiongame-go/internal/api/request"
	"github.com/mcoot/auctiongame-go/internal/api/response"
	"github.com/mcoot/auctiongame-go/internal/api/sse"
	"github.com/mcoot/auctiongame-go/internal/model"
	"github.com/mcoot/auctiongame-go/internal/services/auction"
)

// SessionHandler handles auction session endpoints
type SessionHandler struct {
	auctionController auction.ControllerInterface
	hubManager        *sse.HubManager
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(auctionController auction.ControllerInterface, hubManager *sse.HubManager) *SessionHandler {
	return &SessionHandler{
		auctionController: auctionController,
		hubManager:        hubManager,
	}
}

// Get handles GET /api/v1/sessions/{session_id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["session_id"])

	sess, err := h.auctionController.GetSession(r.Context(), sessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// Tick handles POST /api/v1/sessions/{session_id}/tick
func (h *SessionHandler) Tick(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["session_id"])

	sess, err := h.auctionController.Tick(r.Context(), sessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// Purchase handles POST /api/v1/sessions/{session_id}/purchase
func (h *SessionHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["session_id"])

	var req request.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	sess, err := h.auctionController.Purchase(r.Context(), sessionID, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// BuyJoker handles POST /api/v1/sessions/{session_id}/joker
func (h *SessionHandler) BuyJoker(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["session_id"])

	var req request.BuyJokerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	sess, err := h.auctionController.BuyJoker(r.Context(), sessionID, model.PlayerID(req.PlayerID), req.Value)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// Winner handles GET /api/v1/sessions/{session_id}/winner
func (h *SessionHandler) Winner(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["session_id"])

	winner, final, err := h.auctionController.CurrentWinner(r.Context(), sessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Winner{
		PlayerID: string(winner),
		Final:    final,
	})
}

// Remove handles DELETE /api/v1/sessions/{session_id}
func (h *SessionHandler) Remove(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["session_id"])

	if err := h.auctionController.RemoveSession(r.Context(), sessionID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Events handles GET /api/v1/sessions/{session_id}/events. The connection
// stays open streaming session events until the client disconnects.
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["session_id"])

	// Reject streams for sessions that don't exist
	if _, err := h.auctionController.GetSession(r.Context(), sessionID); err != nil {
		WriteError(w, err)
		return
	}

	playerID := model.PlayerID(r.URL.Query().Get("player_id"))
	hub := h.hubManager.GetOrCreateHub(sessionID)
	sse.ServeSSE(w, r, hub, playerID)
}
