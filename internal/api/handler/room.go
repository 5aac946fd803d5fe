package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/auctiongame-go/internal/api/request"
	"github.com/mcoot/auctiongame-go/internal/api/response"
	"github.com/mcoot/auctiongame-go/internal/model"
	"github.com/mcoot/auctiongame-go/internal/services/player"
	"github.com/mcoot/auctiongame-go/internal/services/room"
)

// RoomHandler handles room-related endpoints
type RoomHandler struct {
	playerService *player.Service
	roomService   *room.Service
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(playerService *player.Service, roomService *room.Service) *RoomHandler {
	return &RoomHandler{
		playerService: playerService,
		roomService:   roomService,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	owner, err := h.playerService.Get(r.Context(), model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	created, err := h.roomService.Create(r.Context(), *owner)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromModel(created))
}

// Get handles GET /api/v1/rooms/{room_id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	rm, err := h.roomService.Get(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(rm))
}

// List handles GET /api/v1/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Room, len(rooms))
	for i, rm := range rooms {
		out[i] = response.RoomFromModel(rm)
	}
	response.JSON(w, http.StatusOK, out)
}

// Join handles POST /api/v1/rooms/{room_id}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	p, err := h.playerService.Get(r.Context(), model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	joined, err := h.roomService.Join(r.Context(), roomID, *p)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(joined))
}

// Start handles POST /api/v1/rooms/{room_id}/start. On success the room is
// gone and the new session is returned.
func (h *RoomHandler) Start(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	sess, err := h.roomService.StartGame(r.Context(), roomID, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(sess))
}
