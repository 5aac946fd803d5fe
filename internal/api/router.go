package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/auctiongame-go/internal/api/handler"
	"github.com/mcoot/auctiongame-go/internal/api/middleware"
	"github.com/mcoot/auctiongame-go/internal/api/sse"
	"github.com/mcoot/auctiongame-go/internal/services/auction"
	"github.com/mcoot/auctiongame-go/internal/services/player"
	"github.com/mcoot/auctiongame-go/internal/services/room"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	PlayerService     *player.Service
	RoomService       *room.Service
	AuctionController auction.ControllerInterface
	HubManager        *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)
	roomHandler := handler.NewRoomHandler(cfg.PlayerService, cfg.RoomService)
	sessionHandler := handler.NewSessionHandler(cfg.AuctionController, cfg.HubManager)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Player routes
	api.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/players/{player_id}", playerHandler.Get).Methods(http.MethodGet)

	// Room routes
	api.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rooms", roomHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{room_id}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{room_id}/join", roomHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{room_id}/start", roomHandler.Start).Methods(http.MethodPost)

	// Session routes
	api.HandleFunc("/sessions/{session_id}", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{session_id}", sessionHandler.Remove).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{session_id}/tick", sessionHandler.Tick).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{session_id}/purchase", sessionHandler.Purchase).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{session_id}/joker", sessionHandler.BuyJoker).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{session_id}/winner", sessionHandler.Winner).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{session_id}/events", sessionHandler.Events).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
