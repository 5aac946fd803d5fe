package room

import (
	"context"
	"log/slog"

	"github.com/mcoot/auctiongame-go/internal/dependencies/clock"
	"github.com/mcoot/auctiongame-go/internal/dependencies/random"
	"github.com/mcoot/auctiongame-go/internal/keyedlock"
	"github.com/mcoot/auctiongame-go/internal/model"
	"github.com/mcoot/auctiongame-go/internal/services/auction"
	"github.com/mcoot/auctiongame-go/internal/storage"
)

const (
	// RoomIDLength is the length of generated room ids
	RoomIDLength = 6
	// RoomIDAlphabet is the characters used in room ids (avoids confusing chars)
	RoomIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// MinPlayers is the smallest roster a game can start with
	MinPlayers = 2
)

// Service manages pre-game rooms: creation, joining, listing and handover
// to the auction controller when the owner starts the game. Room mutations
// run under a per-room lock, so concurrent joins on the same room never lose
// a player.
type Service struct {
	storage           storage.Storage
	auctionController *auction.Controller
	clock             clock.Clock
	random            random.Random
	logger            *slog.Logger

	locks *keyedlock.Table[model.RoomID]
}

// New creates a new room service
func New(
	storage storage.Storage,
	auctionController *auction.Controller,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:           storage,
		auctionController: auctionController,
		clock:             clock,
		random:            random,
		logger:            logger,
		locks:             keyedlock.New[model.RoomID](),
	}
}

// Create creates a new room with the given player as owner and first member
func (s *Service) Create(ctx context.Context, owner model.Player) (*model.Room, error) {
	now := s.clock.Now()
	room := &model.Room{
		ID:        model.RoomID(s.random.String(RoomIDLength, RoomIDAlphabet)),
		OwnerID:   owner.ID,
		Players:   []model.Player{owner},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("room created",
		slog.String("room_id", string(room.ID)),
		slog.String("owner_id", string(owner.ID)),
	)

	return room, nil
}

// Get retrieves a room by id
func (s *Service) Get(ctx context.Context, id model.RoomID) (*model.Room, error) {
	return s.storage.GetRoom(ctx, id)
}

// List returns all open rooms
func (s *Service) List(ctx context.Context) ([]*model.Room, error) {
	return s.storage.ListRooms(ctx)
}

// Join adds a player to a room
func (s *Service) Join(ctx context.Context, id model.RoomID, player model.Player) (*model.Room, error) {
	unlock := s.locks.Acquire(id)
	defer unlock()

	room, err := s.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if room.GetPlayer(player.ID) != nil {
		return nil, model.ErrAlreadyInRoom
	}

	room.Players = append(room.Players, player)
	room.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("player joined room",
		slog.String("room_id", string(room.ID)),
		slog.String("player_id", string(player.ID)),
		slog.Int("player_count", len(room.Players)),
	)

	return room, nil
}

// StartGame converts the room's roster into a running auction session and
// deletes the room. Only the owner can start, and only with a full enough
// roster.
func (s *Service) StartGame(ctx context.Context, id model.RoomID, playerID model.PlayerID) (*model.AuctionSession, error) {
	unlock := s.locks.Acquire(id)
	defer unlock()

	room, err := s.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if room.OwnerID != playerID {
		return nil, model.ErrNotRoomOwner
	}
	if len(room.Players) < MinPlayers {
		return nil, model.ErrInsufficientPlayers
	}

	sess, err := s.auctionController.CreateSession(ctx, room)
	if err != nil {
		return nil, err
	}

	// The room is spent once the session exists
	if err := s.storage.DeleteRoom(ctx, id); err != nil {
		s.logger.Warn("failed to delete room after game start",
			slog.String("room_id", string(id)),
			slog.String("error", err.Error()),
		)
	}
	s.locks.Forget(id)

	s.logger.Info("game started from room",
		slog.String("room_id", string(id)),
		slog.String("session_id", string(sess.ID)),
	)

	return sess, nil
}
