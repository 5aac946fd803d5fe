package storage

import (
	"context"

	"github.com/mcoot/auctiongame-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByName(ctx context.Context, displayName string) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	ListRooms(ctx context.Context) ([]*model.Room, error)
	DeleteRoom(ctx context.Context, id model.RoomID) error

	// Session operations
	SaveSession(ctx context.Context, session *model.AuctionSession) error
	GetSession(ctx context.Context, id model.SessionID) (*model.AuctionSession, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
}
