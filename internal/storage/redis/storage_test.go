package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/auctiongame-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.RoomTTL = time.Hour
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerByName() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	retrieved, err := s.storage.GetPlayerByName(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), retrieved.ID)
}

func (s *StorageSuite) TestDeletePlayerRemovesNameIndex() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	_, err = s.storage.GetPlayerByName(s.ctx, "Alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Room tests

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := &model.Room{
		ID:      "room-1",
		OwnerID: "player-1",
		Players: []model.Player{{ID: "player-1", DisplayName: "Alice"}},
	}

	err := s.storage.SaveRoom(s.ctx, room)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Equal(room.OwnerID, retrieved.OwnerID)
	s.Len(retrieved.Players, 1)
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestListRooms() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{ID: "room-1"})
	_ = s.storage.SaveRoom(s.ctx, &model.Room{ID: "room-2"})

	rooms, err := s.storage.ListRooms(s.ctx)
	s.Require().NoError(err)
	s.Len(rooms, 2)
}

func (s *StorageSuite) TestListRoomsPrunesExpiredEntries() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{ID: "room-1"})
	_ = s.storage.SaveRoom(s.ctx, &model.Room{ID: "room-2"})

	// Simulate TTL expiry of one room; the index set still references it
	s.mini.FastForward(2 * time.Hour)
	_ = s.storage.SaveRoom(s.ctx, &model.Room{ID: "room-2"})

	rooms, err := s.storage.ListRooms(s.ctx)
	s.Require().NoError(err)
	s.Len(rooms, 1)
	s.Equal(model.RoomID("room-2"), rooms[0].ID)
}

func (s *StorageSuite) TestDeleteRoomRemovesFromIndex() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{ID: "room-1"})

	err := s.storage.DeleteRoom(s.ctx, "room-1")
	s.Require().NoError(err)

	_, err = s.storage.GetRoom(s.ctx, "room-1")
	s.ErrorIs(err, model.ErrRoomNotFound)

	rooms, err := s.storage.ListRooms(s.ctx)
	s.Require().NoError(err)
	s.Empty(rooms)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSessionRoundTrip() {
	session := &model.AuctionSession{
		ID:        "session-1",
		OwnerID:   "player-1",
		PlayerIDs: []model.PlayerID{"player-1", "player-2"},
		Stats: map[model.PlayerID]*model.PlayerStat{
			"player-1": {PlayerID: "player-1", Money: 70, OwnedItems: []model.ItemID{"🎩"}},
			"player-2": {PlayerID: "player-2", Money: 100},
		},
		Points:        map[model.PlayerID]int{"player-1": 120, "player-2": 100},
		ItemQueue:     []model.ItemID{"🚔", "⛴"},
		CurrentItem:   "🚙",
		CurrentPrice:  42,
		LastDecrement: 7,
		JokerValue:    3,
		State:         model.SessionStateInProgress,
	}

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(session.PlayerIDs, retrieved.PlayerIDs)
	s.Equal(session.ItemQueue, retrieved.ItemQueue)
	s.Equal(session.Points, retrieved.Points)
	s.Equal(42, retrieved.CurrentPrice)
	s.Equal(7, retrieved.LastDecrement)
	s.Equal([]model.ItemID{"🎩"}, retrieved.Stats["player-1"].OwnedItems)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionHasTTL() {
	_ = s.storage.SaveSession(s.ctx, &model.AuctionSession{ID: "session-1"})

	ttl := s.mini.TTL(sessionKey("session-1"))
	s.True(ttl > 0, "Session should have TTL")
}

func (s *StorageSuite) TestDeleteSession() {
	_ = s.storage.SaveSession(s.ctx, &model.AuctionSession{ID: "session-1"})

	err := s.storage.DeleteSession(s.ctx, "session-1")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "session-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}
