package room

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mcoot/auctiongame-go/internal/dependencies/mocks"
	"github.com/mcoot/auctiongame-go/internal/model"
	"github.com/mcoot/auctiongame-go/internal/services/auction"
	"github.com/mcoot/auctiongame-go/internal/services/catalog"
	"github.com/mcoot/auctiongame-go/internal/services/itemqueue"
	"github.com/mcoot/auctiongame-go/internal/services/joker"
	"github.com/mcoot/auctiongame-go/internal/services/scoring"
	"github.com/mcoot/auctiongame-go/internal/storage/memory"
	"github.com/mcoot/auctiongame-go/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	random  *mocks.MockRandom
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.random = mocks.NewMockRandom()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	logger := testutil.DiscardLogger()

	queueService := itemqueue.New(s.random)
	auctionController := auction.NewController(
		s.storage,
		catalog.New(s.random),
		queueService,
		joker.New(queueService),
		scoring.New(),
		s.clock,
		s.random,
		logger,
	)
	s.service = New(s.storage, auctionController, s.clock, s.random, logger)
	s.ctx = context.Background()
}

func (s *ServiceSuite) alice() model.Player {
	return model.Player{ID: "alice", DisplayName: "Alice"}
}

func (s *ServiceSuite) bob() model.Player {
	return model.Player{ID: "bob", DisplayName: "Bob"}
}

func (s *ServiceSuite) TestCreateRoom() {
	s.random.QueueString("ROOM01")

	room, err := s.service.Create(s.ctx, s.alice())
	s.Require().NoError(err)

	s.Equal(model.RoomID("ROOM01"), room.ID)
	s.Equal(model.PlayerID("alice"), room.OwnerID)
	s.Require().Len(room.Players, 1)
	s.Equal(model.PlayerID("alice"), room.Players[0].ID)
}

func (s *ServiceSuite) TestJoinRoom() {
	s.random.QueueString("ROOM01")
	room, _ := s.service.Create(s.ctx, s.alice())

	updated, err := s.service.Join(s.ctx, room.ID, s.bob())
	s.Require().NoError(err)

	s.Len(updated.Players, 2)
	s.Equal([]model.PlayerID{"alice", "bob"}, updated.PlayerIDs())
}

func (s *ServiceSuite) TestJoinRoomTwiceFails() {
	s.random.QueueString("ROOM01")
	room, _ := s.service.Create(s.ctx, s.alice())
	_, _ = s.service.Join(s.ctx, room.ID, s.bob())

	_, err := s.service.Join(s.ctx, room.ID, s.bob())
	s.ErrorIs(err, model.ErrAlreadyInRoom)
}

func (s *ServiceSuite) TestConcurrentJoinsAllLand() {
	s.random.QueueString("ROOM01")
	room, _ := s.service.Create(s.ctx, s.alice())

	joiners := []model.Player{
		{ID: "bob", DisplayName: "Bob"},
		{ID: "carol", DisplayName: "Carol"},
		{ID: "dave", DisplayName: "Dave"},
		{ID: "erin", DisplayName: "Erin"},
	}

	start := make(chan struct{})
	var wg sync.WaitGroup
	for _, p := range joiners {
		wg.Add(1)
		go func(p model.Player) {
			defer wg.Done()
			<-start
			_, err := s.service.Join(s.ctx, room.ID, p)
			s.NoError(err)
		}(p)
	}
	close(start)
	wg.Wait()

	// Every successful join is visible afterwards; none may be lost to a
	// racing load-append-save
	updated, err := s.service.Get(s.ctx, room.ID)
	s.Require().NoError(err)
	s.Len(updated.Players, len(joiners)+1)
	for _, p := range joiners {
		s.NotNil(updated.GetPlayer(p.ID), "player %s missing from room", p.ID)
	}
}

func (s *ServiceSuite) TestJoinUpdatesTimestamp() {
	s.random.QueueString("ROOM01")
	room, _ := s.service.Create(s.ctx, s.alice())
	created := room.UpdatedAt

	s.clock.Advance(90 * time.Second)

	updated, err := s.service.Join(s.ctx, room.ID, s.bob())
	s.Require().NoError(err)
	s.Equal(created.Add(90*time.Second), updated.UpdatedAt)
}

func (s *ServiceSuite) TestJoinMissingRoomFails() {
	_, err := s.service.Join(s.ctx, "nonexistent", s.bob())
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *ServiceSuite) TestListRooms() {
	s.random.QueueString("ROOM01", "ROOM02")
	_, _ = s.service.Create(s.ctx, s.alice())
	_, _ = s.service.Create(s.ctx, s.bob())

	rooms, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(rooms, 2)
}

func (s *ServiceSuite) TestStartGameCreatesSessionAndDeletesRoom() {
	s.random.QueueString("ROOM01", "SESSION00001")
	room, _ := s.service.Create(s.ctx, s.alice())
	_, _ = s.service.Join(s.ctx, room.ID, s.bob())
	s.random.QueueRoll(5) // initial joker value

	sess, err := s.service.StartGame(s.ctx, room.ID, "alice")
	s.Require().NoError(err)

	s.Equal(model.SessionID("SESSION00001"), sess.ID)
	s.Equal([]model.PlayerID{"alice", "bob"}, sess.PlayerIDs)
	s.Len(sess.ItemQueue, 3)

	_, err = s.service.Get(s.ctx, room.ID)
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *ServiceSuite) TestStartGameRequiresOwner() {
	s.random.QueueString("ROOM01")
	room, _ := s.service.Create(s.ctx, s.alice())
	_, _ = s.service.Join(s.ctx, room.ID, s.bob())

	_, err := s.service.StartGame(s.ctx, room.ID, "bob")
	s.ErrorIs(err, model.ErrNotRoomOwner)
}

func (s *ServiceSuite) TestStartGameRequiresEnoughPlayers() {
	s.random.QueueString("ROOM01")
	room, _ := s.service.Create(s.ctx, s.alice())

	_, err := s.service.StartGame(s.ctx, room.ID, "alice")
	s.ErrorIs(err, model.ErrInsufficientPlayers)
}
