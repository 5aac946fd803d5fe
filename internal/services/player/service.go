package player

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/auctiongame-go/internal/dependencies/clock"
	"github.com/mcoot/auctiongame-go/internal/dependencies/random"
	"github.com/mcoot/auctiongame-go/internal/model"
	"github.com/mcoot/auctiongame-go/internal/storage"
)

const (
	// PlayerIDLength is the length of generated player ids
	PlayerIDLength = 10
	// PlayerIDAlphabet is the characters used in player ids
	PlayerIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Service manages the player registry. Players are keyed by display name:
// asking for an existing name returns the existing player rather than
// creating a duplicate.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new player service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// GetOrCreate returns the player with the given display name, creating one
// if none exists
func (s *Service) GetOrCreate(ctx context.Context, displayName string) (*model.Player, error) {
	existing, err := s.storage.GetPlayerByName(ctx, displayName)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	player := &model.Player{
		ID:          model.PlayerID(s.random.String(PlayerIDLength, PlayerIDAlphabet)),
		DisplayName: displayName,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player created",
		slog.String("player_id", string(player.ID)),
		slog.String("display_name", displayName),
	)

	return player, nil
}

// Get retrieves a player by id
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}
