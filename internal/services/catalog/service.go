package catalog

import (
	"github.com/mcoot/auctiongame-go/internal/dependencies/random"
	"github.com/mcoot/auctiongame-go/internal/model"
)

// items is the fixed catalog of auctionable items. A session draws
// 2 × playerCount of them, so rosters are capped at len(items)/2 players.
var items = []model.ItemID{
	"🎩", "🚙", "🚔", "⛴", "✈️", "🏠", "🚞", "🚝", "☂", "💼", "🕶", "👔", "🎓",
}

// Service builds the item queue for new auction sessions
type Service struct {
	random random.Random
}

// New creates a new catalog service
func New(random random.Random) *Service {
	return &Service{
		random: random,
	}
}

// Size returns the number of items in the catalog
func (s *Service) Size() int {
	return len(items)
}

// MaxPlayers returns the largest roster the catalog can supply
func (s *Service) MaxPlayers() int {
	return len(items) / 2
}

// BuildQueue returns a shuffled queue of 2 × playerCount items
func (s *Service) BuildQueue(playerCount int) ([]model.ItemID, error) {
	if playerCount < 1 {
		return nil, model.ErrNoPlayers
	}
	if playerCount*2 > len(items) {
		return nil, model.ErrTooManyPlayers
	}

	shuffled := make([]model.ItemID, len(items))
	copy(shuffled, items)
	s.random.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled[:playerCount*2], nil
}
