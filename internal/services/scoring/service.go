package scoring

import (
	"github.com/mcoot/auctiongame-go/internal/model"
)

// Per-item scoring weights. Each owned item is worth a flat ItemValue plus
// a triangular bonus over TriangularStep × count, so hoarding items beats
// hoarding cash superlinearly.
const (
	ItemValue      = 35
	TriangularStep = 5
)

// Service computes player points and resolves winners
type Service struct{}

// New creates a new scoring service
func New() *Service {
	return &Service{}
}

// ComputePoints derives the points map from player stats. It must be the
// final step of every committed session mutation so readers never observe
// points that are stale relative to stats.
func (s *Service) ComputePoints(stats map[model.PlayerID]*model.PlayerStat) map[model.PlayerID]int {
	points := make(map[model.PlayerID]int, len(stats))
	for id, stat := range stats {
		points[id] = s.PlayerPoints(stat)
	}
	return points
}

// PlayerPoints scores a single player's stat snapshot
func (s *Service) PlayerPoints(stat *model.PlayerStat) int {
	n := len(stat.OwnedItems)
	return ItemValue*n + triangular(TriangularStep*n) + stat.Money
}

// ResolveWinner returns the player with the highest points. Ties break
// deterministically in favor of the earliest roster position, not map
// iteration order.
func (s *Service) ResolveWinner(playerIDs []model.PlayerID, points map[model.PlayerID]int) (model.PlayerID, error) {
	if len(playerIDs) == 0 {
		return "", model.ErrEmptyRoster
	}

	winner := playerIDs[0]
	best := points[winner]
	for _, id := range playerIDs[1:] {
		if points[id] > best {
			winner = id
			best = points[id]
		}
	}

	return winner, nil
}

// triangular returns n + (n-1) + ... + 1, or 0 for n <= 0
func triangular(n int) int {
	if n <= 0 {
		return 0
	}
	return n * (n + 1) / 2
}
