package response

import (
	"time"

	"github.com/mcoot/auctiongame-go/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		CreatedAt:   p.CreatedAt,
	}
}

// Room represents a room in API responses
type Room struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Players   []Player  `json:"players"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoomFromModel converts a model.Room to a response Room
func RoomFromModel(r *model.Room) Room {
	players := make([]Player, len(r.Players))
	for i := range r.Players {
		players[i] = PlayerFromModel(&r.Players[i])
	}
	return Room{
		ID:        string(r.ID),
		OwnerID:   string(r.OwnerID),
		Players:   players,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// PlayerStat represents a player's in-session record
type PlayerStat struct {
	PlayerID   string   `json:"player_id"`
	Money      int      `json:"money"`
	OwnedItems []string `json:"owned_items"`
	Points     int      `json:"points"`
}

// Session represents an auction session in API responses. The joker value
// is deliberately absent: only the player who bought it knows it.
type Session struct {
	ID            string       `json:"id"`
	OwnerID       string       `json:"owner_id"`
	Players       []string     `json:"players"`
	Stats         []PlayerStat `json:"stats"`
	ItemsLeft     int          `json:"items_left"`
	CurrentItem   string       `json:"current_item,omitempty"`
	CurrentPrice  int          `json:"current_price"`
	LastDecrement int          `json:"last_decrement"`
	JokerConsumed bool         `json:"joker_consumed"`
	State         string       `json:"state"`
	Winner        *string      `json:"winner,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// SessionFromModel converts a model.AuctionSession to a response Session.
// Stats follow roster order so clients render players consistently.
func SessionFromModel(s *model.AuctionSession) Session {
	players := make([]string, len(s.PlayerIDs))
	stats := make([]PlayerStat, len(s.PlayerIDs))
	for i, pid := range s.PlayerIDs {
		players[i] = string(pid)
		stat := PlayerStat{
			PlayerID: string(pid),
			Points:   s.Points[pid],
		}
		if ps := s.Stats[pid]; ps != nil {
			stat.Money = ps.Money
			stat.OwnedItems = make([]string, len(ps.OwnedItems))
			for j, item := range ps.OwnedItems {
				stat.OwnedItems[j] = string(item)
			}
		}
		stats[i] = stat
	}

	var winner *string
	if s.WinnerID != "" {
		w := string(s.WinnerID)
		winner = &w
	}

	return Session{
		ID:            string(s.ID),
		OwnerID:       string(s.OwnerID),
		Players:       players,
		Stats:         stats,
		ItemsLeft:     len(s.ItemQueue),
		CurrentItem:   string(s.CurrentItem),
		CurrentPrice:  s.CurrentPrice,
		LastDecrement: s.LastDecrement,
		JokerConsumed: s.JokerConsumed,
		State:         string(s.State),
		Winner:        winner,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// Winner is the response for the current-winner endpoint. Final reports
// whether the session has ended; a non-final winner is the current leader.
type Winner struct {
	PlayerID string `json:"player_id"`
	Final    bool   `json:"final"`
}
