package model

import "time"

// RoomID uniquely identifies a room
type RoomID string

// Room is a pre-game gathering of players. The first member is the owner;
// once a game starts the room is deleted and its roster becomes the
// session's roster.
type Room struct {
	ID        RoomID
	OwnerID   PlayerID
	Players   []Player
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetPlayer returns the member with the given player ID, or nil if not found
func (r *Room) GetPlayer(playerID PlayerID) *Player {
	for i := range r.Players {
		if r.Players[i].ID == playerID {
			return &r.Players[i]
		}
	}
	return nil
}

// PlayerIDs returns the roster in join order
func (r *Room) PlayerIDs() []PlayerID {
	ids := make([]PlayerID, len(r.Players))
	for i, p := range r.Players {
		ids[i] = p.ID
	}
	return ids
}
