package redis

import (
	"fmt"

	"github.com/mcoot/auctiongame-go/internal/model"
)

// Key prefix for all auction-related data
const keyPrefix = "auction"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playerNameIndexKey returns the Redis key for the display_name -> player_id index
func playerNameIndexKey(displayName string) string {
	return fmt.Sprintf("%s:idx:player_name:%s", keyPrefix, displayName)
}

// roomKey returns the Redis key for a Room
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}

// roomsIndexKey returns the Redis key for the SET of all room keys
func roomsIndexKey() string {
	return fmt.Sprintf("%s:idx:rooms", keyPrefix)
}

// sessionKey returns the Redis key for an AuctionSession
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}
