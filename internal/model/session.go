package model

import "time"

// SessionID uniquely identifies an auction session
type SessionID string

// ItemID identifies an auctionable item
type ItemID string

// SessionState represents the current phase of an auction session
type SessionState string

const (
	SessionStateInProgress SessionState = "in_progress"
	SessionStateOver       SessionState = "over"
)

// PlayerStat is a player's per-session record. Money never goes negative:
// purchases a player cannot afford are rejected, not clipped. OwnedItems is
// append-only for the life of the session.
type PlayerStat struct {
	PlayerID   PlayerID
	Money      int
	OwnedItems []ItemID
}

// StartingMoney is each player's bankroll at session start
const StartingMoney = 100

// StartingPrice is the asking price when an item goes up for auction
const StartingPrice = 100

// AuctionSession is the aggregate root for one descending-price auction game.
// It is mutated only through the auction controller's commands, under the
// controller's per-session lock.
type AuctionSession struct {
	ID      SessionID
	OwnerID PlayerID

	// PlayerIDs is the ordered roster, immutable after creation. Roster
	// order is the tie-break order for winner resolution.
	PlayerIDs []PlayerID
	Stats     map[PlayerID]*PlayerStat

	// Points is derived from Stats by the scoring service as the final step
	// of every committed mutation. It is never set directly.
	Points map[PlayerID]int

	// ItemQueue holds the items not yet offered; CurrentItem is excluded.
	ItemQueue   []ItemID
	CurrentItem ItemID

	CurrentPrice int

	// LastDecrement is the amount subtracted by the most recent tick, 0 if
	// no tick has happened for the current item yet.
	LastDecrement int

	// JokerValue is the active secret threshold in [1,10]. A purchase is
	// free when it equals LastDecrement and the joker is not yet consumed.
	JokerValue    int
	JokerConsumed bool

	State    SessionState
	WinnerID PlayerID // set exactly once, when State becomes over

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOver reports whether the session has ended
func (s *AuctionSession) IsOver() bool {
	return s.State == SessionStateOver
}

// Stat returns the stat record for a player, or nil if they are not in the
// session
func (s *AuctionSession) Stat(playerID PlayerID) *PlayerStat {
	return s.Stats[playerID]
}

// Clone returns a deep copy of the session. Storage backends hand out clones
// so that an aborted command never leaks a half-applied mutation.
func (s *AuctionSession) Clone() *AuctionSession {
	c := *s

	c.PlayerIDs = make([]PlayerID, len(s.PlayerIDs))
	copy(c.PlayerIDs, s.PlayerIDs)

	c.Stats = make(map[PlayerID]*PlayerStat, len(s.Stats))
	for id, stat := range s.Stats {
		sc := *stat
		sc.OwnedItems = make([]ItemID, len(stat.OwnedItems))
		copy(sc.OwnedItems, stat.OwnedItems)
		c.Stats[id] = &sc
	}

	c.Points = make(map[PlayerID]int, len(s.Points))
	for id, pts := range s.Points {
		c.Points[id] = pts
	}

	c.ItemQueue = make([]ItemID, len(s.ItemQueue))
	copy(c.ItemQueue, s.ItemQueue)

	return &c
}
