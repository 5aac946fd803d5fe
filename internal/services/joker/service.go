package joker

import (
	"github.com/mcoot/auctiongame-go/internal/model"
	"github.com/mcoot/auctiongame-go/internal/services/itemqueue"
)

const (
	// Cost is the price of replacing the session's joker value
	Cost = 30

	// MinValue and MaxValue bound valid joker values
	MinValue = 1
	MaxValue = 10
)

// Service implements the joker bluff mechanic: a hidden guess that grants
// one free purchase when it matches the last price decrement.
type Service struct {
	queue *itemqueue.Service
}

// New creates a new joker service
func New(queue *itemqueue.Service) *Service {
	return &Service{
		queue: queue,
	}
}

// IsHit reports whether the joker value matches the last price decrement
func (s *Service) IsHit(jokerValue, lastDecrement int) bool {
	return jokerValue == lastDecrement
}

// ApplyPurchase buys the current item for the given player. The purchase is
// free on a joker hit, which consumes the joker. On success the queue always
// advances to the next item; the returned result tells the caller whether
// the session just ended. Domain errors leave the session untouched.
func (s *Service) ApplyPurchase(sess *model.AuctionSession, playerID model.PlayerID) (itemqueue.Result, error) {
	stat := sess.Stat(playerID)
	if stat == nil {
		return "", model.ErrPlayerNotInSession
	}

	free := !sess.JokerConsumed && s.IsHit(sess.JokerValue, sess.LastDecrement)
	price := sess.CurrentPrice
	if free {
		price = 0
	}

	if stat.Money < price {
		return "", model.ErrInsufficientFunds
	}

	stat.OwnedItems = append(stat.OwnedItems, sess.CurrentItem)
	stat.Money -= price
	if free {
		sess.JokerConsumed = true
	}

	return s.queue.Advance(sess), nil
}

// BuyJoker replaces the session's joker value with the player's guess for a
// flat fee. It does not advance the item queue.
func (s *Service) BuyJoker(sess *model.AuctionSession, playerID model.PlayerID, value int) error {
	if value < MinValue || value > MaxValue {
		return model.ErrInvalidJokerValue
	}

	stat := sess.Stat(playerID)
	if stat == nil {
		return model.ErrPlayerNotInSession
	}
	if stat.Money < Cost {
		return model.ErrInsufficientFunds
	}

	stat.Money -= Cost
	sess.JokerValue = value
	sess.JokerConsumed = false

	return nil
}
