package itemqueue

import (
	"github.com/mcoot/auctiongame-go/internal/dependencies/random"
	"github.com/mcoot/auctiongame-go/internal/model"
)

// Result reports the outcome of advancing the item queue
type Result string

const (
	// ResultAdvanced means the next item is now up for auction
	ResultAdvanced Result = "advanced"
	// ResultEnded means the queue is exhausted and the session is over
	ResultEnded Result = "ended"
)

// Service manages progression through a session's item queue
type Service struct {
	random random.Random
}

// New creates a new item queue service
func New(random random.Random) *Service {
	return &Service{
		random: random,
	}
}

// Advance moves the session to the next item, or ends it when the queue is
// exhausted. An unconsumed joker carries over to the next item; a consumed
// one is rerolled. The caller is responsible for winner resolution and
// persistence after ResultEnded.
func (s *Service) Advance(sess *model.AuctionSession) Result {
	if len(sess.ItemQueue) == 0 {
		sess.CurrentItem = ""
		sess.CurrentPrice = 0
		sess.LastDecrement = 0
		sess.State = model.SessionStateOver
		return ResultEnded
	}

	sess.CurrentItem = sess.ItemQueue[0]
	sess.ItemQueue = sess.ItemQueue[1:]
	sess.CurrentPrice = model.StartingPrice
	sess.LastDecrement = 0
	if sess.JokerConsumed {
		sess.JokerValue = s.random.Roll(10)
	}
	sess.JokerConsumed = false

	return ResultAdvanced
}
