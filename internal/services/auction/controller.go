package auction

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/auctiongame-go/internal/dependencies/clock"
	"github.com/mcoot/auctiongame-go/internal/dependencies/random"
	"github.com/mcoot/auctiongame-go/internal/keyedlock"
	"github.com/mcoot/auctiongame-go/internal/model"
	"github.com/mcoot/auctiongame-go/internal/services/catalog"
	"github.com/mcoot/auctiongame-go/internal/services/itemqueue"
	"github.com/mcoot/auctiongame-go/internal/services/joker"
	"github.com/mcoot/auctiongame-go/internal/services/scoring"
	"github.com/mcoot/auctiongame-go/internal/storage"
)

const (
	// SessionIDLength is the length of generated session ids
	SessionIDLength = 12
	// SessionIDAlphabet is the characters used in session ids
	SessionIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// MaxDecrement bounds the random price decay per tick
	MaxDecrement = 10

	// storeTimeout bounds each storage round-trip; a timed-out command
	// fails whole without persisting anything
	storeTimeout = 5 * time.Second
)

// Notifier publishes committed session snapshots to the session's audience.
// Publication is fire-and-forget: it happens after persistence and its
// failure never rolls back a command.
type Notifier interface {
	SessionChanged(ctx context.Context, sess *model.AuctionSession)
	SessionRemoved(ctx context.Context, id model.SessionID)
}

// noopNotifier is used when no notifier is wired (e.g. in unit tests)
type noopNotifier struct{}

func (noopNotifier) SessionChanged(context.Context, *model.AuctionSession) {}
func (noopNotifier) SessionRemoved(context.Context, model.SessionID)      {}

// Controller is the auction session state machine. All mutation goes
// through its commands, each of which runs load-mutate-recompute-save under
// a per-session lock and broadcasts the committed snapshot afterwards.
type Controller struct {
	storage        storage.Storage
	catalogService *catalog.Service
	queueService   *itemqueue.Service
	jokerService   *joker.Service
	scoringService *scoring.Service
	notifier       Notifier
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger

	locks *keyedlock.Table[model.SessionID]
}

// NewController creates a new auction controller
func NewController(
	storage storage.Storage,
	catalogService *catalog.Service,
	queueService *itemqueue.Service,
	jokerService *joker.Service,
	scoringService *scoring.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		catalogService: catalogService,
		queueService:   queueService,
		jokerService:   jokerService,
		scoringService: scoringService,
		notifier:       noopNotifier{},
		clock:          clock,
		random:         random,
		logger:         logger,
		locks:          keyedlock.New[model.SessionID](),
	}
}

// SetNotifier wires the broadcast sink. Must be called before the first
// command is processed.
func (c *Controller) SetNotifier(n Notifier) {
	if n != nil {
		c.notifier = n
	}
}

// CreateSession starts an auction for the room's roster. The queue holds
// 2 × playerCount shuffled catalog items with the first already up for
// auction.
func (c *Controller) CreateSession(ctx context.Context, room *model.Room) (*model.AuctionSession, error) {
	roster := room.PlayerIDs()
	if len(roster) == 0 {
		return nil, model.ErrInsufficientPlayers
	}

	queue, err := c.catalogService.BuildQueue(len(roster))
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	sess := &model.AuctionSession{
		ID:           model.SessionID(c.random.String(SessionIDLength, SessionIDAlphabet)),
		OwnerID:      room.OwnerID,
		PlayerIDs:    roster,
		Stats:        make(map[model.PlayerID]*model.PlayerStat, len(roster)),
		ItemQueue:    queue[1:],
		CurrentItem:  queue[0],
		CurrentPrice: model.StartingPrice,
		JokerValue:   c.random.Roll(joker.MaxValue),
		State:        model.SessionStateInProgress,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, id := range roster {
		sess.Stats[id] = &model.PlayerStat{
			PlayerID:   id,
			Money:      model.StartingMoney,
			OwnedItems: []model.ItemID{},
		}
	}
	sess.Points = c.scoringService.ComputePoints(sess.Stats)

	if err := c.saveSession(ctx, sess); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(sess.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("session created",
		slog.String("session_id", string(sess.ID)),
		slog.String("owner_id", string(sess.OwnerID)),
		slog.Int("player_count", len(roster)),
		slog.Int("queue_length", len(sess.ItemQueue)),
	)

	c.notifier.SessionChanged(ctx, sess)
	return sess, nil
}

// GetSession retrieves a session by id
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.AuctionSession, error) {
	return c.loadSession(ctx, id)
}

// Tick decays the current item's price by a random amount in
// [1, MaxDecrement]. When the price would drop to zero or below the queue
// advances instead, which may end the session.
func (c *Controller) Tick(ctx context.Context, id model.SessionID) (*model.AuctionSession, error) {
	return c.mutate(ctx, id, func(sess *model.AuctionSession) error {
		decrement := c.random.Roll(MaxDecrement)
		if sess.CurrentPrice-decrement > 0 {
			sess.CurrentPrice -= decrement
			sess.LastDecrement = decrement
			return nil
		}

		if c.queueService.Advance(sess) == itemqueue.ResultEnded {
			return c.finishSession(sess)
		}
		return nil
	})
}

// Purchase buys the current item for the given player at the current price
// (or free, on a joker hit) and advances to the next item.
func (c *Controller) Purchase(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*model.AuctionSession, error) {
	return c.mutate(ctx, id, func(sess *model.AuctionSession) error {
		result, err := c.jokerService.ApplyPurchase(sess, playerID)
		if err != nil {
			return err
		}

		c.logger.Info("item purchased",
			slog.String("session_id", string(sess.ID)),
			slog.String("player_id", string(playerID)),
		)

		if result == itemqueue.ResultEnded {
			return c.finishSession(sess)
		}
		return nil
	})
}

// BuyJoker replaces the session's joker value with the player's guess
func (c *Controller) BuyJoker(ctx context.Context, id model.SessionID, playerID model.PlayerID, value int) (*model.AuctionSession, error) {
	return c.mutate(ctx, id, func(sess *model.AuctionSession) error {
		return c.jokerService.BuyJoker(sess, playerID, value)
	})
}

// CurrentWinner returns the winner once the session is over, or the current
// points leader while it is still running. The second return reports
// whether the result is final.
func (c *Controller) CurrentWinner(ctx context.Context, id model.SessionID) (model.PlayerID, bool, error) {
	sess, err := c.loadSession(ctx, id)
	if err != nil {
		return "", false, err
	}

	if sess.IsOver() {
		return sess.WinnerID, true, nil
	}

	leader, err := c.scoringService.ResolveWinner(sess.PlayerIDs, sess.Points)
	if err != nil {
		return "", false, err
	}
	return leader, false, nil
}

// RemoveSession deletes a session from storage. This is the only way a
// session is destroyed; finished sessions otherwise stay readable.
func (c *Controller) RemoveSession(ctx context.Context, id model.SessionID) error {
	unlock := c.locks.Acquire(id)
	defer unlock()

	if err := c.deleteSession(ctx, id); err != nil {
		return err
	}
	c.locks.Forget(id)

	c.logger.Info("session removed", slog.String("session_id", string(id)))
	c.notifier.SessionRemoved(ctx, id)
	return nil
}

// mutate runs a command against a session under its lock. The points map is
// recomputed from stats before every save, so readers never observe stale
// points. Commands against a finished session are benign no-ops that return
// the current snapshot.
func (c *Controller) mutate(ctx context.Context, id model.SessionID, apply func(*model.AuctionSession) error) (*model.AuctionSession, error) {
	unlock := c.locks.Acquire(id)
	defer unlock()

	sess, err := c.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if sess.IsOver() {
		return sess, nil
	}

	if err := apply(sess); err != nil {
		return nil, err
	}

	sess.Points = c.scoringService.ComputePoints(sess.Stats)
	sess.UpdatedAt = c.clock.Now()

	if err := c.saveSession(ctx, sess); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.notifier.SessionChanged(ctx, sess)
	return sess, nil
}

// finishSession resolves the winner at the moment the session ends. It runs
// inside mutate, so the transition and the winner are committed together,
// exactly once.
func (c *Controller) finishSession(sess *model.AuctionSession) error {
	// Points may be one mutation behind here; resolve against fresh values
	sess.Points = c.scoringService.ComputePoints(sess.Stats)

	winner, err := c.scoringService.ResolveWinner(sess.PlayerIDs, sess.Points)
	if err != nil {
		return err
	}
	sess.WinnerID = winner

	c.logger.Info("session over",
		slog.String("session_id", string(sess.ID)),
		slog.String("winner_id", string(winner)),
		slog.Int("winning_points", sess.Points[winner]),
	)
	return nil
}

func (c *Controller) loadSession(ctx context.Context, id model.SessionID) (*model.AuctionSession, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return c.storage.GetSession(ctx, id)
}

func (c *Controller) saveSession(ctx context.Context, sess *model.AuctionSession) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return c.storage.SaveSession(ctx, sess)
}

func (c *Controller) deleteSession(ctx context.Context, id model.SessionID) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return c.storage.DeleteSession(ctx, id)
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateSession(ctx context.Context, room *model.Room) (*model.AuctionSession, error)
	GetSession(ctx context.Context, id model.SessionID) (*model.AuctionSession, error)
	Tick(ctx context.Context, id model.SessionID) (*model.AuctionSession, error)
	Purchase(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*model.AuctionSession, error)
	BuyJoker(ctx context.Context, id model.SessionID, playerID model.PlayerID, value int) (*model.AuctionSession, error)
	CurrentWinner(ctx context.Context, id model.SessionID) (model.PlayerID, bool, error)
	RemoveSession(ctx context.Context, id model.SessionID) error
}

var _ ControllerInterface = (*Controller)(nil)
