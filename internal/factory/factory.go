package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/auctiongame-go/internal/api/sse"
	"github.com/mcoot/auctiongame-go/internal/dependencies/clock"
	"github.com/mcoot/auctiongame-go/internal/dependencies/random"
	"github.com/mcoot/auctiongame-go/internal/services/auction"
	"github.com/mcoot/auctiongame-go/internal/services/catalog"
	"github.com/mcoot/auctiongame-go/internal/services/itemqueue"
	"github.com/mcoot/auctiongame-go/internal/services/joker"
	"github.com/mcoot/auctiongame-go/internal/services/player"
	"github.com/mcoot/auctiongame-go/internal/services/room"
	"github.com/mcoot/auctiongame-go/internal/services/scoring"
	"github.com/mcoot/auctiongame-go/internal/storage"
	"github.com/mcoot/auctiongame-go/internal/storage/memory"
	redisstorage "github.com/mcoot/auctiongame-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	CatalogService    *catalog.Service
	QueueService      *itemqueue.Service
	JokerService      *joker.Service
	ScoringService    *scoring.Service
	AuctionController *auction.Controller
	PlayerService     *player.Service
	RoomService       *room.Service
	HubManager        *sse.HubManager
	Broadcaster       *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	catalogService := catalog.New(rnd)
	queueService := itemqueue.New(rnd)
	jokerService := joker.New(queueService)
	scoringService := scoring.New()
	auctionController := auction.NewController(store, catalogService, queueService, jokerService, scoringService, clk, rnd, logger)
	playerService := player.New(store, clk, rnd, logger)
	roomService := room.New(store, auctionController, clk, rnd, logger)

	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	auctionController.SetNotifier(broadcaster)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		CatalogService:    catalogService,
		QueueService:      queueService,
		JokerService:      jokerService,
		ScoringService:    scoringService,
		AuctionController: auctionController,
		PlayerService:     playerService,
		RoomService:       roomService,
		HubManager:        hubManager,
		Broadcaster:       broadcaster,
	}
}
