package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/kudosboards/kudos/backend/internal/handler"
	"github.com/kudosboards/kudos/backend/internal/service"
	"github.com/kudosboards/kudos/backend/internal/storage/badger"
	"github.com/kudosboards/kudos/backend/internal/storage/mongo"
	"github.com/kudosboards/kudos/backend/internal/storage/pg"
	"github.com/kudosboards/kudos/backend/internal/utils"
	"github.com/kudosboards/kudos/shared/config"
	"github.com/kudosboards/kudos/shared/domain"
	"github.com/kudosboards/kudos/shared/jwt"
	"github.com/kudosboards/kudos/shared/markdown"
	mw "github.com/kudosboards/kudos/shared/middleware"
	"github.com/kudosboards/kudos/shared/middleware/ratelimiter"
	sharedpg "github.com/kudosboards/kudos/shared/storage/pg"
)

// idle client buckets are dropped after this long
const rateLimiterIdleTTL = 10 * time.Minute

// Store is what every storage backend provides.
type Store interface {
	service.BoardStorage
	service.MessageStorage
	service.UserStorage
	SaveUser(ctx context.Context, user domain.User) error
	Ping(ctx context.Context) error
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Store          Store
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	Jwt            jwt.JwtService
	RateLimiter    *ratelimiter.ClientRateLimiter // nil when limiting is disabled

	closeStore func(ctx context.Context) error
}

// OpenStore connects the backend selected by storage.driver and prepares its schema.
// connCfg sizes the pg pool and is ignored by the other drivers.
// The returned func releases the connection.
func OpenStore(ctx context.Context, cfg *config.Config, connCfg sharedpg.ConnectionConfig) (Store, func(ctx context.Context) error, error) {
	switch cfg.Public.Storage.Driver {
	case config.DriverPg:
		storage, err := pg.New(ctx, cfg.Private.Pg, connCfg)
		if err != nil {
			return nil, nil, err
		}
		if err := storage.Migrate(ctx); err != nil {
			storage.Cleanup()
			return nil, nil, err
		}
		return storage, func(context.Context) error { return storage.Cleanup() }, nil
	case config.DriverMongo:
		storage, err := mongo.New(ctx, cfg.Private.MongoURI, cfg.Public.Storage.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		if err := storage.EnsureIndexes(ctx); err != nil {
			storage.Cleanup(ctx)
			return nil, nil, err
		}
		return storage, storage.Cleanup, nil
	case config.DriverBadger:
		storage, err := badger.New(cfg.Public.Storage.BadgerPath)
		if err != nil {
			return nil, nil, err
		}
		return storage, func(context.Context) error { return storage.Cleanup() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Public.Storage.Driver)
	}
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	store, closeStore, err := OpenStore(ctx, cfg, sharedpg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	board := service.NewBoard(store, store, store, utils.NewBoardValidator(cfg.Public.BoardNameMaxLen))
	message := service.NewMessage(store, utils.NewMessageValidator(cfg.Public.MessageTextMaxLen))
	posting := service.NewPosting(board, message)

	h := handler.New(board, message, posting, store, markdown.New())

	var limiter *ratelimiter.ClientRateLimiter
	if cfg.Public.WriteRatePerSecond > 0 {
		burst := float64(max(cfg.Public.WriteBurst, 1))
		limiter = ratelimiter.New(cfg.Public.WriteRatePerSecond, burst, rateLimiterIdleTTL)
	}

	return &Dependencies{
		Config:         cfg,
		Store:          store,
		Handler:        h,
		AuthMiddleware: mw.NewAuth(jwtService, store),
		Jwt:            jwtService,
		RateLimiter:    limiter,
		closeStore:     closeStore,
	}, nil
}

func (d *Dependencies) Close(ctx context.Context) error {
	if d.closeStore == nil {
		return nil
	}
	return d.closeStore(ctx)
}
