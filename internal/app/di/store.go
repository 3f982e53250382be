// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"estate_backend/internal/config"
	authadapters "estate_backend/internal/feature/auth/adapters"
	authusecase "estate_backend/internal/feature/auth/usecase"
	propertyadapters "estate_backend/internal/feature/property/adapters"
	propertyusecase "estate_backend/internal/feature/property/usecase"
	relationusecase "estate_backend/internal/feature/relation/usecase"
	"estate_backend/internal/platform/cache"
	"estate_backend/internal/platform/db"
	"estate_backend/internal/platform/http/handler"
	"estate_backend/internal/platform/mongodb"
	platformredis "estate_backend/internal/platform/redis"
)

// UserStore is everything the usecases need from the user collection.
type UserStore interface {
	authusecase.UserRepository
	relationusecase.UserRepository
	propertyusecase.OwnerRepository
}

// Store is the selected persistence backend.
type Store struct {
	Users      UserStore
	Properties propertyusecase.PropertyRepository

	// Deps feeds /readyz.
	Deps map[string]handler.Pinger

	close func(ctx context.Context) error
}

// Close releases the underlying connections.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// NewStore opens the backend named by cfg.StoreDriver.
func NewStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return newMongoStore(ctx, cfg)
	case config.DriverPostgres:
		return newGormStore(ctx, cfg, cfg.DatabaseURL, db.PostgresOpener)
	case config.DriverSQLite:
		return newGormStore(ctx, cfg, cfg.SQLitePath, db.SQLiteOpener)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func newMongoStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.StoreTimeout)
	if err != nil {
		return nil, err
	}
	database := client.Database(cfg.MongoDatabase)

	users := authadapters.NewUserMongo(database)
	props := propertyadapters.NewPropertyMongo(database)
	if err := mongodb.EnsureIndexes(ctx, users, props); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Store{
		Users:      users,
		Properties: props,
		Deps:       map[string]handler.Pinger{"mongo": handler.PingFunc(mongodb.Pinger(client))},
		close:      client.Disconnect,
	}, nil
}

func newGormStore(ctx context.Context, cfg *config.Config, dsn string, open db.Opener) (*Store, error) {
	gdb, err := db.ConnectWithRetry(dsn, cfg.StoreTimeout, open)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := db.Migrate(gdb); err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "schema migrated", "driver", cfg.StoreDriver)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	ping := handler.PingFunc(func(ctx context.Context) error { return db.Ping(ctx, gdb) })
	return &Store{
		Users:      authadapters.NewUserGorm(gdb),
		Properties: propertyadapters.NewPropertyGorm(gdb),
		Deps:       map[string]handler.Pinger{cfg.StoreDriver: ping},
		close:      func(context.Context) error { return sqlDB.Close() },
	}, nil
}

// WithPropertyCache decorates the property store with Redis when rdb is set
// and registers Redis as a readiness dependency.
func (s *Store) WithPropertyCache(rdb *redis.Client, cfg *config.Config) {
	if rdb == nil {
		return
	}
	s.Properties = cache.NewCachingPropertyRepository(rdb, cfg.CacheTTL, s.Properties, "properties")
	s.Deps["redis"] = handler.PingFunc(platformredis.Pinger(rdb))
}

// NewRedis opens the optional cache client.
func NewRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	return platformredis.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
}
