package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Grom-Hilbert/lyra-sub002/internal/domain/authz"
	infraAuthz "github.com/Grom-Hilbert/lyra-sub002/internal/infrastructure/authz"
	"github.com/Grom-Hilbert/lyra-sub002/internal/infrastructure/cache"
	"github.com/Grom-Hilbert/lyra-sub002/internal/infrastructure/database"
	"github.com/Grom-Hilbert/lyra-sub002/pkg/config"
)

// Container はアプリケーションの依存関係を保持するDIコンテナです
type Container struct {
	// Infrastructure
	PgClient    *database.PostgresClient
	RedisClient *cache.RedisClient
	TxManager   *database.TxManager

	// Permission cache (キャッシュ無効時はnil)
	PermissionCache *cache.PermissionCache

	// Authorization Repositories
	AuthzRepos *AuthzRepositories

	// Authorization UseCases
	Authz *AuthzUseCases

	// Permission Resolver
	PermissionResolver authz.PermissionResolver

	// config
	config *config.Config
}

// NewContainer は新しいContainerを作成します
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	return NewContainerWithOptions(ctx, cfg, Options{})
}

// NewContainerWithOptions はオプションを指定してContainerを作成します
func NewContainerWithOptions(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	c := &Container{
		config: cfg,
	}

	// PostgreSQL
	if opts.PostgresPool != nil {
		c.TxManager = database.NewTxManager(opts.PostgresPool)
	} else {
		slog.Info("connecting to PostgreSQL...")
		pgClient, err := database.NewPostgresClient(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		c.PgClient = pgClient
		c.TxManager = database.NewTxManager(pgClient.Pool())
		slog.Info("connected to PostgreSQL")
	}

	// Redis (権限キャッシュ)
	if cfg.Cache.Enabled {
		if opts.RedisClient != nil {
			c.PermissionCache = cache.NewPermissionCache(opts.RedisClient, cfg.Cache.TTL)
		} else {
			slog.Info("connecting to Redis...")
			redisConfig := cache.DefaultConfig()
			redisConfig.URL = cfg.Redis.URL
			redisClient, err := cache.NewRedisClient(redisConfig)
			if err != nil {
				c.Close()
				return nil, fmt.Errorf("failed to connect to Redis: %w", err)
			}
			c.RedisClient = redisClient
			c.PermissionCache = cache.NewPermissionCache(redisClient.Client(), cfg.Cache.TTL)
			slog.Info("connected to Redis")
		}
	}

	// Repositories
	c.AuthzRepos = NewAuthzRepositories(c.TxManager)

	return c, nil
}

// InitAuthzUseCases はAuthorization UseCasesを初期化します
func (c *Container) InitAuthzUseCases() {
	resolver := infraAuthz.NewPermissionResolver(
		c.AuthzRepos.AssignmentRepo,
		c.AuthzRepos.RoleRepo,
		c.AuthzRepos.PermissionRepo,
		c.AuthzRepos.GrantRepo,
	)

	// キャッシュ有効時はデコレータで包み、書き込み側には無効化を配線する
	var invalidator authz.PermissionInvalidator
	if c.PermissionCache != nil {
		c.PermissionResolver = cache.NewCachedResolver(resolver, c.PermissionCache)
		invalidator = c.PermissionCache
	} else {
		c.PermissionResolver = resolver
	}

	c.Authz = NewAuthzUseCases(c.TxManager, c.AuthzRepos, c.PermissionResolver, invalidator)
}

// Close はリソースをクリーンアップします
func (c *Container) Close() error {
	var errs []error

	if c.PgClient != nil {
		c.PgClient.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}

// Options はContainer作成時のオプションを定義します
type Options struct {
	PostgresPool *pgxpool.Pool
	RedisClient  *redis.Client
}
