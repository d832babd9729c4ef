package container

import (
	"context"
	"fmt"
	"time"

	"blog-backend/internal/config"
	infraCache "blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/hasher"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"

	"blog-backend/internal/domains/author"
	authorHandler "blog-backend/internal/domains/author/handler"
	authorRepo "blog-backend/internal/domains/author/repository"
	authorService "blog-backend/internal/domains/author/service"

	"blog-backend/internal/domains/post"
	postHandler "blog-backend/internal/domains/post/handler"
	postRepo "blog-backend/internal/domains/post/repository"
	postService "blog-backend/internal/domains/post/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every long-lived dependency of the API process.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB // nil with the memory storage driver
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Hasher     hasher.PasswordHasher

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	AuthorRepo author.Repository
	PostRepo   post.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	AuthorService    author.Service
	IdentityResolver author.IdentityResolver
	PostGuard        post.Guard
	PostService      post.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	AuthorHandler *authorHandler.AuthorHandler
	PostHandler   *postHandler.PostHandler
}

// ========================================
// CONSTRUCTORS
// ========================================

// NewContainer loads configuration from the environment and builds the graph.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return Build(context.Background(), cfg)
}

// Build wires the dependency graph for an already loaded config.
// Order: infrastructure, repositories, services, handlers.
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger.Info("initializing container", map[string]interface{}{
		"environment": cfg.App.Environment,
		"storage":     cfg.Storage.Driver,
	})

	c := &Container{Config: cfg}

	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", nil)
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	if cfg.Storage.Driver == config.StoragePostgres {
		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return fmt.Errorf("failed to load database config: %w", err)
		}

		db := database.NewPostgresDB(dbConfig)

		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err := db.Connect(connectCtx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.DB = db
	}

	c.Cache = c.connectCache(ctx)

	c.JWTManager = jwt.NewManager(jwt.Config{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.AccessTTL(),
	})
	c.Hasher = hasher.NewBcrypt(cfg.Auth.BcryptCost)

	return nil
}

// connectCache falls back to a no-op cache when Redis is disabled or unreachable.
func (c *Container) connectCache(ctx context.Context) cache.Cache {
	if !c.Config.Redis.Enabled {
		return cache.NewNoop()
	}

	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	rc, ok := redisCache.(*infraCache.RedisCache)
	if !ok {
		return redisCache
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rc.Connect(pingCtx); err != nil {
		logger.Warn("redis unavailable, author cache disabled", map[string]interface{}{
			"error": err.Error(),
		})
		_ = rc.Close()
		return cache.NewNoop()
	}

	return rc
}

func (c *Container) initRepositories() {
	if c.DB == nil {
		c.AuthorRepo = authorRepo.NewMemoryRepository()
		c.PostRepo = postRepo.NewMemoryRepository()
		return
	}

	c.AuthorRepo = authorRepo.NewPostgresRepository(c.DB.Pool, c.Cache, c.Config.Redis.AuthorTTL)
	c.PostRepo = postRepo.NewPostgresRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.Hasher, c.JWTManager)
	c.IdentityResolver = authorService.NewIdentityResolver(c.AuthorRepo, c.JWTManager)

	c.PostGuard = postService.NewGuard(c.PostRepo)
	c.PostService = postService.NewPostService(c.PostRepo, c.PostGuard)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, c.Config.Auth.LegacyDuplicateStatus)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases pooled connections. Safe to call more than once.
func (c *Container) Cleanup() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("failed to close database", err)
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}

	logger.Info("container cleanup completed", nil)
}
