package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-api/internal/config"
	infraCache "library-api/internal/infrastructure/cache"
	"library-api/internal/infrastructure/database"
	"library-api/internal/shared/auth"
	"library-api/internal/shared/middleware"
	"library-api/pkg/cache"
	"library-api/pkg/jwt"

	"library-api/internal/domains/author"
	authorHandler "library-api/internal/domains/author/handler"
	authorRepo "library-api/internal/domains/author/repository"
	authorService "library-api/internal/domains/author/service"

	bookHandler "library-api/internal/domains/book/handler"
	bookRepo "library-api/internal/domains/book/repository"
	bookService "library-api/internal/domains/book/service"

	loanHandler "library-api/internal/domains/loan/handler"
	loanRepo "library-api/internal/domains/loan/repository"
	loanService "library-api/internal/domains/loan/service"

	"library-api/internal/domains/user"
	userHandler "library-api/internal/domains/user/handler"
	userRepo "library-api/internal/domains/user/repository"
	userService "library-api/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the API process.
// Initialization order: config, infrastructure, repositories, services,
// handlers.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisCache
	Cache       cache.Cache // nil when Redis is disabled or unreachable
	JWTManager  *jwt.Manager
	Verifier    *auth.Verifier
	RateLimiter *middleware.RateLimiter

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	AuthorRepo author.Repository
	BookRepo   bookRepo.RepositoryInterface
	LoanRepo   loanRepo.RepositoryInterface
	UserRepo   user.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	AuthorService author.Service
	BookService   bookService.ServiceInterface
	LoanService   loanService.ServiceInterface
	UserService   user.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.Handler
	LoanHandler   *loanHandler.LoanHandler
	UserHandler   *userHandler.UserHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph. A database failure is returned;
// a Redis failure only disables the shared rate-limit store.
func NewContainer() (*Container, error) {
	log.Info().Msg("initializing container")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("env", cfg.App.Environment).Msg("config loaded")

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	db := database.NewPostgresDB(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	if cfg.App.Migrate {
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	if cfg.Redis.Enabled {
		rc := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Connect(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, rate limiting falls back to in-process counters")
			_ = rc.Close()
		} else {
			c.Redis = rc
			c.Cache = rc
		}
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	if cfg.RateLimit.Enabled {
		c.RateLimiter = middleware.NewRateLimiter(c.Cache, cfg.RateLimit.Max, cfg.RateLimit.Window)
	}

	// ========================================
	// STEP 4-6: DOMAINS
	// ========================================
	c.initRepositories(db.Pool)
	c.initServices()
	c.initHandlers()

	log.Info().Msg("container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories(db database.Querier) {
	c.AuthorRepo = authorRepo.NewPostgresRepository(db)
	c.BookRepo = bookRepo.NewPostgresRepository(db)
	c.LoanRepo = loanRepo.NewPostgresRepository(db)
	c.UserRepo = userRepo.NewPostgresRepository(db)

	// The verifier resolves token subjects through the user store
	c.Verifier = auth.NewVerifier(c.JWTManager, c.UserRepo)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.BookService = bookService.NewService(c.BookRepo, c.AuthorRepo)
	c.LoanService = loanService.NewLoanService(c.LoanRepo, c.BookRepo, c.UserRepo)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.LoanHandler = loanHandler.NewLoanHandler(c.LoanService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
}

// Cleanup releases pooled connections; called on graceful shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("cleaning up container resources")

	if c.DB != nil {
		c.DB.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}
}
