// Package main provides the API server entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/lllypuk/userhub/internal/application/ranking"
	userapp "github.com/lllypuk/userhub/internal/application/user"
	"github.com/lllypuk/userhub/internal/config"
	"github.com/lllypuk/userhub/internal/domain/post"
	httphandler "github.com/lllypuk/userhub/internal/handler/http"
	"github.com/lllypuk/userhub/internal/infrastructure/httpserver"
	"github.com/lllypuk/userhub/internal/infrastructure/metrics"
	mongodbinfra "github.com/lllypuk/userhub/internal/infrastructure/mongodb"
	"github.com/lllypuk/userhub/internal/infrastructure/repository/memory"
	"github.com/lllypuk/userhub/internal/infrastructure/repository/mongodb"
	"github.com/lllypuk/userhub/internal/middleware"
)

// Container initialization timeouts.
const (
	containerInitTimeout   = 30 * time.Second
	redisPingTimeout       = 5 * time.Second
	mongoDisconnectTimeout = 10 * time.Second
)

// Container holds all application dependencies and manages their lifecycle.
// It implements httpserver.HealthChecker for unified health endpoint support.
type Container struct {
	// Configuration
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure, nil in mock mode
	MongoDB *mongo.Client
	Redis   *redis.Client

	// Metrics
	MetricsRegistry *prometheus.Registry
	HTTPMetrics     *metrics.HTTPMetrics

	// Stores
	UserRepo       userapp.Repository
	PostAggregator post.Aggregator
	RateLimitStore middleware.RateLimitStore

	// Application
	UserService *userapp.Service
	RankingUC   *ranking.ComputeUseCase

	// HTTP Handlers
	UserHandler    *httphandler.UserHandler
	RankingHandler *httphandler.RankingHandler
}

// Ensure Container implements httpserver.HealthChecker.
var _ httpserver.HealthChecker = (*Container)(nil)

var errClientNotInitialized = errors.New("client not initialized")

// ContainerOption configures the Container.
type ContainerOption func(*Container)

// WithLogger sets a custom logger for the container.
func WithLogger(logger *slog.Logger) ContainerOption {
	return func(c *Container) {
		c.Logger = logger
	}
}

// NewContainer creates a new dependency injection container.
// The wiring mode (real/mock) is determined by config.App.Mode.
func NewContainer(cfg *config.Config, opts ...ContainerOption) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}

	c.logWiringMode()

	if err := c.setupInfrastructure(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to setup infrastructure: %w", err)
	}

	c.setupMetrics()
	c.setupStores()

	if err := c.setupApplication(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to setup application: %w", err)
	}

	c.setupHTTPHandlers()

	if err := c.validateWiring(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("wiring validation failed: %w", err)
	}

	return c, nil
}

func (c *Container) logWiringMode() {
	mode := c.Config.App.Mode
	if mode == "" {
		mode = config.AppModeReal
	}

	attrs := []any{
		slog.String("mode", string(mode)),
		slog.String("environment", c.Config.App.Environment),
		slog.String("ranking_mode", c.Config.Ranking.Mode),
	}
	if c.Config.App.IsMockMode() {
		c.Logger.Warn("container starting in MOCK mode", attrs...)
		return
	}
	c.Logger.Info("container starting in REAL mode", attrs...)
}

// validateWiring ensures all required dependencies are properly initialized.
func (c *Container) validateWiring() error {
	var errs []error

	if c.Config.App.IsRealMode() && c.MongoDB == nil {
		errs = append(errs, errors.New("mongodb client not initialized"))
	}
	if c.rateLimitEnabled() && c.RateLimitStore == nil {
		errs = append(errs, errors.New("rate limit store not initialized"))
	}
	if c.UserRepo == nil {
		errs = append(errs, errors.New("user repository not initialized"))
	}
	if c.PostAggregator == nil {
		errs = append(errs, errors.New("post aggregator not initialized"))
	}
	if c.UserHandler == nil {
		errs = append(errs, errors.New("user handler not initialized"))
	}
	if c.RankingHandler == nil {
		errs = append(errs, errors.New("ranking handler not initialized"))
	}

	return errors.Join(errs...)
}

func (c *Container) rateLimitEnabled() bool {
	return c.Config.RateLimit.Enabled
}

// setupInfrastructure connects to MongoDB and Redis in real mode.
// Mock mode needs no external services.
func (c *Container) setupInfrastructure() error {
	if c.Config.App.IsMockMode() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), containerInitTimeout)
	defer cancel()

	if err := c.setupMongoDB(ctx); err != nil {
		return fmt.Errorf("mongodb: %w", err)
	}

	if c.rateLimitEnabled() {
		if err := c.setupRedis(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}

	return nil
}

// setupMongoDB connects, pings and ensures indexes. The unique username index
// must exist before the first insert.
func (c *Container) setupMongoDB(ctx context.Context) error {
	clientOpts := options.Client().
		ApplyURI(c.Config.MongoDB.URI).
		SetMaxPoolSize(c.Config.MongoDB.MaxPoolSize).
		SetTimeout(c.Config.MongoDB.Timeout)

	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	c.MongoDB = client

	pingCtx, cancel := context.WithTimeout(ctx, c.Config.MongoDB.Timeout)
	defer cancel()

	if err = client.Ping(pingCtx, nil); err != nil {
		return fmt.Errorf("failed to ping: %w", err)
	}

	c.Logger.InfoContext(ctx, "connected to MongoDB",
		slog.String("database", c.Config.MongoDB.Database),
	)

	indexCtx, indexCancel := context.WithTimeout(ctx, c.Config.MongoDB.Timeout)
	defer indexCancel()

	if err = mongodbinfra.CreateAllIndexes(indexCtx, c.database(), c.collections()); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	c.Logger.InfoContext(ctx, "MongoDB indexes created successfully")
	return nil
}

func (c *Container) setupRedis(ctx context.Context) error {
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
		PoolSize: c.Config.Redis.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := c.Redis.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to ping: %w", err)
	}

	c.Logger.InfoContext(ctx, "connected to Redis",
		slog.String("addr", c.Config.Redis.Addr),
	)
	return nil
}

func (c *Container) database() *mongo.Database {
	return c.MongoDB.Database(c.Config.MongoDB.Database)
}

func (c *Container) collections() mongodbinfra.Collections {
	return mongodbinfra.Collections{
		Users: c.Config.MongoDB.UsersCollection,
		Posts: c.Config.MongoDB.PostsCollection,
	}
}

// setupMetrics creates a private registry so that tests can build several
// containers in one process.
func (c *Container) setupMetrics() {
	c.MetricsRegistry = prometheus.NewRegistry()
	c.MetricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.HTTPMetrics = metrics.NewHTTPMetrics(c.MetricsRegistry)
}

func (c *Container) setupStores() {
	if c.Config.App.IsMockMode() {
		users := memory.NewUserRepository()
		c.UserRepo = users
		c.PostAggregator = memory.NewPostAggregator(users)
		if c.rateLimitEnabled() {
			c.RateLimitStore = middleware.NewMemoryRateLimitStore()
		}
		c.Logger.Debug("in-memory stores initialized")
		return
	}

	db := c.database()
	colls := c.collections()

	c.UserRepo = mongodb.NewMongoUserRepository(
		db.Collection(colls.Users),
		mongodb.WithUserRepoLogger(c.Logger),
	)
	c.PostAggregator = mongodb.NewMongoPostAggregator(
		db.Collection(colls.Posts),
		colls.Users,
		mongodb.WithPostAggregatorLogger(c.Logger),
	)
	if c.Redis != nil {
		c.RateLimitStore = middleware.NewRedisRateLimitStore(
			middleware.NewGoRedisClient(c.Redis),
			middleware.DefaultRateLimitPrefix,
		)
	}
	c.Logger.Debug("mongodb stores initialized")
}

func (c *Container) setupApplication() error {
	mode, err := ranking.ParseMode(c.Config.Ranking.Mode)
	if err != nil {
		return err
	}

	c.UserService = userapp.NewService(c.UserRepo)
	c.RankingUC = ranking.NewComputeUseCase(c.PostAggregator, mode, c.Config.Ranking.MaxTop)
	c.Logger.Info("ranking configured", slog.String("mode", string(c.RankingUC.Mode())))
	return nil
}

func (c *Container) setupHTTPHandlers() {
	c.UserHandler = httphandler.NewUserHandler(c.UserService)
	c.RankingHandler = httphandler.NewRankingHandler(c.RankingUC)
}

// Close gracefully closes all container resources.
// Resources are closed in reverse order of initialization.
func (c *Container) Close() error {
	c.Logger.Info("closing container resources...")

	var errs []error

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		} else {
			c.Logger.Debug("redis connection closed")
		}
	}

	if c.MongoDB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), mongoDisconnectTimeout)
		defer cancel()

		if err := c.MongoDB.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongodb disconnect: %w", err))
		} else {
			c.Logger.Debug("mongodb connection closed")
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	c.Logger.Info("all container resources closed")
	return nil
}

// IsReady implements httpserver.HealthChecker.
func (c *Container) IsReady(ctx context.Context) bool {
	for _, status := range c.GetHealthStatus(ctx) {
		if status.Status == httpserver.StatusUnhealthy {
			c.Logger.WarnContext(ctx, "readiness check failed",
				slog.String("component", string(status.Name)),
				slog.String("message", status.Message),
			)
			return false
		}
	}
	return true
}

// GetHealthStatus implements httpserver.HealthChecker.
func (c *Container) GetHealthStatus(ctx context.Context) []httpserver.ComponentStatus {
	return httpserver.RunChecks(ctx, c.healthChecks())
}

// healthChecks lists what this wiring depends on. Redis only backs rate
// limiting, so losing it degrades the service instead of failing readiness.
func (c *Container) healthChecks() []httpserver.ComponentCheck {
	if c.Config != nil && c.Config.App.IsMockMode() {
		return []httpserver.ComponentCheck{
			{Component: httpserver.ComponentUserStore, Note: "in-memory"},
		}
	}

	checks := []httpserver.ComponentCheck{{
		Component: httpserver.ComponentMongoDB,
		Critical:  true,
		Check: func(ctx context.Context) error {
			if c.MongoDB == nil {
				return errClientNotInitialized
			}
			return c.MongoDB.Ping(ctx, nil)
		},
	}}

	if c.Config == nil || c.rateLimitEnabled() {
		checks = append(checks, httpserver.ComponentCheck{
			Component: httpserver.ComponentRedis,
			Check: func(ctx context.Context) error {
				if c.Redis == nil {
					return errClientNotInitialized
				}
				return c.Redis.Ping(ctx).Err()
			},
		})
	}

	return checks
}
