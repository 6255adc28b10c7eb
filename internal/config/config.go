// Package config provides configuration loading and validation for userhub.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Default configuration constants.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8080
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	DefaultMongoDBTimeout     = 10 * time.Second
	DefaultMongoDBMaxPoolSize = 100
	DefaultUsersCollection    = "users"
	DefaultPostsCollection    = "posts"

	DefaultRedisPoolSize = 10

	DefaultRateLimit       = 100
	DefaultRateLimitWindow = time.Minute
	DefaultRateLimitBurst  = 10

	DefaultRankingMaxTop = 100
)

// AppMode defines the application wiring mode.
type AppMode string

// Application wiring modes.
const (
	// AppModeReal wires MongoDB and Redis. This is the default.
	AppModeReal AppMode = "real"

	// AppModeMock serves the full API from in-memory stores.
	// Not allowed in production.
	AppModeMock AppMode = "mock"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Ranking modes accepted in ranking.mode.
const (
	RankingModeLiteral = "literal"
	RankingModeTopK    = "top_k"
)

// Config holds the complete application configuration.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	MongoDB   MongoDBConfig   `yaml:"mongodb"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Ranking   RankingConfig   `yaml:"ranking"`
	Log       LogConfig       `yaml:"log"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Name        string  `yaml:"name" env:"APP_NAME"`
	Mode        AppMode `yaml:"mode" env:"APP_MODE"`
	Environment string  `yaml:"environment" env:"APP_ENV"`
}

// IsRealMode returns true if the application should use real implementations.
func (c AppConfig) IsRealMode() bool {
	return c.Mode == "" || c.Mode == AppModeReal
}

// IsMockMode returns true if the application should use in-memory stores.
func (c AppConfig) IsMockMode() bool {
	return c.Mode == AppModeMock
}

// ServerConfig holds HTTP server configuration.
//
//nolint:golines // Struct tags require longer lines for readability
type ServerConfig struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	AllowOrigins    []string      `yaml:"allow_origins" env:"SERVER_ALLOW_ORIGINS"`
}

// Address returns the full server address (host:port).
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MongoDBConfig holds MongoDB connection configuration.
//
//nolint:golines // Struct tags require longer lines for readability
type MongoDBConfig struct {
	URI             string        `yaml:"uri" env:"MONGODB_URI"`
	Database        string        `yaml:"database" env:"MONGODB_DATABASE"`
	UsersCollection string        `yaml:"users_collection" env:"MONGODB_USERS_COLLECTION"`
	PostsCollection string        `yaml:"posts_collection" env:"MONGODB_POSTS_COLLECTION"`
	Timeout         time.Duration `yaml:"timeout" env:"MONGODB_TIMEOUT"`
	MaxPoolSize     uint64        `yaml:"max_pool_size" env:"MONGODB_MAX_POOL_SIZE"`
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
	PoolSize int    `yaml:"pool_size" env:"REDIS_POOL_SIZE"`
}

// RateLimitConfig holds per-client request quotas.
type RateLimitConfig struct {
	Enabled bool          `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
	Limit   int           `yaml:"limit" env:"RATE_LIMIT_LIMIT"`
	Window  time.Duration `yaml:"window" env:"RATE_LIMIT_WINDOW"`
	Burst   int           `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

// RankingConfig selects the post ranking aggregation.
type RankingConfig struct {
	Mode   string `yaml:"mode" env:"RANKING_MODE"`
	MaxTop int    `yaml:"max_top" env:"RANKING_MAX_TOP"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`   // debug | info | warn | error
	Format string `yaml:"format" env:"LOG_FORMAT"` // json | text
}

// Configuration errors.
var (
	ErrConfigNotFound      = errors.New("configuration file not found")
	ErrConfigInvalid       = errors.New("invalid configuration")
	ErrInvalidDuration     = errors.New("invalid duration format")
	ErrInvalidLogLevel     = errors.New("invalid log level: must be debug, info, warn, or error")
	ErrInvalidLogFormat    = errors.New("invalid log format: must be json or text")
	ErrInvalidAppMode      = errors.New("invalid app mode: must be real or mock")
	ErrInvalidEnvironment  = errors.New("invalid environment: must be development or production")
	ErrInvalidRankingMode  = errors.New("invalid ranking mode: must be literal or top_k")
	ErrMockModeInProd      = errors.New("mock mode is not allowed in production")
	ErrUnsupportedEnvField = errors.New("unsupported field type")
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "userhub",
			Mode:        AppModeReal,
			Environment: EnvDevelopment,
		},
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			AllowOrigins:    []string{"*"},
		},
		MongoDB: MongoDBConfig{
			URI:             "mongodb://localhost:27017",
			Database:        "userhub",
			UsersCollection: DefaultUsersCollection,
			PostsCollection: DefaultPostsCollection,
			Timeout:         DefaultMongoDBTimeout,
			MaxPoolSize:     DefaultMongoDBMaxPoolSize,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: DefaultRedisPoolSize,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			Limit:   DefaultRateLimit,
			Window:  DefaultRateLimitWindow,
			Burst:   DefaultRateLimitBurst,
		},
		Ranking: RankingConfig{
			Mode:   RankingModeLiteral,
			MaxTop: DefaultRankingMaxTop,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate validates the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errs []error

	errs = c.validateApp(errs)
	errs = c.validateServer(errs)
	errs = c.validateMongoDB(errs)
	errs = c.validateRedis(errs)
	errs = c.validateRateLimit(errs)
	errs = c.validateRanking(errs)
	errs = c.validateLog(errs)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, errors.Join(errs...))
	}

	return nil
}

func (c *Config) validateApp(errs []error) []error {
	if c.App.Mode != "" && c.App.Mode != AppModeReal && c.App.Mode != AppModeMock {
		errs = append(errs, fmt.Errorf("%w: got %q", ErrInvalidAppMode, c.App.Mode))
	}
	switch c.App.Environment {
	case "", EnvDevelopment, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("%w: got %q", ErrInvalidEnvironment, c.App.Environment))
	}
	if c.App.IsMockMode() && c.IsProduction() {
		errs = append(errs, ErrMockModeInProd)
	}
	return errs
}

func (c *Config) validateServer(errs []error) []error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	return errs
}

// validateMongoDB skips connection settings in mock mode, where no database is used.
func (c *Config) validateMongoDB(errs []error) []error {
	if c.App.IsMockMode() {
		return errs
	}
	if c.MongoDB.URI == "" {
		errs = append(errs, errors.New("mongodb.uri is required"))
	}
	if c.MongoDB.Database == "" {
		errs = append(errs, errors.New("mongodb.database is required"))
	}
	if c.MongoDB.UsersCollection == "" {
		errs = append(errs, errors.New("mongodb.users_collection is required"))
	}
	if c.MongoDB.PostsCollection == "" {
		errs = append(errs, errors.New("mongodb.posts_collection is required"))
	}
	if c.MongoDB.Timeout <= 0 {
		errs = append(errs, errors.New("mongodb.timeout must be positive"))
	}
	return errs
}

func (c *Config) validateRedis(errs []error) []error {
	if c.App.IsRealMode() && c.RateLimit.Enabled && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required when rate limiting is enabled"))
	}
	return errs
}

func (c *Config) validateRateLimit(errs []error) []error {
	if !c.RateLimit.Enabled {
		return errs
	}
	if c.RateLimit.Limit <= 0 {
		errs = append(errs, errors.New("rate_limit.limit must be positive"))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("rate_limit.window must be positive"))
	}
	if c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rate_limit.burst must not be negative"))
	}
	return errs
}

func (c *Config) validateRanking(errs []error) []error {
	switch strings.ToLower(c.Ranking.Mode) {
	case "", RankingModeLiteral, RankingModeTopK:
	default:
		errs = append(errs, fmt.Errorf("%w: got %q", ErrInvalidRankingMode, c.Ranking.Mode))
	}
	if c.Ranking.MaxTop <= 0 {
		errs = append(errs, errors.New("ranking.max_top must be positive"))
	}
	return errs
}

func (c *Config) validateLog(errs []error) []error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ErrInvalidLogLevel)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, ErrInvalidLogFormat)
	}
	return errs
}

// IsDevelopment reports whether debug logging is on.
func (c *Config) IsDevelopment() bool {
	return strings.ToLower(c.Log.Level) == "debug"
}

// IsProduction reports whether app.environment is production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}
