package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lllypuk/userhub/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, "userhub", cfg.App.Name)
	assert.True(t, cfg.App.IsRealMode())
	assert.Equal(t, config.EnvDevelopment, cfg.App.Environment)

	assert.Equal(t, config.DefaultHost, cfg.Server.Host)
	assert.Equal(t, config.DefaultPort, cfg.Server.Port)
	assert.Equal(t, config.DefaultShutdownTimeout, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowOrigins)

	assert.Equal(t, "userhub", cfg.MongoDB.Database)
	assert.Equal(t, "users", cfg.MongoDB.UsersCollection)
	assert.Equal(t, "posts", cfg.MongoDB.PostsCollection)
	assert.Equal(t, uint64(config.DefaultMongoDBMaxPoolSize), cfg.MongoDB.MaxPoolSize)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)

	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, config.DefaultRateLimit, cfg.RateLimit.Limit)
	assert.Equal(t, config.DefaultRateLimitWindow, cfg.RateLimit.Window)

	assert.Equal(t, config.RankingModeLiteral, cfg.Ranking.Mode)
	assert.Equal(t, config.DefaultRankingMaxTop, cfg.Ranking.MaxTop)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	require.NoError(t, cfg.Validate())
}

func TestServerConfig_Address(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8080", config.ServerConfig{Host: "0.0.0.0", Port: 8080}.Address())
	assert.Equal(t, "localhost:3000", config.ServerConfig{Host: "localhost", Port: 3000}.Address())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
		wantMsg string
	}{
		{
			name:    "port out of range",
			mutate:  func(c *config.Config) { c.Server.Port = 70000 },
			wantMsg: "server.port must be between 1 and 65535",
		},
		{
			name:    "zero read timeout",
			mutate:  func(c *config.Config) { c.Server.ReadTimeout = 0 },
			wantMsg: "server.read_timeout must be positive",
		},
		{
			name:    "missing mongodb uri",
			mutate:  func(c *config.Config) { c.MongoDB.URI = "" },
			wantMsg: "mongodb.uri is required",
		},
		{
			name:    "missing users collection",
			mutate:  func(c *config.Config) { c.MongoDB.UsersCollection = "" },
			wantMsg: "mongodb.users_collection is required",
		},
		{
			name:    "missing redis with rate limiting",
			mutate:  func(c *config.Config) { c.Redis.Addr = "" },
			wantMsg: "redis.addr is required",
		},
		{
			name:    "non-positive rate limit",
			mutate:  func(c *config.Config) { c.RateLimit.Limit = 0 },
			wantMsg: "rate_limit.limit must be positive",
		},
		{
			name:    "unknown ranking mode",
			mutate:  func(c *config.Config) { c.Ranking.Mode = "fastest" },
			wantErr: config.ErrInvalidRankingMode,
		},
		{
			name:    "non-positive max top",
			mutate:  func(c *config.Config) { c.Ranking.MaxTop = 0 },
			wantMsg: "ranking.max_top must be positive",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *config.Config) { c.Log.Level = "verbose" },
			wantErr: config.ErrInvalidLogLevel,
		},
		{
			name:    "invalid log format",
			mutate:  func(c *config.Config) { c.Log.Format = "xml" },
			wantErr: config.ErrInvalidLogFormat,
		},
		{
			name:    "invalid app mode",
			mutate:  func(c *config.Config) { c.App.Mode = "fake" },
			wantErr: config.ErrInvalidAppMode,
		},
		{
			name:    "invalid environment",
			mutate:  func(c *config.Config) { c.App.Environment = "staging" },
			wantErr: config.ErrInvalidEnvironment,
		},
		{
			name: "mock mode in production",
			mutate: func(c *config.Config) {
				c.App.Mode = config.AppModeMock
				c.App.Environment = config.EnvProduction
			},
			wantErr: config.ErrMockModeInProd,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			require.ErrorIs(t, err, config.ErrConfigInvalid)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestConfig_Validate_JoinsAllErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Port = 0
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
	require.ErrorIs(t, err, config.ErrInvalidLogLevel)
}

func TestConfig_Validate_MockModeSkipsStores(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.App.Mode = config.AppModeMock
	cfg.MongoDB.URI = ""
	cfg.Redis.Addr = ""

	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.App.IsMockMode())
	assert.False(t, cfg.App.IsRealMode())
}

func TestConfig_Validate_DisabledRateLimitIgnoresQuota(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.RateLimit.Enabled = false
	cfg.RateLimit.Limit = 0
	cfg.Redis.Addr = ""

	require.NoError(t, cfg.Validate())
}

func TestConfig_Environment(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())

	cfg.App.Environment = config.EnvProduction
	cfg.Log.Level = "debug"
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromPath_ValidYAML(t *testing.T) {
	path := writeConfig(t, `
app:
  name: "userhub-test"
  mode: "real"
  environment: "production"

server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 45s
  write_timeout: 45s
  shutdown_timeout: 15s
  allow_origins: ["http://localhost:3000"]

mongodb:
  uri: "mongodb://testhost:27017"
  database: "testdb"
  users_collection: "user"
  posts_collection: "post"
  timeout: 5s
  max_pool_size: 50

redis:
  addr: "redis:6379"
  password: "testpass"
  db: 1
  pool_size: 20

rate_limit:
  enabled: true
  limit: 10
  window: 30s
  burst: 2

ranking:
  mode: "top_k"
  max_top: 25

log:
  level: "debug"
  format: "text"
`)

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "userhub-test", cfg.App.Name)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Address())
	assert.Equal(t, 45*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowOrigins)
	assert.Equal(t, "testdb", cfg.MongoDB.Database)
	assert.Equal(t, "user", cfg.MongoDB.UsersCollection)
	assert.Equal(t, "post", cfg.MongoDB.PostsCollection)
	assert.Equal(t, uint64(50), cfg.MongoDB.MaxPoolSize)
	assert.Equal(t, "testpass", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, 10, cfg.RateLimit.Limit)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, 2, cfg.RateLimit.Burst)
	assert.Equal(t, config.RankingModeTopK, cfg.Ranking.Mode)
	assert.Equal(t, 25, cfg.Ranking.MaxTop)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9999
`)

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, config.DefaultHost, cfg.Server.Host)
	assert.Equal(t, config.RankingModeLiteral, cfg.Ranking.Mode)
}

func TestLoadFromPath_NonExistent(t *testing.T) {
	cfg, err := config.LoadFromPath("/non/existent/path/config.yaml")
	require.Error(t, err)
	assert.Nil(t, cfg)
	require.ErrorIs(t, err, config.ErrConfigNotFound)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: this-is-not-a-number
`)

	cfg, err := config.LoadFromPath(path)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_InvalidValues(t *testing.T) {
	path := writeConfig(t, `
ranking:
  mode: "random"
`)

	cfg, err := config.LoadFromPath(path)
	require.ErrorIs(t, err, config.ErrInvalidRankingMode)
	assert.Nil(t, cfg)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	t.Setenv("SERVER_HOST", "env-host")
	t.Setenv("SERVER_PORT", "3333")
	t.Setenv("MONGODB_URI", "mongodb://env-mongo:27017")
	t.Setenv("MONGODB_MAX_POOL_SIZE", "7")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RANKING_MODE", "top_k")
	t.Setenv("SERVER_ALLOW_ORIGINS", "http://a.example, http://b.example,")
	t.Setenv("LOG_LEVEL", "warn")

	path := writeConfig(t, `
server:
  host: "file-host"
  port: 8080
`)

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "env-host", cfg.Server.Host)
	assert.Equal(t, 3333, cfg.Server.Port)
	assert.Equal(t, "mongodb://env-mongo:27017", cfg.MongoDB.URI)
	assert.Equal(t, uint64(7), cfg.MongoDB.MaxPoolSize)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, config.RankingModeTopK, cfg.Ranking.Mode)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.AllowOrigins)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoader_EnvDuration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "2m30s")

	cfg, err := config.NewLoader().WithConfigPaths(nil).Load("")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute+30*time.Second, cfg.Server.ReadTimeout)
}

func TestLoader_EnvInvalidValues(t *testing.T) {
	tests := map[string]string{
		"SERVER_READ_TIMEOUT": "not-a-duration",
		"SERVER_PORT":         "eighty",
		"RATE_LIMIT_ENABLED":  "maybe",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)

			cfg, err := config.NewLoader().WithConfigPaths(nil).Load("")
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoader_ConfigPathEnvVar(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "config-path-host"
  port: 7777
`)
	t.Setenv(config.ConfigPathEnv, path)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "config-path-host", cfg.Server.Host)
	assert.Equal(t, 7777, cfg.Server.Port)
}

func TestLoader_ConfigPathEnvVarMissingFile(t *testing.T) {
	t.Setenv(config.ConfigPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := config.Load()
	require.ErrorIs(t, err, config.ErrConfigNotFound)
}

func TestLoader_WithConfigPaths(t *testing.T) {
	found := writeConfig(t, `
server:
  port: 4444
`)

	cfg, err := config.NewLoader().
		WithConfigPaths([]string{filepath.Join(t.TempDir(), "absent.yaml"), found}).
		Load("")
	require.NoError(t, err)
	assert.Equal(t, 4444, cfg.Server.Port)
}

func TestLoader_BrokenSearchedFileFallsBackToDefaults(t *testing.T) {
	broken := writeConfig(t, "server: [")

	cfg, err := config.NewLoader().WithConfigPaths([]string{broken}).Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPort, cfg.Server.Port)
}
