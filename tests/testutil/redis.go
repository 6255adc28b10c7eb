package testutil

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	redisImage          = "redis:7-alpine"
	redisPort           = "6379/tcp"
	redisStartupTimeout = 60 * time.Second
	redisOpTimeout      = 10 * time.Second
	redisMemoryLimit    = 64 * 1024 * 1024
	redisPoolSize       = 4
	redisScanBatch      = 100
)

var (
	redisMu   sync.Mutex
	redisCont testcontainers.Container
	redisAddr string
)

// redisAddress starts the shared Redis container on first use, or again if
// the previous one stopped, and returns its host:port.
func redisAddress(ctx context.Context) (string, error) {
	redisMu.Lock()
	defer redisMu.Unlock()

	if redisCont != nil {
		if state, err := redisCont.State(ctx); err == nil && state.Running {
			return redisAddr, nil
		}
		_ = redisCont.Terminate(context.Background())
		redisCont, redisAddr = nil, ""
	}

	cont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        redisImage,
			ExposedPorts: []string{redisPort},
			HostConfigModifier: func(hc *container.HostConfig) {
				hc.Memory = redisMemoryLimit
				hc.MemorySwap = redisMemoryLimit
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("Ready to accept connections").WithStartupTimeout(redisStartupTimeout),
				wait.ForListeningPort(redisPort).WithStartupTimeout(redisStartupTimeout),
			),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to start Redis container: %w", err)
	}

	host, err := cont.Host(ctx)
	if err != nil {
		_ = cont.Terminate(context.Background())
		return "", fmt.Errorf("failed to get Redis host: %w", err)
	}
	port, err := cont.MappedPort(ctx, redisPort)
	if err != nil {
		_ = cont.Terminate(context.Background())
		return "", fmt.Errorf("failed to get Redis port: %w", err)
	}

	redisCont = cont
	redisAddr = net.JoinHostPort(host, port.Port())
	return redisAddr, nil
}

// SetupTestRedisWithPrefix returns a client for the shared Redis container
// and a key prefix owned by the calling test. Keys under the prefix are
// removed when the test ends, so tests sharing the container do not see
// each other's counters. Skipped in -short mode.
func SetupTestRedisWithPrefix(t *testing.T) (*redis.Client, string) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping Redis integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisStartupTimeout)
	defer cancel()

	addr, err := redisAddress(ctx)
	if err != nil {
		t.Fatalf("redis: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: addr, PoolSize: redisPoolSize})
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Fatalf("redis ping: %v", err)
	}

	prefix := "test:" + strings.ReplaceAll(t.Name(), "/", ":") + ":"

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), redisOpTimeout)
		defer cleanupCancel()
		deleteKeys(cleanupCtx, client, prefix+"*")
		_ = client.Close()
	})

	return client, prefix
}

func deleteKeys(ctx context.Context, client *redis.Client, pattern string) {
	iter := client.Scan(ctx, 0, pattern, redisScanBatch).Iterator()
	for iter.Next(ctx) {
		_ = client.Del(ctx, iter.Val()).Err()
	}
}

// CleanupSharedRedisContainer terminates the shared container. Call it from TestMain.
func CleanupSharedRedisContainer() {
	redisMu.Lock()
	defer redisMu.Unlock()

	if redisCont == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	_ = redisCont.Terminate(ctx)
	redisCont, redisAddr = nil, ""
}
