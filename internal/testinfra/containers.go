//go:build integration

// Package testinfra starts throwaway Postgres and Redis containers for
// integration tests.
package testinfra

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/tourism-directory/backend/pkg/config"
)

const (
	postgresImage = "postgres:16-alpine"
	redisImage    = "redis:7-alpine"
	startTimeout  = 2 * time.Minute
)

// SkipIfNoDocker skips the test when no Docker daemon answers.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()
	if err := exec.Command("docker", "info").Run(); err != nil {
		t.Skip("docker not available, skipping integration test")
	}
}

func startContainer(t *testing.T, req testcontainers.ContainerRequest) testcontainers.Container {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	return container
}

func endpoint(t *testing.T, container testcontainers.Container, mapped func(ctx context.Context) (int, error)) (string, int) {
	t.Helper()
	ctx := context.Background()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := mapped(ctx)
	require.NoError(t, err)

	return host, port
}

// StartPostgres runs a migrated Postgres and returns a connected client.
func StartPostgres(t *testing.T) *postgres.Client {
	t.Helper()
	SkipIfNoDocker(t)

	container := startContainer(t, testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "directory",
			"POSTGRES_PASSWORD": "directory",
			"POSTGRES_DB":       "directory",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(startTimeout),
	})
	host, port := endpoint(t, container, func(ctx context.Context) (int, error) {
		p, err := container.MappedPort(ctx, "5432/tcp")
		return p.Int(), err
	})

	client, err := postgres.NewClient(&config.DatabaseConfig{
		Host:     host,
		Port:     port,
		User:     "directory",
		Password: "directory",
		Database: "directory",
		SSLMode:  "disable",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Migrate(context.Background()))
	return client
}

// StartRedis runs a Redis server and returns a connected client.
func StartRedis(t *testing.T) *redis.Client {
	t.Helper()
	SkipIfNoDocker(t)

	container := startContainer(t, testcontainers.ContainerRequest{
		Image:        redisImage,
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(startTimeout),
	})
	host, port := endpoint(t, container, func(ctx context.Context) (int, error) {
		p, err := container.MappedPort(ctx, "6379/tcp")
		return p.Int(), err
	})

	client, err := redis.NewClient(context.Background(), &config.RedisConfig{
		Enabled: true,
		Host:    host,
		Port:    port,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}
