// Package testutil starts throwaway backends for integration tests.
// When a container can not be started (no Docker, no network) the test is skipped.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RedisAddress starts a Redis container and returns its host:port.
func RedisAddress(t *testing.T) string {
	t.Helper()

	return startContainer(t, "redis:7",
		testcontainers.WithExposedPorts("6379/tcp"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("6379/tcp"),
			wait.ForLog("Ready to accept connections"),
		),
	)
}

// PostgresDSN starts a PostgreSQL container and returns a DSN for the pgx driver.
func PostgresDSN(t *testing.T) string {
	t.Helper()

	endpoint := startContainer(t, "postgres:16",
		testcontainers.WithExposedPorts("5432/tcp"),
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_USER":     "hooks",
			"POSTGRES_PASSWORD": "hooks",
			"POSTGRES_DB":       "hooks_test",
		}),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp"),
			// postgres restarts once after init, wait for the second ready line
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)

	return fmt.Sprintf("postgres://hooks:hooks@%s/hooks_test?sslmode=disable", endpoint)
}

// MongoURI starts a MongoDB container and returns its connection URI.
func MongoURI(t *testing.T) string {
	t.Helper()

	endpoint := startContainer(t, "mongo:7",
		testcontainers.WithExposedPorts("27017/tcp"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("27017/tcp"),
		),
	)

	return "mongodb://" + endpoint
}

func startContainer(t *testing.T, image string, opts ...testcontainers.ContainerCustomizer) (endpoint string) {
	t.Helper()

	if testing.Short() {
		t.Skipf("skipping %s container in short mode", image)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	// testcontainers panics on some setups without a usable docker socket
	defer func() {
		if r := recover(); r != nil {
			t.Skipf("skipping: starting %s panicked: %v", image, r)
		}
	}()

	container, err := testcontainers.Run(ctx, image, opts...)
	t.Cleanup(func() {
		testcontainers.CleanupContainer(t, container)
	})
	if err != nil {
		t.Skipf("skipping: starting %s: %v", image, err)
	}

	endpoint, err = container.Endpoint(ctx, "")
	if err != nil {
		t.Skipf("skipping: %s endpoint: %v", image, err)
	}

	return endpoint
}
