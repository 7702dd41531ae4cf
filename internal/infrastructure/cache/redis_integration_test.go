//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}

func TestRedisStore_SharedClaims(t *testing.T) {
	addr := startRedis(t)
	ctx := context.Background()

	replicaA, err := DialRedis(ctx, addr, "", 0)
	require.NoError(t, err)
	replicaB, err := DialRedis(ctx, addr, "", 0)
	require.NoError(t, err)

	a := NewRedisStore(replicaA, "")
	b := NewRedisStore(replicaB, "")
	defer a.Close()
	defer b.Close()

	ok, err := a.Claim(ctx, "checkout-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.Claim(ctx, "checkout-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "a claim on one replica blocks the other")

	held, err := b.IsClaimed(ctx, "checkout-1")
	require.NoError(t, err)
	assert.True(t, held)

	ttl, err := replicaA.TTL(ctx, DefaultKeyPrefix+"checkout-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, a.Release(ctx, "checkout-1"))
	ok, err = b.Claim(ctx, "checkout-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
