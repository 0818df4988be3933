//go:build integration
// +build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestDeduper_Integration(t *testing.T) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "redis")
	require.NoError(t, err)

	client, err := NewClient(ctx, endpoint)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	d := NewDeduper(client, "test")

	ok, err := d.Acquire(ctx, "transition:request:1:approved", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = d.Acquire(ctx, "transition:request:1:approved", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, d.Release(ctx, "transition:request:1:approved"))

	ok, err = d.Acquire(ctx, "transition:request:1:approved", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
