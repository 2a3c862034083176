//go:build integration

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) string {
	t.Helper()
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
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedisCache(ctx, setupRedis(t))
	require.NoError(t, err)
	defer c.Close()

	type entry struct {
		Pk    int64  `json:"pk"`
		Title string `json:"title"`
	}

	require.NoError(t, c.Set(ctx, "ads:all", []entry{{Pk: 1, Title: "Bicicleta"}}, time.Minute))

	var got []entry
	found, err := c.Get(ctx, "ads:all", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []entry{{Pk: 1, Title: "Bicicleta"}}, got)

	require.NoError(t, c.Delete(ctx, "ads:all"))
	found, err = c.Get(ctx, "ads:all", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
