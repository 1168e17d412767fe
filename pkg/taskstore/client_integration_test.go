//go:build integration

package taskstore

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

// setupRedis starts a Redis container for testing.
func setupRedis(t *testing.T) string {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start Redis container")

	t.Cleanup(func() {
		if err := redisC.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate Redis container: %v", err)
		}
	})

	host, err := redisC.Host(ctx)
	require.NoError(t, err)

	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestClient_AgainstRedis(t *testing.T) {
	redisURL := setupRedis(t)

	client, err := NewClientFromURL(redisURL, "it")
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, client.Ping(ctx))

	task := &Task{ID: "t1", Title: "A", Author: "", Description: "C"}

	exists, err := client.Exists(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, client.WriteFields(ctx, task.ID, TaskToFields(task)))

	exists, err = client.Exists(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	values, err := client.ReadFields(ctx, task.ID, FieldNames)
	require.NoError(t, err)
	stored, err := FieldsToTask(task.ID, values)
	require.NoError(t, err)
	assert.Equal(t, task, stored)

	created, err := client.CreateIfAbsent(ctx, task.ID, TaskToFields(&Task{Title: "X"}))
	require.NoError(t, err)
	assert.False(t, created)

	created, err = client.CreateIfAbsent(ctx, "t2", TaskToFields(&Task{Title: "X", Author: "Y", Description: "Z"}))
	require.NoError(t, err)
	assert.True(t, created)
}
