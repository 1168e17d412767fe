package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/taskd/internal/api"
	"github.com/dyluth/taskd/internal/tasks"
	"github.com/dyluth/taskd/pkg/taskstore"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestClient runs a real task server over miniredis and returns a client for it
func setupTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)

	store := taskstore.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}, "")
	t.Cleanup(func() { store.Close() })

	srv := api.NewServer(tasks.NewService(store), store, api.Options{})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return New(ts.URL + "/"), mr
}

func TestClient_RoundTrip(t *testing.T) {
	c, _ := setupTestClient(t)
	ctx := context.Background()

	task := &taskstore.Task{ID: uuid.New().String(), Title: "A", Author: "B", Description: "C"}
	require.NoError(t, c.Create(ctx, task))

	got, err := c.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, got)

	require.NoError(t, c.Update(ctx, task.ID, &taskstore.Task{Description: "D"}))

	got, err = c.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "D", got.Description)
}

func TestClient_Errors(t *testing.T) {
	c, mr := setupTestClient(t)
	ctx := context.Background()

	t.Run("conflict on duplicate create", func(t *testing.T) {
		task := &taskstore.Task{ID: "dup", Title: "A"}
		require.NoError(t, c.Create(ctx, task))

		err := c.Create(ctx, task)
		require.Error(t, err)
		assert.True(t, IsConflict(err))
		assert.Contains(t, err.Error(), "Task with id 'dup' already exists")
	})

	t.Run("not found on get", func(t *testing.T) {
		_, err := c.Get(ctx, "missing")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.False(t, IsConflict(err))
	})

	t.Run("not found on update", func(t *testing.T) {
		err := c.Update(ctx, "missing", &taskstore.Task{Title: "T"})
		assert.True(t, IsNotFound(err))
	})

	t.Run("server error has no message", func(t *testing.T) {
		mr.HSet("broken", taskstore.FieldTitle, "A")

		_, err := c.Get(ctx, "broken")
		require.Error(t, err)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, "server returned 500 Internal Server Error", apiErr.Error())
	})
}

func TestClient_Unreachable(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.Get(context.Background(), "t1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach server")
}
