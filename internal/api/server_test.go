package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/dyluth/taskd/internal/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) Ping(ctx context.Context) error { return nil }

func TestServer_ServeAndShutdown(t *testing.T) {
	ln, err := Listen("127.0.0.1:0")
	require.NoError(t, err)

	srv := NewServer(tasks.NewService(nil), okPinger{}, Options{ReadTimeout: time.Second, WriteTimeout: time.Second})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", ln.Addr()))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for server to stop")
	}
}

func TestListen_BindsWithoutInheritedSockets(t *testing.T) {
	os.Unsetenv("LISTEN_FDS")
	os.Unsetenv("LISTEN_PID")

	ln, err := Listen("127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	assert.Contains(t, ln.Addr().String(), "127.0.0.1:")
}

func TestListen_ReportsBindFailure(t *testing.T) {
	_, err := Listen("256.0.0.1:bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to bind")
}
