// Package api exposes task operations over HTTP/JSON.
package api

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/dyluth/taskd/internal/tasks"
)

// Pinger verifies store connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options holds HTTP server timeouts.
type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server serves the task routes and the /healthz endpoint.
type Server struct {
	server  *http.Server
	service *tasks.Service
	pinger  Pinger
}

// NewServer creates a server for service. pinger backs /healthz.
func NewServer(service *tasks.Service, pinger Pinger, opts Options) *Server {
	s := &Server{
		service: service,
		pinger:  pinger,
	}
	s.server = &http.Server{
		Handler:      s.routes(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Serve accepts connections on ln until Shutdown is called.
// Returns nil after a graceful shutdown.
func (s *Server) Serve(ln net.Listener) error {
	log.Printf("[INFO] Task server listening on %s", ln.Addr())
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Printf("[INFO] Task server stopped")
	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Printf("[DEBUG] Shutting down task server...")
	return s.server.Shutdown(ctx)
}
