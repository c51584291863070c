package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/thrillee/glowshop/internal/config"
)

// Server runs one of the HTTP APIs with the configured listener timeouts.
type Server struct {
	name       string
	config     config.APIConfig
	handler    http.Handler
	mu         sync.Mutex
	httpServer *http.Server
	stopOnce   sync.Once
}

// NewServer creates a new HTTP server instance.
func NewServer(name string, cfg config.APIConfig, handler http.Handler) *Server {
	if handler == nil {
		panic("handler cannot be nil for HTTP Server")
	}
	return &Server{name: name, config: cfg, handler: handler}
}

// ListenAndServe starts the HTTP server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.httpServer != nil {
		s.mu.Unlock()
		_ = ln.Close()
		return errors.New("http server already started")
	}
	srv := &http.Server{
		Addr:         ln.Addr().String(),
		Handler:      s.handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
	}
	s.httpServer = srv
	s.mu.Unlock()

	slog.Info("Starting HTTP server", slog.String("server", s.name), slog.String("address", srv.Addr))
	err := srv.Serve(ln)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("HTTP server Serve error", slog.String("server", s.name), slog.Any("error", err))
		return err
	}
	slog.Info("HTTP server stopped", slog.String("server", s.name))
	return nil
}

// Shutdown gracefully stops the HTTP server. Only the first call has effect.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.InfoContext(ctx, "Shutdown requested for HTTP server", slog.String("server", s.name))
	var err error
	s.stopOnce.Do(func() {
		s.mu.Lock()
		srv := s.httpServer
		s.mu.Unlock()
		if srv != nil {
			srv.SetKeepAlivesEnabled(false)
			err = srv.Shutdown(ctx)
		}
	})
	return err
}
