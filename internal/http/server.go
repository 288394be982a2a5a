package http

import (
	"context"
	"net/http"
	"time"

	"github.com/dropDatabas3/partnerdesk/internal/observability/logger"
)

const shutdownGrace = 10 * time.Second

// Server wraps the http.Server with sane timeouts and graceful shutdown.
type Server struct {
	srv *http.Server
}

// NewServer creates the API server on addr.
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Run serves until ctx is canceled, then drains in-flight requests for up
// to shutdownGrace before returning.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("http server listening", logger.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	logger.L().Info("http server draining")
	if err := s.srv.Shutdown(shutCtx); err != nil {
		return err
	}
	return <-errCh
}
