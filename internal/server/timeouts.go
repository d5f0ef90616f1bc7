// internal/server/timeouts.go
//
// HTTP server with timeouts sized for a small JSON API:
//
//   • ReadHeaderTimeout  –  abort slow-loris headers (5 s)
//   • ReadTimeout        –  form bodies are tiny (10 s)
//   • WriteTimeout       –  cap total response time (15 s)
//   • IdleTimeout        –  close idle keep-alives (60 s)
//
// Run blocks until ctx is cancelled, then drains in-flight requests.

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ShutdownGrace bounds how long Run waits for in-flight requests.
const ShutdownGrace = 10 * time.Second

const maxHeaderBytes = 16 << 10

// New constructs an *http.Server with the defaults above.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    maxHeaderBytes,
	}
}

// Run serves srv until ctx is done and shuts it down gracefully.  A clean
// shutdown returns nil.
func Run(ctx context.Context, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zap.S().Infow("http listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), ShutdownGrace)
		defer cancel()
		zap.S().Infow("http shutting down", "addr", srv.Addr)
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}
