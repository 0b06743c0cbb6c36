package reportserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-logr/logr"
)

const defaultShutdownTimeout = 5 * time.Second

// Config captures the settings for serving a generated report.
type Config struct {
	Addr      string
	ReportDir string
	// DBPath is the optional DuckDB export served at DatabaseRoute.
	DBPath string
	Logger logr.Logger
	// Ready is called with the bound address once the listener is open.
	Ready           func(addr string)
	ShutdownTimeout time.Duration
}

// Serve starts an HTTP server for the report and blocks until ctx is done.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("reportserver: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("reportserver: addr is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return err
	}
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	addr := listener.Addr().String()
	cfg.Logger.Info("serving report", "addr", addr, "dir", cfg.ReportDir, "db", cfg.DBPath)
	if cfg.Ready != nil {
		cfg.Ready(addr)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		timeout := cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		cfg.Logger.V(1).Info("report server stopped", "addr", addr)
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}
