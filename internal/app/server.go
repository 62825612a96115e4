package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Start binds the listener, serves HTTP in the background and returns a
// channel that is closed once a termination signal arrives or the server
// stops on its own.
func (a *App) Start() <-chan struct{} {
	done := make(chan struct{})

	l, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		slog.Error("failed to bind http listener", "address", a.httpServer.Addr, "error", err)
		os.Exit(1)
	}
	slog.Info("mabini portal listening",
		"address", l.Addr().String(),
		"timezone", a.config.GetString("app.timezone"),
		"docs", a.config.GetBool("app.server.docs"),
	)

	sigCtx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	serveErr := a.Serve(l)

	go func() {
		defer close(done)
		defer stop()

		select {
		case <-sigCtx.Done():
			slog.Info("termination signal received")
		case err := <-serveErr:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("http server stopped unexpectedly", "error", err)
			}
		}
		a.cancel()
	}()

	return done
}

// Serve runs the HTTP server on l. Tests use it with an ephemeral listener.
func (a *App) Serve(l net.Listener) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		errc <- a.httpServer.Serve(l)
	}()
	return errc
}

// Stop drains HTTP traffic, waits for consumers and the purge job, then
// releases every resource in reverse dependency order.
func (a *App) Stop(ctx context.Context) {
	a.cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "http server shutdown", "error", err)
	}

	slog.InfoContext(ctx, "waiting for background work", "running", a.goroutine.Running())
	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "background work ended with errors", "error", err)
	}

	for _, c := range a.closers {
		if err := c.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resource", "name", c.name, "error", err)
		}
	}
	slog.InfoContext(ctx, "mabini portal stopped")
}
