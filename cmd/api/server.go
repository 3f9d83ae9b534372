package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func (app *application) serve(handlers *Handlers) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.port),
		Handler:      app.routes(handlers),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	// Background tasks run until shutdown cancels bgCtx
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	tasks := newBackgroundTasks(app.services.Workspace, app.scheduler, app.config.workspace.idleTimeout, app.logger)
	app.background(func() { tasks.start(bgCtx) })

	shutdownError := make(chan error)

	// Listen for shutdown signals
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		// Block until a signal arrives
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		// In-flight requests get 30 seconds to finish
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
			return
		}

		app.logger.Info("completing background tasks", "addr", srv.Addr)

		// Sessions hold scheduled captures; closing them releases their waiters.
		app.services.Workspace.CloseAll()
		stopBackground()

		// Wait for everything started with app.background()
		app.wg.Wait()
		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.env, "store", app.config.store)

	// Blocks until the server is shut down
	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// Wait for shutdown to finish
	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)
	return nil
}
