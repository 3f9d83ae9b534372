package main

import (
	"context"
	"expvar"
	"log/slog"
	"time"
)

type sessionReaper interface {
	CloseIdle(maxIdle time.Duration) int
	Count() int
}

type pendingCounter interface {
	Pending() int
}

type backgroundTasks struct {
	sessions    sessionReaper
	scheduler   pendingCounter
	idleTimeout time.Duration
	interval    time.Duration
	logger      *slog.Logger
}

func newBackgroundTasks(
	sessions sessionReaper,
	scheduler pendingCounter,
	idleTimeout time.Duration,
	logger *slog.Logger,
) *backgroundTasks {
	return &backgroundTasks{
		sessions:    sessions,
		scheduler:   scheduler,
		idleTimeout: idleTimeout,
		interval:    time.Minute,
		logger:      logger,
	}
}

// start publishes workspace gauges and closes idle sessions until ctx is
// cancelled.
func (bt *backgroundTasks) start(ctx context.Context) {
	expvar.Publish("open_sessions", expvar.Func(func() any { return bt.sessions.Count() }))
	expvar.Publish("pending_tasks", expvar.Func(func() any { return bt.scheduler.Pending() }))

	ticker := time.NewTicker(bt.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.closeIdleSessions()
		}
	}
}

func (bt *backgroundTasks) closeIdleSessions() {
	if bt.idleTimeout <= 0 {
		return
	}

	closed := bt.sessions.CloseIdle(bt.idleTimeout)
	if closed > 0 {
		bt.logger.Info("closed idle sessions", "count", closed)
	}
}
