// Package bootstrap runs long-lived commands until they return or the process is signalled.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// DefaultShutdownTimeout bounds the time all shutdown hooks share.
const DefaultShutdownTimeout = 10 * time.Second

// Hook releases a resource once the command has stopped.
type Hook func(ctx context.Context) error

type namedHook struct {
	name string
	fn   Hook
}

// App tracks the resources a long-lived command must release before it exits.
type App struct {
	mu              sync.Mutex
	hooks           []namedHook
	shutdownTimeout time.Duration
	signals         []os.Signal
}

func New(shutdownTimeout time.Duration) *App {
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}
	return &App{
		shutdownTimeout: shutdownTimeout,
		signals:         []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
}

// OnShutdown registers a hook. Hooks run in reverse registration order.
// It is safe to call from inside the function passed to Run.
func (app *App) OnShutdown(name string, hook Hook) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.hooks = append(app.hooks, namedHook{name: name, fn: hook})
}

// Run blocks until run returns. The context given to run is cancelled on SIGINT or SIGTERM.
// Shutdown hooks run after run returns, whether it failed or not, and their errors are joined
// with the error of run.
func (app *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(ctx, app.signals...)
	defer stop()

	var errs []error
	if err := run(ctx); err != nil {
		errs = append(errs, err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.shutdownTimeout)
	defer cancel()
	return errors.Join(append(errs, app.shutdown(shutdownCtx)...)...)
}

func (app *App) shutdown(ctx context.Context) []error {
	app.mu.Lock()
	hooks := make([]namedHook, len(app.hooks))
	copy(hooks, app.hooks)
	app.hooks = nil
	app.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		slog.Debug("running a shutdown hook", "name", hooks[i].name)
		if err := hooks[i].fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown hook %s > %w", hooks[i].name, err))
		}
	}
	return errs
}
