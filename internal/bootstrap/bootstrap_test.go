package bootstrap

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	assert.Equal(t, DefaultShutdownTimeout, New(0).shutdownTimeout)
	assert.Equal(t, time.Second, New(time.Second).shutdownTimeout)
}

func TestApp_Run(t *testing.T) {
	t.Run("run returns nil", func(t *testing.T) {
		app := New(time.Second)
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("run error is returned after the hooks ran", func(t *testing.T) {
		app := New(time.Second)
		hookCalled := false
		app.OnShutdown("client", func(ctx context.Context) error {
			hookCalled = true
			return nil
		})

		want := errors.New("listen failed")
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return want
		})
		assert.ErrorIs(t, err, want)
		assert.True(t, hookCalled)
	})

	t.Run("hooks run in reverse order once the context is cancelled", func(t *testing.T) {
		app := New(time.Second)
		var mu sync.Mutex
		var order []string
		for _, name := range []string{"first", "second", "third"} {
			app.OnShutdown(name, func(ctx context.Context) error {
				mu.Lock()
				defer mu.Unlock()
				order = append(order, name)
				return nil
			})
		}

		ctx, cancel := context.WithCancel(context.Background())
		err := app.Run(ctx, func(ctx context.Context) error {
			cancel()
			<-ctx.Done()
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"third", "second", "first"}, order)
	})

	t.Run("hook registered from inside run", func(t *testing.T) {
		app := New(time.Second)
		hookCalled := false

		err := app.Run(context.Background(), func(ctx context.Context) error {
			app.OnShutdown("late", func(ctx context.Context) error {
				hookCalled = true
				return nil
			})
			return nil
		})
		require.NoError(t, err)
		assert.True(t, hookCalled)
	})

	t.Run("hook errors are joined with the run error", func(t *testing.T) {
		app := New(time.Second)
		hookErr := errors.New("close failed")
		app.OnShutdown("client", func(ctx context.Context) error {
			return hookErr
		})
		app.OnShutdown("deadline", func(ctx context.Context) error {
			_, ok := ctx.Deadline()
			assert.True(t, ok)
			return nil
		})

		runErr := errors.New("serve failed")
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return runErr
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, runErr)
		assert.ErrorIs(t, err, hookErr)
		assert.Contains(t, err.Error(), "shutdown hook client > close failed")
	})

	t.Run("hooks run once", func(t *testing.T) {
		app := New(time.Second)
		calls := 0
		app.OnShutdown("client", func(ctx context.Context) error {
			calls++
			return nil
		})

		run := func(ctx context.Context) error { return nil }
		require.NoError(t, app.Run(context.Background(), run))
		require.NoError(t, app.Run(context.Background(), run))
		assert.Equal(t, 1, calls)
	})
}
