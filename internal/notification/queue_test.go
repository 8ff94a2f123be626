package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChanQueue(t *testing.T) {
	t.Run("rejects instead of blocking when full", func(t *testing.T) {
		q := NewChanQueue(2)
		ctx := context.Background()

		require.NoError(t, q.Enqueue(ctx, Task{}))
		require.NoError(t, q.Enqueue(ctx, Task{}))

		err := q.Enqueue(ctx, Task{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "queue full")
	})

	t.Run("feeds queued tasks to the handler", func(t *testing.T) {
		q := NewChanQueue(2)
		ctx, cancel := context.WithCancel(context.Background())

		require.NoError(t, q.Enqueue(ctx, Task{Event: Event{Type: EventReminder24h}}))

		handled := make(chan Task, 1)
		go func() {
			_ = q.Run(ctx, func(_ context.Context, task Task) {
				handled <- task
			})
		}()

		select {
		case task := <-handled:
			assert.Equal(t, EventReminder24h, task.Event.Type)
		case <-time.After(2 * time.Second):
			t.Fatal("task never reached the handler")
		}
		cancel()
	})

	t.Run("stops when the context ends", func(t *testing.T) {
		q := NewChanQueue(1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := q.Run(ctx, func(context.Context, Task) {})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBackoff(t *testing.T) {
	t.Run("constant backoff is flat", func(t *testing.T) {
		b := ConstantBackoff{Interval: 250 * time.Millisecond}
		assert.Equal(t, 250*time.Millisecond, b.Delay(1))
		assert.Equal(t, 250*time.Millisecond, b.Delay(7))
	})

	t.Run("exponential backoff stays under the growing cap", func(t *testing.T) {
		b := ExponentialBackoff{Initial: 500 * time.Millisecond, Max: 30 * time.Second}
		for attempt := 1; attempt <= 10; attempt++ {
			ceiling := 500 * time.Millisecond << (attempt - 1)
			if ceiling > 30*time.Second {
				ceiling = 30 * time.Second
			}
			for i := 0; i < 20; i++ {
				delay := b.Delay(attempt)
				assert.GreaterOrEqual(t, delay, time.Duration(0))
				assert.LessOrEqual(t, delay, ceiling)
			}
		}
	})
}
