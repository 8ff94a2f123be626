package notification

import (
	"context"
	"fmt"
)

const defaultQueueSize = 256

// ChanQueue is the in-process queue used when no broker is configured.
// Enqueue drops the task with an error when the buffer is full instead of
// blocking the caller.
type ChanQueue struct {
	tasks chan Task
}

func NewChanQueue(size int) *ChanQueue {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &ChanQueue{tasks: make(chan Task, size)}
}

func (q *ChanQueue) Enqueue(_ context.Context, task Task) error {
	select {
	case q.tasks <- task:
		return nil
	default:
		return fmt.Errorf("queue full (%d tasks)", cap(q.tasks))
	}
}

func (q *ChanQueue) Run(ctx context.Context, handle func(ctx context.Context, task Task)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-q.tasks:
			handle(ctx, task)
		}
	}
}
