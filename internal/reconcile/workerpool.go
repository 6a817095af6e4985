package reconcile

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type WorkerPoolI interface {
	AddTask(ctx context.Context, task Task) error
	Close()
}

// Task reconciles one order.
type Task struct {
	OrderID string
	Run     func() error
}

// WorkerPool bounds how many gateway reads run at once.
type WorkerPool struct {
	tasks   chan Task
	workers sync.WaitGroup
	once    sync.Once
}

func NewWorkerPool(size int) *WorkerPool {
	wp := &WorkerPool{tasks: make(chan Task, size)}

	wp.workers.Add(size)
	for i := 0; i < size; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.workers.Done()
	for task := range wp.tasks {
		if err := task.Run(); err != nil {
			zap.L().Error("Reconcile task failed", zap.String("order_id", task.OrderID), zap.Error(err))
		}
	}
}

// AddTask blocks until the queue has room or ctx is done.
func (wp *WorkerPool) AddTask(ctx context.Context, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.tasks <- task:
		return nil
	}
}

// Close stops accepting tasks and waits for queued ones to finish.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() { close(wp.tasks) })
	wp.workers.Wait()
}
