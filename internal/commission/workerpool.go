package commission

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type WorkerPoolI interface {
	AddTask(ctx context.Context, task Task) error
	Wait() error
	Close()
}

type Task func() error

type WorkerPool struct {
	pool chan Task
	g    *errgroup.Group
}

func NewWorkerPool(size int) *WorkerPool {
	wp := &WorkerPool{
		pool: make(chan Task, size),
		g:    &errgroup.Group{},
	}

	for i := 0; i < size; i++ {
		wp.g.Go(wp.worker)
	}
	return wp
}

func (wp *WorkerPool) worker() error {
	for task := range wp.pool {
		if err := task(); err != nil {
			zap.L().Error("commission task failed", zap.Error(err))
		}
	}
	return nil
}

func (wp *WorkerPool) AddTask(ctx context.Context, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.pool <- task:
		return nil
	}
}

// Wait blocks until Close has been called and all queued tasks finished.
func (wp *WorkerPool) Wait() error {
	return wp.g.Wait()
}

func (wp *WorkerPool) Close() {
	close(wp.pool)
}
