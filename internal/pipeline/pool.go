package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Pool is a bounded worker pool. Submitted tasks run on the pool's base
// context, never the caller's, so an HTTP request finishing early cannot
// cancel a run in flight.
type Pool struct {
	base context.Context
	sem  *semaphore.Weighted
	wg   sync.WaitGroup
}

func NewPool(base context.Context, size int64) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		base: base,
		sem:  semaphore.NewWeighted(size),
	}
}

// Submit schedules task and returns immediately. When all workers are busy
// the task waits for a slot.
func (p *Pool) Submit(task func(ctx context.Context)) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.sem.Acquire(p.base, 1); err != nil {
			return
		}
		defer p.sem.Release(1)
		task(p.base)
	}()
}

// Wait blocks until every submitted task has finished.
func (p *Pool) Wait() {
	p.wg.Wait()
}
