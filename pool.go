package vecsim

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

/*
Pool is a fixed set of worker goroutines that execute batches of jobs. It
holds no per-register state: a batch is whatever one gate call planned, and
Run returns only once every job of the batch has finished, so a gate call is
synchronous from the caller's point of view.
*/
type Pool struct {
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	jobs    chan job
	workers []*Worker
	logger  *zap.Logger

	// Run holds the read side while it submits and waits; Close takes the
	// write side, so closing waits for batches already in flight.
	mu     sync.RWMutex
	closed bool
}

// NewPool starts size workers. A nil logger disables logging.
func NewPool(ctx context.Context, size int, logger *zap.Logger) *Pool {
	if size < 1 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pool{
		cancel:  cancel,
		jobs:    make(chan job, size*4),
		workers: make([]*Worker, 0, size),
		logger:  logger,
	}

	for i := 0; i < size; i++ {
		p.startWorker()
	}

	// Cancelling the parent context shuts the pool down like Close.
	go func() {
		<-ctx.Done()
		p.Close()
	}()

	p.logger.Info("started worker pool", zap.Int("workers", size))
	return p
}

// Size is the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

/*
Run executes every function of the batch on the pool's workers and blocks
until all of them have returned. Functions of one batch may run in any order
and concurrently, so they must not touch the same memory.
*/
func (p *Pool) Run(fns ...func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	var done sync.WaitGroup
	done.Add(len(fns))
	for _, fn := range fns {
		p.jobs <- job{fn: fn, done: &done}
	}
	done.Wait()

	return nil
}

func (p *Pool) startWorker() {
	worker := &Worker{pool: p}
	p.workers = append(p.workers, worker)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		worker.run()
	}()
}

// Close stops the workers. It is safe to call more than once.
func (p *Pool) Close() {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	// No batch is in flight while we hold the lock, so the workers are idle
	// and drain out as soon as the channel closes.
	close(p.jobs)
	p.wg.Wait()
	p.cancel()

	p.logger.Info("worker pool closed", zap.Int("workers", len(p.workers)))
}
