package parallel

import (
	"context"
	"sync"
)

// Pool runs queued functions on at most workers goroutines.
// The first error cancels the pool context and is returned by Wait.
type Pool interface {
	Add(f func(ctx context.Context) error)
	Wait() error
}

type pool struct {
	ctx       context.Context
	ctxCancel context.CancelFunc

	wg sync.WaitGroup

	queue     []func(ctx context.Context) error
	queueLock sync.Mutex

	workers    int
	workersMax int

	errOnce   sync.Once
	lastError error
}

func New(ctx context.Context, workers int) Pool {
	if workers < 1 {
		workers = 1
	}

	p := &pool{
		queue:      make([]func(ctx context.Context) error, 0, workers),
		workersMax: workers,
	}
	p.ctx, p.ctxCancel = context.WithCancel(ctx)

	return p
}

func (p *pool) Add(f func(ctx context.Context) error) {
	p.wg.Add(1)

	p.queueLock.Lock()
	p.queue = append(p.queue, f)
	spawn := p.workers < p.workersMax
	if spawn {
		p.workers++
	}
	p.queueLock.Unlock()

	if spawn {
		go p.work()
	}
}

func (p *pool) Wait() error {
	p.wg.Wait()
	p.ctxCancel()

	return p.lastError
}

func (p *pool) work() {
	for {
		p.queueLock.Lock()
		if len(p.queue) == 0 {
			p.workers--
			p.queueLock.Unlock()
			return
		}
		f := p.queue[0]
		p.queue = p.queue[1:]
		p.queueLock.Unlock()

		if p.ctx.Err() != nil {
			p.wg.Done()
			continue
		}

		err := f(p.ctx)
		if err != nil {
			p.errOnce.Do(func() {
				p.lastError = err
				p.ctxCancel()
			})
		}
		p.wg.Done()
	}
}
