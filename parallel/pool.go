package parallel

import (
	"runtime"
	"sync"
)

// Pool runs submitted jobs on a fixed set of worker goroutines. A pool
// started with a single worker runs jobs inline on the caller, so callers
// need no separate sequential path.
type Pool struct {
	workers sync.WaitGroup
	jobs    sync.WaitGroup
	queue   chan func()
	stop    func()
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{stop: func() {}}
	if numWorkers == 1 {
		return pool
	}

	pool.queue = make(chan func(), numWorkers)
	pool.stop = sync.OnceFunc(func() { close(pool.queue) })

	for i := 0; i < numWorkers; i++ {
		pool.workers.Add(1)
		go func() {
			defer pool.workers.Done()
			for f := range pool.queue {
				f()
				pool.jobs.Done()
			}
		}()
	}

	return pool
}

// Do schedules f. Must not be called after Close.
func (p *Pool) Do(f func()) {
	if p.queue == nil {
		f()
		return
	}

	p.jobs.Add(1)
	p.queue <- f
}

// Wait blocks until every scheduled job has finished. The pool stays usable.
func (p *Pool) Wait() {
	p.jobs.Wait()
}

// Close stops intake and waits for the workers to exit.
func (p *Pool) Close() {
	p.stop()
	p.workers.Wait()
}
