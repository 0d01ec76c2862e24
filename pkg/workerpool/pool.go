// Package workerpool provides a bounded goroutine pool used to run
// scanner adapters concurrently without spawning one goroutine per
// submission site.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool manages a fixed pool of worker goroutines. Workers are started
// lazily on first submission and reused across tasks.
type Pool struct {
	workers int32
	tasks   chan func()
	running int32
	closed  int32
	wg      sync.WaitGroup
}

// New creates a pool with the specified number of workers. A
// non-positive count falls back to GOMAXPROCS.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		workers: int32(workers),
		tasks:   make(chan func(), workers*4),
	}
}

// Submit adds a task to the pool. If all workers are busy the task
// waits in the queue. Returns false if the pool is closed.
func (p *Pool) Submit(task func()) bool {
	if atomic.LoadInt32(&p.closed) == 1 {
		return false
	}

	for {
		running := atomic.LoadInt32(&p.running)
		if running >= p.workers {
			break
		}
		if atomic.CompareAndSwapInt32(&p.running, running, running+1) {
			p.wg.Add(1)
			go p.worker()
			break
		}
	}

	p.tasks <- task
	return true
}

func (p *Pool) worker() {
	defer func() {
		// A panicking task must not shrink the pool. Adapters wrap
		// their own panics into outcomes, so this is a second fence.
		if r := recover(); r != nil {
			if atomic.LoadInt32(&p.closed) == 0 {
				go p.worker()
				return
			}
		}
		atomic.AddInt32(&p.running, -1)
		p.wg.Done()
	}()

	for task := range p.tasks {
		if task != nil {
			task()
		}
	}
}

// ParallelFor executes fn for each index from 0 to n-1 on the pool and
// blocks until all iterations complete. This is the join barrier the
// orchestrator relies on: every adapter outcome exists before it
// returns.
func (p *Pool) ParallelFor(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		idx := i
		if !p.Submit(func() {
			defer wg.Done()
			fn(idx)
		}) {
			wg.Done()
		}
	}
	wg.Wait()
}

// Running returns the current number of running workers.
func (p *Pool) Running() int {
	return int(atomic.LoadInt32(&p.running))
}

// Close shuts down the pool gracefully. All pending tasks complete
// before it returns.
func (p *Pool) Close() {
	if !atomic.CompareAndSwapInt32(&p.closed, 0, 1) {
		return
	}
	close(p.tasks)
	p.wg.Wait()
}
