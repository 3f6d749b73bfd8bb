// Package parallel splits per-pixel work into horizontal row bands and
// runs them on a fixed set of worker goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// bandsPerWorker oversubscribes the queues so a worker that finishes its
// own bands early can steal from a slower one.
const bandsPerWorker = 4

// Pool runs row bands on long-lived workers. Each worker owns a queue and
// steals from the others when its own is empty.
//
// Pool is safe for concurrent use. The zero value is not usable; call
// NewPool.
type Pool struct {
	queues []chan func()
	done   chan struct{}
	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewPool starts a pool with n workers. n <= 0 uses GOMAXPROCS.
func NewPool(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		queues: make([]chan func(), n),
		done:   make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), bandsPerWorker*2)
	}
	p.wg.Add(n)
	for i := range n {
		go p.run(i)
	}
	return p
}

func (p *Pool) run(id int) {
	defer p.wg.Done()
	own := p.queues[id]
	for {
		select {
		case fn := <-own:
			fn()
			continue
		case <-p.done:
			drain(own)
			return
		default:
		}
		if fn := p.steal(id); fn != nil {
			fn()
			continue
		}
		select {
		case fn := <-own:
			fn()
		case <-p.done:
			drain(own)
			return
		}
	}
}

func drain(q chan func()) {
	for {
		select {
		case fn := <-q:
			fn()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i, q := range p.queues {
		if i == id {
			continue
		}
		select {
		case fn := <-q:
			return fn
		default:
		}
	}
	return nil
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return len(p.queues) }

// Rows calls fn for disjoint bands [y0, y1) that together cover [0, rows)
// and returns when every band is done. Small jobs and a closed pool run
// on the calling goroutine.
func (p *Pool) Rows(rows int, fn func(y0, y1 int)) {
	if rows <= 0 {
		return
	}
	bands := min(rows, len(p.queues)*bandsPerWorker)
	if bands <= 1 || p.closed.Load() {
		fn(0, rows)
		return
	}

	var wg sync.WaitGroup
	wg.Add(bands)
	for i := range bands {
		y0, y1 := i*rows/bands, (i+1)*rows/bands
		band := func() {
			defer wg.Done()
			fn(y0, y1)
		}
		select {
		case p.queues[i%len(p.queues)] <- band:
		case <-p.done:
			band()
		}
	}
	wg.Wait()
}

// Close stops the workers once their queued bands have run. It is safe
// to call more than once but must not race a running Rows.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	close(p.done)
	p.wg.Wait()
}
