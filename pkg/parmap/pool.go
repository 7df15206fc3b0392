package parmap

import (
	"fmt"
	"iter"
	"sync"

	"github.com/adamthedash/iterators/pkg/types"
)

// Pool applies a transformation to a lazy sequence across a fixed set
// of worker goroutines, yielding results in source order. Create one
// with New or NewStateful and release it with Close.
//
// A Pool is single-consumer: its methods must not be called
// concurrently.
type Pool[T, R any] struct {
	pull func() (T, bool)
	stop func()

	workers []*worker[T, R]
	wg      sync.WaitGroup

	// dispatch is the next worker to receive an item; inFlight counts
	// items dispatched but not yet retrieved. The worker due to yield
	// the next result is at (dispatch - inFlight) mod len(workers).
	dispatch int
	inFlight int

	err    error
	closed bool
}

// New creates a pool applying fn to each element of src. fn must be
// safe to invoke concurrently from every worker.
//
// The pool starts pulling from src immediately: construction dispatches
// one item per worker.
func New[T, R any](src iter.Seq[T], fn func(T) R, opts ...Option) (*Pool[T, R], error) {
	if fn == nil {
		return nil, fmt.Errorf("transform function cannot be nil")
	}

	return newPool[T, R](src, opts, func(id int, wg *sync.WaitGroup) *worker[T, R] {
		return newWorker(id, wg, fn)
	})
}

// NewStateful creates a pool applying fn to each element of src, where
// each worker passes fn a mutable state value of its own. newState is
// invoked exactly once per worker at construction; the resulting value
// is that worker's exclusive working state for the pool's entire life,
// never shared and never reset between items.
//
// State is working memory for amortizing per-worker allocations. The
// order in which items land on a given worker's state is a scheduling
// detail, so it should not be used to accumulate results across the
// whole sequence.
func NewStateful[T, R, S any](src iter.Seq[T], fn func(*S, T) R, newState func() S, opts ...Option) (*Pool[T, R], error) {
	if fn == nil {
		return nil, fmt.Errorf("transform function cannot be nil")
	}
	if newState == nil {
		return nil, fmt.Errorf("state constructor cannot be nil")
	}

	return newPool[T, R](src, opts, func(id int, wg *sync.WaitGroup) *worker[T, R] {
		return newStatefulWorker(id, wg, fn, newState())
	})
}

func newPool[T, R any](src iter.Seq[T], opts []Option, spawn func(int, *sync.WaitGroup) *worker[T, R]) (*Pool[T, R], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	p := &Pool[T, R]{
		workers: make([]*worker[T, R], cfg.workers),
	}
	for i := range p.workers {
		p.workers[i] = spawn(i, &p.wg)
	}

	p.pull, p.stop = iter.Pull(src)
	p.fill()

	return p, nil
}

// fill tops the pool up to one in-flight item per worker, pulling from
// the source (or dispatching end markers once it is exhausted) in
// round-robin rotation. Dispatch never blocks: fill only runs when the
// target worker's mailbox slot is free.
func (p *Pool[T, R]) fill() {
	for p.inFlight < len(p.workers) {
		var it item[T]
		if v, ok := p.pull(); ok {
			it.value = v
		} else {
			it.end = true
		}

		p.workers[p.dispatch].in <- it
		p.dispatch = (p.dispatch + 1) % len(p.workers)
		p.inFlight++
	}
}

// due returns the worker holding the oldest undelivered result.
func (p *Pool[T, R]) due() *worker[T, R] {
	n := len(p.workers)
	return p.workers[(2*n+p.dispatch-p.inFlight)%n]
}

// Next returns the next result in source order, blocking until the due
// worker has produced it. It returns (zero, false, nil) once the source
// is exhausted; pulling past that point is harmless and keeps returning
// end of sequence. If a worker has died, Next returns an error
// satisfying errors.Is(err, types.ErrPoolPoisoned), and the pool is
// permanently unusable. After Close it returns types.ErrPoolClosed.
func (p *Pool[T, R]) Next() (R, bool, error) {
	var zero R
	if p.closed {
		return zero, false, types.ErrPoolClosed
	}
	if p.err != nil {
		return zero, false, p.err
	}

	w := p.due()
	res, ok := <-w.out
	if !ok {
		return zero, false, p.poison(w)
	}

	p.inFlight--
	p.fill()

	if res.end {
		return zero, false, nil
	}
	return res.value, true, nil
}

// poison records the fatal failure of w. One failing item poisons the
// entire pool: there is no isolation or restart of individual workers.
func (p *Pool[T, R]) poison(w *worker[T, R]) error {
	cause := w.err
	if cause == nil {
		cause = fmt.Errorf("worker %d terminated unexpectedly", w.id)
	}
	p.err = fmt.Errorf("%w: %w", types.ErrPoolPoisoned, cause)
	return p.err
}

// Size returns the number of workers, fixed at construction for the
// pool's entire life.
func (p *Pool[T, R]) Size() int {
	return len(p.workers)
}

// Seq returns the remaining output as a single-use sequence. It panics
// if the pool is poisoned; callers that need to observe failures should
// drive Next directly. The caller remains responsible for Close.
func (p *Pool[T, R]) Seq() iter.Seq[R] {
	return func(yield func(R) bool) {
		for {
			v, ok, err := p.Next()
			if err != nil {
				panic(err)
			}
			if !ok {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Close releases the source, closes every worker's mailbox, and waits
// for every worker goroutine to exit before returning, so no worker
// outlives the pool. It is idempotent. If the pool was poisoned, Close
// returns the poisoning error.
func (p *Pool[T, R]) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	p.stop()
	for _, w := range p.workers {
		close(w.in)
	}
	// Drain pending hand-offs so workers blocked on send can exit.
	for _, w := range p.workers {
		for range w.out {
		}
	}
	p.wg.Wait()

	return p.err
}
