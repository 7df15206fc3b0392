package parmap

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/adamthedash/iterators/pkg/types"
)

// item wraps a value or an end marker. An end marker means the upstream
// sequence is exhausted; workers forward it without invoking the
// transformation.
type item[T any] struct {
	value T
	end   bool
}

// worker is one goroutine of the pool, identified by its position.
// The capacity-1 mailbox lets exactly one item queue behind the one in
// progress; the unbuffered out channel forces a synchronous hand-off so
// a computed result can never sit uncollected.
type worker[T, R any] struct {
	id  int
	in  chan item[T]
	out chan item[R]

	// err is written at most once, before out is closed, and must only
	// be read after out has been observed closed.
	err error
}

// newWorker creates a worker and starts its goroutine. The goroutine
// exits when the mailbox is closed or the transformation panics.
func newWorker[T, R any](id int, wg *sync.WaitGroup, fn func(T) R) *worker[T, R] {
	w := &worker[T, R]{
		id:  id,
		in:  make(chan item[T], 1),
		out: make(chan item[R]),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.run(fn)
	}()

	return w
}

// newStatefulWorker creates a worker whose transformation closes over a
// state value owned exclusively by this worker for its entire lifetime.
// The state is never reset between items and never visible to any other
// worker or to the pool.
func newStatefulWorker[T, R, S any](id int, wg *sync.WaitGroup, fn func(*S, T) R, state S) *worker[T, R] {
	return newWorker(id, wg, func(v T) R {
		return fn(&state, v)
	})
}

func (w *worker[T, R]) run(fn func(T) R) {
	defer close(w.out)

	for it := range w.in {
		res, err := w.apply(fn, it)
		if err != nil {
			w.err = err
			return
		}
		w.out <- res
	}
}

// apply invokes the transformation with panic recovery. End markers are
// passed through without invoking the transformation.
func (w *worker[T, R]) apply(fn func(T) R, it item[T]) (res item[R], err error) {
	defer func() {
		if r := recover(); r != nil {
			var buf [4096]byte
			n := runtime.Stack(buf[:], false)

			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("panic: %v", r)
			}

			err = types.NewWorkerError(w.id, cause).
				WithContext("stack_trace", string(buf[:n]))
		}
	}()

	if it.end {
		return item[R]{end: true}, nil
	}
	return item[R]{value: fn(it.value)}, nil
}
