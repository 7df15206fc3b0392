package seqs

import "iter"

// Buffered reads ahead of the consumer by up to capacity elements,
// pulling seq from a dedicated goroutine. Useful in front of a slow
// consumer when the source has bursty latency of its own (disk reads,
// network fetches).
//
// Capacities below one are treated as one. If the consumer stops early
// the producer goroutine is stopped at the next element boundary.
func Buffered[T any](seq iter.Seq[T], capacity int) iter.Seq[T] {
	if capacity < 1 {
		capacity = 1
	}

	return func(yield func(T) bool) {
		ch := make(chan T, capacity)
		done := make(chan struct{})
		defer close(done)

		go func() {
			defer close(ch)
			for v := range seq {
				select {
				case ch <- v:
				case <-done:
					return
				}
			}
		}()

		for v := range ch {
			if !yield(v) {
				return
			}
		}
	}
}
