package seqs

import (
	"iter"
	"time"

	"github.com/adamthedash/iterators/pkg/types"
)

// Throttle paces seq so consecutive elements are emitted at least
// interval apart. The first element is emitted immediately. Because the
// source is pull-driven, nothing is dropped; the source simply is not
// pulled faster than the interval allows.
//
// A nil clock uses real time; tests inject a mock.
func Throttle[T any](seq iter.Seq[T], interval time.Duration, clock types.Clock) iter.Seq[T] {
	if clock == nil {
		clock = types.NewRealClock()
	}

	return func(yield func(T) bool) {
		first := true
		for v := range seq {
			if !first {
				clock.Sleep(interval)
			}
			first = false

			if !yield(v) {
				return
			}
		}
	}
}
