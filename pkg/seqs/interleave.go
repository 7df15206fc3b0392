package seqs

import "iter"

// Interleave alternates elements from left and right, starting with
// left. The sequence ends as soon as the side whose turn it is has run
// out, so the last element may come from either side.
func Interleave[T any](left, right iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		nextLeft, stopLeft := iter.Pull(left)
		defer stopLeft()
		nextRight, stopRight := iter.Pull(right)
		defer stopRight()

		fromLeft := true
		for {
			var (
				v  T
				ok bool
			)
			if fromLeft {
				v, ok = nextLeft()
			} else {
				v, ok = nextRight()
			}
			if !ok {
				return
			}
			fromLeft = !fromLeft

			if !yield(v) {
				return
			}
		}
	}
}
