package seqs

import "iter"

// StatefulMap applies fn to each element of seq, passing a mutable
// state value that persists across invocations. The state starts as a
// copy of initial and is owned exclusively by the returned sequence, so
// the sequence is single-use: iterating it twice continues from the
// state the first pass left behind.
//
// Unlike parmap.MapStateful there is a single state value and a single
// goroutine, so fn may legitimately accumulate across the whole
// sequence (running totals, previous-element lookback).
func StatefulMap[T, R, S any](seq iter.Seq[T], initial S, fn func(*S, T) R) iter.Seq[R] {
	state := initial
	return func(yield func(R) bool) {
		for v := range seq {
			if !yield(fn(&state, v)) {
				return
			}
		}
	}
}
