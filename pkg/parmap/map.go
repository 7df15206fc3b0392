package parmap

import "iter"

// Map applies fn to each element of src in parallel, preserving source
// order. The returned sequence owns its pool: it is created when
// iteration starts and closed when iteration ends, including when the
// consumer stops early. Invalid options or a worker failure panic; use
// New and Pool.Next to handle those as errors.
func Map[T, R any](src iter.Seq[T], fn func(T) R, opts ...Option) iter.Seq[R] {
	return func(yield func(R) bool) {
		p, err := New(src, fn, opts...)
		if err != nil {
			panic(err)
		}
		defer p.Close()

		p.Seq()(yield)
	}
}

// MapStateful applies fn to each element of src in parallel with one
// private state value per worker, preserving source order. newState is
// invoked once per worker. Pool lifecycle and failure semantics match
// Map.
func MapStateful[T, R, S any](src iter.Seq[T], fn func(*S, T) R, newState func() S, opts ...Option) iter.Seq[R] {
	return func(yield func(R) bool) {
		p, err := NewStateful(src, fn, newState, opts...)
		if err != nil {
			panic(err)
		}
		defer p.Close()

		p.Seq()(yield)
	}
}
