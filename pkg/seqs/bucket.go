package seqs

import "iter"

// Bucket partitions the elements of seq into n labeled buckets. fn maps
// each element to its bucket index and must return a value in [0, n);
// anything else panics.
//
// Bucket consumes seq eagerly and holds every element in memory at
// once, so it is not suitable for unbounded sequences.
func Bucket[T any](seq iter.Seq[T], n int, fn func(T) int) [][]T {
	buckets := make([][]T, n)
	for v := range seq {
		i := fn(v)
		buckets[i] = append(buckets[i], v)
	}
	return buckets
}
