package seqs

import (
	"iter"

	"github.com/rs/zerolog"
)

// FilterLogged drops elements whose paired error is non-nil, logging
// each dropped error, and unwraps the rest into a plain sequence. It is
// the usual tail for "Try"-shaped pipelines whose failures should be
// reported rather than stop the stream.
func FilterLogged[T any](seq iter.Seq2[T, error], log zerolog.Logger) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v, err := range seq {
			if err != nil {
				log.Error().Err(err).Msg("dropping failed element")
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}
