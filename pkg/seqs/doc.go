/*
Package seqs provides sequential adapters for Go 1.23 iterators
(iter.Seq).

These are simple single-threaded transforms that compose freely with
each other and with the parallel engine in package parmap, before or
after it, in any order: state-carrying mapping ([StatefulMap]), bounded
read-ahead ([Buffered]), alternating two sequences ([Interleave]),
partitioning into labeled buckets ([Bucket]), dropping and logging
failed elements ([FilterLogged]), and pacing ([Throttle]). Source and
sink helpers ([Range], [FromSlice], [Collect]) round the package out.
*/
package seqs
