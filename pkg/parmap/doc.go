/*
Package parmap provides an ordered parallel map over lazy sequences.

# Overview

A [Pool] distributes an expensive per-element transformation across a
fixed set of worker goroutines while guaranteeing that the output
sequence is element-for-element identical, in order, to applying the
transformation sequentially. Two variants share one scheduling
algorithm:

  - [New] / [Map]: the transformation is a plain function of the input.
  - [NewStateful] / [MapStateful]: each worker owns an independent,
    persistent mutable state value for its entire lifetime, useful for
    amortizing per-worker resource allocation across many invocations.

# Scheduling

Each worker pairs a capacity-1 inbound mailbox with an unbuffered
outbound hand-off. The pool dispatches items to workers in strict
round-robin rotation and retrieves results in the same rotation, offset
by the number of items in flight. Because every worker is an in-order
one-item pipeline, the k-th dispatched item is always the k-th item
retrieved: concurrency overlaps computation across workers but can
never reorder results.

The channel capacities also bound memory. At most one item can queue
behind the one in progress per worker, and a computed result cannot sit
uncollected, so the pool never runs more than one pending item per
worker ahead of consumption.

# Failure

A panic in a transformation kills that worker and poisons the whole
pool: [Pool.Next] returns an error satisfying
errors.Is(err, types.ErrPoolPoisoned) and every later call keeps
returning it. There is no per-item recovery, retry, or worker restart.
Application-level failures encoded in the output type are passed
through unexamined.

# Usage

	pool, err := parmap.New(slices.Values(inputs), expensive, parmap.WithWorkers(8))
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	for {
		v, ok, err := pool.Next()
		if err != nil {
			log.Fatal(err)
		}
		if !ok {
			break
		}
		consume(v)
	}

Or, as a sequence transform:

	for v := range parmap.Map(slices.Values(inputs), expensive) {
		consume(v)
	}

A Pool is not safe for concurrent use; like iter.Pull, it is meant to
be driven from a single goroutine.
*/
package parmap
