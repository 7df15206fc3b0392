package seqs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatefulMap_RunningSum(t *testing.T) {
	got := Collect(StatefulMap(Range(1, 6, 1), 0, func(total *int, x int) int {
		*total += x
		return *total
	}))

	assert.Equal(t, []int{1, 3, 6, 10, 15}, got)
}

func TestStatefulMap_Fibonacci(t *testing.T) {
	type fibState struct {
		prev0, prev1 int
	}

	// The input only drives the length; the state carries the sequence.
	got := Collect(StatefulMap(Range(0, 8, 1), fibState{prev0: 1, prev1: 0},
		func(s *fibState, _ int) int {
			next := s.prev0 + s.prev1
			s.prev0 = s.prev1
			s.prev1 = next
			return next
		}))

	assert.Equal(t, []int{1, 1, 2, 3, 5, 8, 13, 21}, got)
}

func TestStatefulMap_ReusesScratchBuffer(t *testing.T) {
	type scratch struct {
		buf []byte
	}

	var firstBuf []byte
	got := Collect(StatefulMap(Range(0, 4, 1), scratch{buf: make([]byte, 64)},
		func(s *scratch, x int) int {
			if firstBuf == nil {
				firstBuf = s.buf
			}
			assert.Same(t, &firstBuf[0], &s.buf[0], "buffer must persist across invocations")
			return x
		}))

	assert.Equal(t, []int{0, 1, 2, 3}, got)
}

func TestStatefulMap_EarlyBreak(t *testing.T) {
	var got []int
	for v := range StatefulMap(Range(0, 100, 1), 0, func(n *int, x int) int {
		*n++
		return *n
	}) {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, got)
}
