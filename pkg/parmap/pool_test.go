package parmap

import (
	"fmt"
	"iter"
	"runtime"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/adamthedash/iterators/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naturals is an infinite source counting how many values were pulled.
func naturals(pulled *int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; ; i++ {
			*pulled++
			if !yield(i) {
				return
			}
		}
	}
}

func drain[T, R any](t *testing.T, p *Pool[T, R]) []R {
	t.Helper()

	var got []R
	for {
		v, ok, err := p.Next()
		require.NoError(t, err)
		if !ok {
			return got
		}
		got = append(got, v)
	}
}

func TestNew_Validation(t *testing.T) {
	square := func(x int) int { return x * x }

	tests := []struct {
		name    string
		fn      func(int) int
		opts    []Option
		wantErr error
	}{
		{
			name: "zero workers",
			fn:   square,
			opts:    []Option{WithWorkers(0)},
			wantErr: types.ErrInvalidPoolSize,
		},
		{
			name:    "negative workers",
			fn:      square,
			opts:    []Option{WithWorkers(-1)},
			wantErr: types.ErrInvalidPoolSize,
		},
		{
			name: "nil transform",
			fn:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(slices.Values([]int{1}), tt.fn, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, p)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNewStateful_NilStateConstructor(t *testing.T) {
	p, err := NewStateful(slices.Values([]int{1}),
		func(s *int, x int) int { return x },
		nil)
	require.Error(t, err)
	assert.Nil(t, p)
}

func TestPool_OrderedOutput(t *testing.T) {
	input := make([]int, 10)
	for i := range input {
		input[i] = i
	}
	want := []int{0, 1, 4, 9, 16, 25, 36, 49, 64, 81}

	for _, workers := range []int{1, 2, 3, 4, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			p, err := New(slices.Values(input), func(x int) int { return x * x },
				WithWorkers(workers))
			require.NoError(t, err)
			defer p.Close()

			assert.Equal(t, want, drain(t, p))
		})
	}
}

func TestPool_StateIsolation(t *testing.T) {
	// Round-robin over two workers: worker 0 sums 1 and 3, worker 1
	// sums 2 and 4. Retrieved in dispatch order that is 1, 2, 4, 6.
	p, err := NewStateful(slices.Values([]int{1, 2, 3, 4}),
		func(total *int, x int) int {
			*total += x
			return *total
		},
		func() int { return 0 },
		WithWorkers(2))
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, []int{1, 2, 4, 6}, drain(t, p))
}

func TestPool_EmptySource(t *testing.T) {
	var calls atomic.Int64
	p, err := New(slices.Values([]int{}), func(x int) int {
		calls.Add(1)
		return x
	}, WithWorkers(4))
	require.NoError(t, err)
	defer p.Close()

	v, ok, err := p.Next()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, int64(0), calls.Load(), "no worker may ever see a real value")
}

func TestPool_ExhaustionIsSticky(t *testing.T) {
	p, err := New(slices.Values([]int{1, 2, 3}), func(x int) int { return x },
		WithWorkers(4))
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, []int{1, 2, 3}, drain(t, p))

	// Pulling past exhaustion is wasteful but harmless.
	for i := 0; i < 10; i++ {
		_, ok, err := p.Next()
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestPool_Backpressure(t *testing.T) {
	pulled := 0
	p, err := New(naturals(&pulled), func(x int) int { return x }, WithWorkers(4))
	require.NoError(t, err)
	defer p.Close()

	// The initial fill dispatches exactly one item per worker.
	assert.Equal(t, 4, pulled)

	// Every retrieval frees one slot and pulls exactly one more value:
	// the pool never runs more than N items ahead of consumption.
	for k := 1; k <= 10; k++ {
		v, ok, err := p.Next()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, k-1, v)
		assert.Equal(t, 4+k, pulled)
	}
}

func TestPool_Size(t *testing.T) {
	src := slices.Values([]int{1})
	id := func(x int) int { return x }

	p, err := New(src, id, WithWorkers(7))
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, 7, p.Size())

	p2, err := New(src, id)
	require.NoError(t, err)
	defer p2.Close()
	assert.Equal(t, runtime.GOMAXPROCS(0), p2.Size())
}

func TestPool_PanicPoisonsPool(t *testing.T) {
	input := make([]int, 10)
	for i := range input {
		input[i] = i
	}

	p, err := New(slices.Values(input), func(x int) int {
		if x == 3 {
			panic("bad item")
		}
		return x * x
	}, WithWorkers(2))
	require.NoError(t, err)

	// Items 0, 1 and 2 complete before the failure is observed.
	for _, want := range []int{0, 1, 4} {
		v, ok, err := p.Next()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, v)
	}

	_, _, err = p.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrPoolPoisoned)

	var we *types.WorkerError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, 1, we.WorkerID, "item 3 was dispatched to worker 1")

	// The poisoned state is sticky.
	_, _, again := p.Next()
	assert.Equal(t, err, again)

	// Close reports the poisoning, and still tears everything down.
	assert.ErrorIs(t, p.Close(), types.ErrPoolPoisoned)
}

func TestPool_Close(t *testing.T) {
	pulled := 0
	p, err := New(naturals(&pulled), func(x int) int { return x }, WithWorkers(4))
	require.NoError(t, err)

	for k := 0; k < 3; k++ {
		_, ok, err := p.Next()
		require.NoError(t, err)
		require.True(t, ok)
	}

	require.NoError(t, p.Close())

	_, _, err = p.Next()
	assert.ErrorIs(t, err, types.ErrPoolClosed)

	// Idempotent.
	assert.NoError(t, p.Close())
}

func TestPool_Seq(t *testing.T) {
	p, err := New(slices.Values([]int{1, 2, 3}), func(x int) int { return x * 10 },
		WithWorkers(2))
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, []int{10, 20, 30}, slices.Collect(p.Seq()))
}

func TestPool_SeqPanicsWhenPoisoned(t *testing.T) {
	p, err := New(slices.Values([]int{1, 2, 3}), func(x int) int {
		panic("boom")
	}, WithWorkers(2))
	require.NoError(t, err)
	defer p.Close()

	assert.Panics(t, func() {
		slices.Collect(p.Seq())
	})
}
