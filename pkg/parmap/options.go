package parmap

import (
	"fmt"
	"runtime"

	"github.com/adamthedash/iterators/pkg/types"
)

type config struct {
	workers int
}

// Option configures a Pool
type Option func(*config)

// WithWorkers sets the pool size. The default is runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

func defaultConfig() config {
	return config{
		workers: runtime.GOMAXPROCS(0),
	}
}

func (c config) validate() error {
	if c.workers < 1 {
		return fmt.Errorf("%w: %d", types.ErrInvalidPoolSize, c.workers)
	}
	return nil
}
