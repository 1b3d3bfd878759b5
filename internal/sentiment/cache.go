package sentiment

import (
	"context"
	"sync"
)

type cached struct {
	inner Scorer
	mu    sync.Mutex
	memo  map[string]float64
}

// Cached memoises successful scores so repeated texts hit the backend once.
func Cached(s Scorer) Scorer {
	return &cached{inner: s, memo: make(map[string]float64)}
}

func (c *cached) Score(ctx context.Context, text string) (float64, error) {
	c.mu.Lock()
	if v, ok := c.memo[text]; ok {
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	v, err := c.inner.Score(ctx, text)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	c.memo[text] = v
	c.mu.Unlock()
	return v, nil
}
