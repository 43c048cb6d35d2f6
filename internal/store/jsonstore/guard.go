package jsonstore

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Guard is a single-permit lock. Unlike sync.Mutex, waiting for it can be
// abandoned through the context.
type Guard struct {
	sem *semaphore.Weighted
}

func NewGuard() *Guard {
	return &Guard{sem: semaphore.NewWeighted(1)}
}

// Do runs fn while holding the permit. The permit is released on every
// exit path, including a panic in fn.
func (g *Guard) Do(ctx context.Context, fn func() error) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire store lock: %w", err)
	}
	defer g.sem.Release(1)
	return fn()
}
