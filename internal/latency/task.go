// Package latency simulates network round trips in front of state changes.
//
// A Task runs its operation once after a delay and completes exactly once.
// The operation runs whether or not anybody is still waiting for it, so
// ledger state always reflects every request that was accepted. Waiters
// bail out with their own context error when the initiating request is gone.
package latency

import (
	"context"
	"sync"
	"time"
)

type Task[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

// Run schedules op after delay. A zero or negative delay runs op on the
// calling goroutine before Run returns.
func Run[T any](delay time.Duration, op func() (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	if delay <= 0 {
		t.complete(op())
		return t
	}
	time.AfterFunc(delay, func() {
		t.complete(op())
	})
	return t
}

func (t *Task[T]) complete(v T, err error) {
	t.once.Do(func() {
		t.value, t.err = v, err
		close(t.done)
	})
}

// Wait blocks until the task completes or ctx is done. A cancelled ctx does
// not stop the operation, it only stops this wait.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed once the operation has run
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Simulator applies one configured delay to every task it starts
type Simulator struct {
	Delay time.Duration
}

// Do runs op behind the simulated delay and waits for it on ctx
func Do[T any](ctx context.Context, s Simulator, op func() (T, error)) (T, error) {
	return Run(s.Delay, op).Wait(ctx)
}
