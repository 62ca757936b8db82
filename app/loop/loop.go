// Package loop runs functions one at a time on a single goroutine. Map
// session state is only ever touched from inside the loop, so it needs no
// locking.
package loop

import (
	"context"
	"fmt"
)

const DefaultQueueSize = 256

type Loop struct {
	queue chan func()
	done  chan struct{}
}

func New(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	return &Loop{
		queue: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
}

// Run executes queued functions until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.queue:
			fn()
		}
	}
}

// Post queues fn without waiting for it to run.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return fmt.Errorf("loop stopped")
	default:
	}

	select {
	case l.queue <- fn:
		return nil
	default:
		return fmt.Errorf("loop queue is full")
	}
}

// Do queues fn and waits until it has run.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		fn()
	}

	select {
	case l.queue <- wrapped:
	case <-l.done:
		return fmt.Errorf("loop stopped")
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		return fmt.Errorf("loop stopped")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
