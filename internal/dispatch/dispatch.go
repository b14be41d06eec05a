// Package dispatch bounds how many blocking remote calls run at once. Every
// call into the Garmin client goes through a Dispatcher so a refresh cycle's
// fan-out cannot open an unbounded number of connections.
package dispatch

import "context"

type Dispatcher struct {
	slots chan struct{}
}

const DefaultWorkers = 4

// New returns a dispatcher that admits at most workers concurrent calls.
func New(workers int) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Dispatcher{slots: make(chan struct{}, workers)}
}

// Run executes fn under a worker slot, blocking until one is free. A context
// cancelled while waiting returns ctx.Err without running fn.
func (d *Dispatcher) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	select {
	case d.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-d.slots }()

	return fn(ctx)
}

// Call is Run for functions that produce a value.
func Call[T any](ctx context.Context, d *Dispatcher, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := d.Run(ctx, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}
