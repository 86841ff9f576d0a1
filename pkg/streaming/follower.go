package streaming

import (
	"context"
	"errors"
	"sync"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/EmilyShepherd/companieshouse-go/pkg/stream"
	"github.com/EmilyShepherd/companieshouse-go/types"
)

// DefaultBackoff is used between reconnection attempts. It is reset
// every time an item is received.
var DefaultBackoff = wait.Backoff{
	Duration: time.Second,
	Factor:   2,
	Jitter:   0.1,
	Steps:    10,
	Cap:      5 * time.Minute,
}

// Handler is called for every item received by a Follower. Returning an
// error stops the Follower.
type Handler[T any] func(item types.Item[T]) error

type FollowerOption func(opts *followerOptions)
type followerOptions struct {
	backoff             wait.Backoff
	timepoint           *types.Timepoint
	resetOnBadTimepoint bool
}

func WithBackoff(b wait.Backoff) FollowerOption {
	return func(opts *followerOptions) {
		opts.backoff = b
	}
}

// WithTimepoint starts the Follower from timepoint, inclusive.
func WithTimepoint(timepoint types.Timepoint) FollowerOption {
	return func(opts *followerOptions) {
		opts.timepoint = &timepoint
	}
}

// WithResetOnBadTimepoint makes the Follower fall back to the live end of
// the stream, rather than stopping, if the server rejects its timepoint.
// Events between the rejected timepoint and the live end are lost.
func WithResetOnBadTimepoint() FollowerOption {
	return func(opts *followerOptions) {
		opts.resetOnBadTimepoint = true
	}
}

// Follower consumes a stream indefinitely, reconnecting whenever the
// connection fails.
//
// After each item is handled, and after each item whose payload failed to
// decode, the Follower's timepoint moves to the item's timepoint plus one,
// and that is what it reconnects with.
type Follower[T any] struct {
	client *Client
	op     Operation[T]
	opts   followerOptions

	lock      sync.RWMutex
	timepoint *types.Timepoint
}

func NewFollower[T any](c *Client, op Operation[T], opt ...FollowerOption) *Follower[T] {
	opts := followerOptions{
		backoff: DefaultBackoff,
	}
	for _, o := range opt {
		o(&opts)
	}

	return &Follower[T]{
		client:    c,
		op:        op,
		opts:      opts,
		timepoint: opts.timepoint,
	}
}

// Timepoint returns the timepoint the Follower would next connect with,
// or nil if it has not seen an item and was not given a starting point.
func (f *Follower[T]) Timepoint() *types.Timepoint {
	f.lock.RLock()
	defer f.lock.RUnlock()

	if f.timepoint == nil {
		return nil
	}
	tp := *f.timepoint
	return &tp
}

// advance moves the timepoint past seen. It never moves backwards.
func (f *Follower[T]) advance(seen types.Timepoint) {
	next := seen.Next()

	f.lock.Lock()
	defer f.lock.Unlock()

	if f.timepoint != nil && *f.timepoint > next {
		return
	}
	f.timepoint = &next
}

func (f *Follower[T]) reset() {
	f.lock.Lock()
	f.timepoint = nil
	f.lock.Unlock()
}

// Run follows the stream until ctx is cancelled, handler returns an
// error, or the server refuses the connection in a way retrying won't
// fix: ErrUnauthorized, or ErrBadTimepoint unless WithResetOnBadTimepoint
// was given.
func (f *Follower[T]) Run(ctx context.Context, handler Handler[T]) error {
	backoff := f.opts.backoff

	for {
		conn, err := Open(ctx, f.client, f.op, f.Timepoint())
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			switch {
			case errors.Is(err, ErrUnauthorized):
				return err
			case errors.Is(err, ErrBadTimepoint):
				if !f.opts.resetOnBadTimepoint {
					return err
				}
				f.reset()
			}
		} else {
			received, cause, fatal := f.consume(ctx, conn, handler)
			if fatal != nil {
				return fatal
			}
			if received {
				backoff = f.opts.backoff
			}
			err = cause
		}

		if err := f.sleep(ctx, &backoff, err); err != nil {
			return err
		}
	}
}

var errDisconnected = errors.New("stream disconnected")

// consume reads from conn until it fails, returning the reason the
// connection was lost. A non-nil fatal error means the Follower must
// stop.
func (f *Follower[T]) consume(ctx context.Context, conn *stream.Connection[T], handler Handler[T]) (received bool, cause error, fatal error) {
	async := stream.NewAsyncStream[types.Item[T]](conn, stream.IsFatal)
	defer async.Stop()

	for {
		select {
		case <-ctx.Done():
			return received, nil, ctx.Err()
		case r, ok := <-async.ResultChan():
			if !ok {
				return received, errDisconnected, nil
			}

			var dataErr *stream.BadItemDataError
			switch {
			case r.Err == nil:
				received = true
				if err := handler(r.Item); err != nil {
					return received, nil, err
				}
				f.advance(r.Item.Event.Timepoint)
			case errors.As(r.Err, &dataErr):
				received = true
				f.advance(dataErr.Value.Event.Timepoint)
			default:
				return received, r.Err, nil
			}
		}
	}
}

func (f *Follower[T]) sleep(ctx context.Context, backoff *wait.Backoff, cause error) error {
	delay := backoff.Step()
	f.client.observer.Reconnect(cause, delay)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
