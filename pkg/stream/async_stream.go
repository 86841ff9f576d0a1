package stream

import (
	"io"
	"sync"
)

// Result is a single outcome of a call to Next.
type Result[T any] struct {
	Item T
	Err  error
}

// AsyncStream acts as a wrapper for any Stream and allows results to be
// read from it asynchronously, so that a consumer can wait on a result
// alongside other events such as context cancellation.
//
// Results, errors included, are delivered in order. The stream stops
// itself after delivering an error for which fatal returns true.
type AsyncStream[T any] struct {
	stream Stream[T]
	fatal  func(error) bool
	result chan Result[T]
	stop   chan struct{}
	once   sync.Once
}

// NewAsyncStream starts reading from stream. If fatal is nil every error
// stops the stream.
func NewAsyncStream[T any](stream Stream[T], fatal func(error) bool) *AsyncStream[T] {
	if fatal == nil {
		fatal = func(error) bool { return true }
	}
	sd := &AsyncStream[T]{
		stream: stream,
		fatal:  fatal,
		result: make(chan Result[T]),
		stop:   make(chan struct{}),
	}

	go sd.run()

	return sd
}

func (sd *AsyncStream[T]) run() {
	defer close(sd.result)

	for {
		item, err := sd.stream.Next()

		// Anything read after Stop, including the error caused by closing
		// the stream, is dropped.
		if sd.Stopped() {
			return
		}

		select {
		case sd.result <- Result[T]{Item: item, Err: err}:
		case <-sd.stop:
			return
		}

		if err != nil && sd.fatal(err) {
			return
		}
	}
}

// Stop ends the stream. If the wrapped stream can be closed, it is, which
// unblocks any read in progress. The result channel is closed once the
// reader has exited.
func (sd *AsyncStream[T]) Stop() {
	sd.once.Do(func() {
		close(sd.stop)

		if closer, ok := sd.stream.(io.Closer); ok {
			closer.Close()
		}
	})
}

// Stopped reports whether Stop has been called.
func (sd *AsyncStream[T]) Stopped() bool {
	select {
	case <-sd.stop:
		return true
	default:
		return false
	}
}

func (sd *AsyncStream[T]) ResultChan() <-chan Result[T] {
	return sd.result
}
