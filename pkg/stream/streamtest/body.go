// Package streamtest provides scripted response bodies for exercising
// stream connections without a network.
package streamtest

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/gammazero/deque"
)

type step struct {
	chunk []byte
	delay time.Duration
	err   error
}

// Body is an io.ReadCloser which returns a scripted sequence of chunks.
// Each Read returns exactly one queued chunk, so chunk boundaries are
// preserved. Once the script runs out, Read blocks until more steps are
// queued or the body is closed.
type Body struct {
	lock   sync.Mutex
	cond   *sync.Cond
	steps  *deque.Deque[step]
	closed bool
}

func NewBody() *Body {
	b := &Body{
		steps: deque.New[step](),
	}
	b.cond = sync.NewCond(&b.lock)
	return b
}

// Chunks builds a Body which returns each of chunks and then io.EOF.
func Chunks(chunks ...string) *Body {
	b := NewBody()
	for _, c := range chunks {
		b.Chunk(c)
	}
	return b.EOF()
}

func (b *Body) push(s step) *Body {
	b.lock.Lock()
	b.steps.PushBack(s)
	b.lock.Unlock()
	b.cond.Broadcast()
	return b
}

// Chunk queues data to be returned by a single Read.
func (b *Body) Chunk(data string) *Body {
	return b.push(step{chunk: []byte(data)})
}

// Delay queues a pause before the next step.
func (b *Body) Delay(d time.Duration) *Body {
	return b.push(step{delay: d})
}

// EOF queues the end of the body.
func (b *Body) EOF() *Body {
	return b.Fail(io.EOF)
}

// Fail queues err to be returned by Read.
func (b *Body) Fail(err error) *Body {
	return b.push(step{err: err})
}

// ErrClosed is returned by Read after Close, as net/http does.
var ErrClosed = errors.New("streamtest: read on closed body")

func (b *Body) Read(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	for {
		for b.steps.Len() == 0 && !b.closed {
			b.cond.Wait()
		}
		if b.closed {
			return 0, ErrClosed
		}

		s := b.steps.Front()
		switch {
		case s.delay > 0:
			b.steps.PopFront()
			b.lock.Unlock()
			time.Sleep(s.delay)
			b.lock.Lock()
		case s.err != nil:
			// Errors are sticky, like a real body at EOF.
			return 0, s.err
		default:
			n := copy(p, s.chunk)
			if n < len(s.chunk) {
				b.steps.Set(0, step{chunk: s.chunk[n:]})
			} else {
				b.steps.PopFront()
			}
			return n, nil
		}
	}
}

func (b *Body) Close() error {
	b.lock.Lock()
	b.closed = true
	b.lock.Unlock()
	b.cond.Broadcast()
	return nil
}

// Closed reports whether Close has been called.
func (b *Body) Closed() bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.closed
}
