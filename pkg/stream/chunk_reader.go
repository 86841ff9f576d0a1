package stream

import (
	"errors"
	"io"
	"time"
)

// DefaultChunkSize is the size of the buffer each body read is made into.
const DefaultChunkSize = 32 * 1024

type readResult struct {
	n   int
	err error
}

// ChunkReader reads chunks from a response body, giving up on a read if
// the body stays silent for longer than a timeout.
//
// Only one read of the body is ever in flight. A read that times out is
// left running and is picked up by the next call to Read, or is unblocked
// when the body is closed.
type ChunkReader struct {
	body    io.Reader
	buf     []byte
	pending chan readResult
	err     error
}

func NewChunkReader(body io.Reader, size int) *ChunkReader {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &ChunkReader{
		body: body,
		buf:  make([]byte, size),
	}
}

// Read returns the next chunk of the body. A timeout of zero or less
// waits indefinitely; Connection maps a zero ChunkTimeout to
// DefaultChunkTimeout before it gets here.
//
// The returned slice is only valid until the next call to Read.
func (r *ChunkReader) Read(timeout time.Duration) ([]byte, error) {
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		if r.err != nil {
			err := r.err
			r.err = nil
			return nil, classifyReadError(err)
		}

		if r.pending == nil {
			r.pending = make(chan readResult, 1)
			go func(ch chan<- readResult) {
				n, err := r.body.Read(r.buf)
				ch <- readResult{n: n, err: err}
			}(r.pending)
		}

		select {
		case res := <-r.pending:
			r.pending = nil
			if res.n > 0 {
				// Any error that came alongside data is reported on the
				// following call.
				r.err = res.err
				return r.buf[:res.n], nil
			}
			if res.err != nil {
				return nil, classifyReadError(res.err)
			}
		case <-deadline:
			return nil, ErrChunkTimeout
		}
	}
}

func classifyReadError(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrStreamComplete
	}
	return &BadChunkError{Err: err}
}

// IsHeartbeat reports whether chunk is the keep-alive the server sends on
// an idle stream: a single newline. It is only a heartbeat if it arrives
// while no partial line is buffered.
func IsHeartbeat(chunk []byte) bool {
	return len(chunk) == 1 && chunk[0] == '\n'
}
