package stream

import (
	"io"
	"time"

	"github.com/EmilyShepherd/companieshouse-go/types"
)

const (
	// DefaultChunkTimeout is how long a connection may go without
	// receiving anything, heartbeats included, before it is abandoned.
	DefaultChunkTimeout = 60 * time.Second

	// DefaultMaxLineLength bounds how much is buffered while waiting for
	// a newline.
	DefaultMaxLineLength = 4 * 1024 * 1024
)

// Config holds the tunables of a Connection. Zero values take the
// defaults. A negative ChunkTimeout waits indefinitely for each chunk,
// and a negative MaxLineLength disables the limit.
type Config struct {
	ChunkTimeout  time.Duration
	ChunkSize     int
	MaxLineLength int
	Unmarshal     UnmarshalFunc
	Observer      Observer
}

// Connection reads Items of type T from a single open response body.
//
// Next must not be called concurrently. Once Next returns a fatal error
// (see IsFatal) every following call returns the same error, and the
// caller should Close the connection and open a new one.
type Connection[T any] struct {
	body          io.ReadCloser
	buffer        FrameBuffer
	reader        *ChunkReader
	decoder       RecordDecoder[T]
	chunkTimeout  time.Duration
	maxLineLength int
	observer      Observer
	err           error
}

func NewConnection[T any](body io.ReadCloser, cfg Config) *Connection[T] {
	if cfg.ChunkTimeout == 0 {
		cfg.ChunkTimeout = DefaultChunkTimeout
	}
	if cfg.MaxLineLength == 0 {
		cfg.MaxLineLength = DefaultMaxLineLength
	}
	if cfg.Observer == nil {
		cfg.Observer = NopObserver{}
	}

	return &Connection[T]{
		body:          body,
		reader:        NewChunkReader(body, cfg.ChunkSize),
		decoder:       NewRecordDecoder[T](cfg.Unmarshal),
		chunkTimeout:  cfg.ChunkTimeout,
		maxLineLength: cfg.MaxLineLength,
		observer:      cfg.Observer,
	}
}

// Next blocks until the next item is available.
//
// Heartbeats and blank lines are skipped. A *BadItemDataError is
// returned for an item whose payload doesn't match T; the connection can
// still be used after it.
func (c *Connection[T]) Next() (types.Item[T], error) {
	if c.err != nil {
		return types.Item[T]{}, c.err
	}

	for {
		if line, ok := c.buffer.TakeLine(); ok {
			item, ok, err := c.decoder.Decode(line)
			if err != nil {
				return item, c.fail(err)
			}
			if !ok {
				continue
			}
			c.observer.Record(item.Event.Timepoint)
			return item, nil
		}

		if c.maxLineLength > 0 && c.buffer.Len() > c.maxLineLength {
			return types.Item[T]{}, c.fail(ErrLineTooLong)
		}

		chunk, err := c.reader.Read(c.chunkTimeout)
		if err != nil {
			return types.Item[T]{}, c.fail(err)
		}

		if c.buffer.Empty() && IsHeartbeat(chunk) {
			c.observer.Heartbeat()
			continue
		}

		c.observer.Chunk(len(chunk))
		c.buffer.Append(chunk)
	}
}

func (c *Connection[T]) fail(err error) error {
	c.observer.Error(err)
	if IsFatal(err) {
		c.err = err
	}
	return err
}

// Close releases the response body. Any Next blocked on a read returns
// once the body has been closed.
func (c *Connection[T]) Close() error {
	return c.body.Close()
}
