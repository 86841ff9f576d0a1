package stream

import (
	"errors"
	"fmt"

	"github.com/EmilyShepherd/companieshouse-go/types"
)

var (
	// ErrChunkTimeout is returned when no chunk arrives within the chunk
	// timeout. The connection must be discarded.
	ErrChunkTimeout = errors.New("stream chunk timeout exceeded")

	// ErrStreamComplete is returned when the server ends the response
	// body. A new connection is required to continue.
	ErrStreamComplete = errors.New("stream has no more items and a new connection is required")

	// ErrLineTooLong is returned when the buffer grows past the maximum
	// line length without a newline.
	ErrLineTooLong = errors.New("stream line exceeds maximum length")
)

// BadChunkError is returned when the response body can't be read.
type BadChunkError struct {
	Err error
}

func (e *BadChunkError) Error() string {
	return fmt.Sprintf("unable to read from response body: %v", e.Err)
}

func (e *BadChunkError) Unwrap() error {
	return e.Err
}

// BadItemEncodingError is returned for a line which is not valid UTF-8.
type BadItemEncodingError struct {
	Text []byte
}

func (e *BadItemEncodingError) Error() string {
	return "unable to read utf8 from response body"
}

// BadItemJSONError is returned for a line which is not a valid item
// envelope. The stream can no longer be trusted once this is seen.
type BadItemJSONError struct {
	Err  error
	Text string
}

func (e *BadItemJSONError) Error() string {
	return fmt.Sprintf("unable to deserialize next stream item as JSON: %v", e.Err)
}

func (e *BadItemJSONError) Unwrap() error {
	return e.Err
}

// BadItemDataError is returned for an item whose envelope decoded but
// whose payload did not match the expected type. Value still carries the
// event metadata, so the timepoint can be used to advance a cursor. The
// connection remains usable.
type BadItemDataError struct {
	Err   error
	Value types.RawItem
}

func (e *BadItemDataError) Error() string {
	return fmt.Sprintf("unable to convert JSON to data type: %v", e.Err)
}

func (e *BadItemDataError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err, as returned by Next, means the connection
// must be discarded. Only a BadItemDataError leaves it usable.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var dataErr *BadItemDataError
	return !errors.As(err, &dataErr)
}
