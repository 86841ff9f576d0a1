package streaming

import (
	"errors"
	"fmt"
)

var (
	ErrConnectionTimeout = errors.New("connection timeout exceeded")
	ErrUnauthorized      = errors.New("not authorised to connect to this stream")
	ErrTooManyRequests   = errors.New("rate limited by stream endpoint")
	ErrBadTimepoint      = errors.New("timepoint specified is invalid or too old")
)

// UnknownResponseError is returned when the stream endpoint answers with
// a status that has no specific meaning.
type UnknownResponseError struct {
	StatusCode int
	Body       string
}

func (e *UnknownResponseError) Error() string {
	return fmt.Sprintf("unknown connection response %d: %s", e.StatusCode, e.Body)
}

// UnknownConnectionError is returned when the request could not be made
// at all.
type UnknownConnectionError struct {
	Err error
}

func (e *UnknownConnectionError) Error() string {
	return fmt.Sprintf("unknown error connecting to stream endpoint: %v", e.Err)
}

func (e *UnknownConnectionError) Unwrap() error {
	return e.Err
}
