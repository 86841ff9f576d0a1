// Package stream implements the ingestion side of the streaming API: a
// long running HTTP response body carrying newline delimited JSON, which
// is reassembled into lines, decoded and handed out one item at a time.
package stream

// UnmarshalFunc decodes a single JSON document. json.Unmarshal is the
// default.
type UnmarshalFunc func(data []byte, v any) error

// A stream is able to provide a source of atomic data values.
//
// The source of a Stream's data is implementating specific - an example
// may be reading JSON objects from a long running HTTP response.
type Stream[T any] interface {
	Next() (T, error)
}
