package stream

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"

	"github.com/EmilyShepherd/companieshouse-go/types"
)

// RecordDecoder turns a single line from the stream into an Item.
type RecordDecoder[T any] struct {
	unmarshal UnmarshalFunc
}

// NewRecordDecoder returns a RecordDecoder using the given unmarshal
// function, or json.Unmarshal if it is nil.
func NewRecordDecoder[T any](unmarshal UnmarshalFunc) RecordDecoder[T] {
	if unmarshal == nil {
		unmarshal = json.Unmarshal
	}
	return RecordDecoder[T]{unmarshal: unmarshal}
}

// Decode decodes line. It returns false, with no error, if the line is
// blank and should be skipped.
//
// A line which is valid JSON with a valid envelope but a payload that
// doesn't bind to T yields a *BadItemDataError. Anything else that fails
// to decode, including an item whose event is missing or invalid, yields
// a *BadItemJSONError.
func (d RecordDecoder[T]) Decode(line []byte) (types.Item[T], bool, error) {
	var item types.Item[T]

	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return item, false, nil
	}

	if !utf8.Valid(line) {
		return item, true, &BadItemEncodingError{Text: append([]byte(nil), line...)}
	}

	err := d.unmarshal(line, &item)
	if err == nil {
		if vErr := item.Event.Validate(); vErr != nil {
			return types.Item[T]{}, true, &BadItemJSONError{Err: vErr, Text: string(line)}
		}
		return item, true, nil
	}

	if json.Valid(line) {
		var raw types.RawItem
		if rawErr := d.unmarshal(line, &raw); rawErr == nil {
			if rawErr := raw.Event.Validate(); rawErr != nil {
				return types.Item[T]{}, true, &BadItemJSONError{Err: rawErr, Text: string(line)}
			}
			return types.Item[T]{}, true, &BadItemDataError{Err: err, Value: raw}
		}
	}

	return types.Item[T]{}, true, &BadItemJSONError{Err: err, Text: string(line)}
}
