package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Timepoint is the cursor the streaming API assigns to every event. It is
// strictly increasing in delivery order and can be passed back when
// connecting to resume a feed.
type Timepoint uint64

// Next returns the timepoint to connect with in order to resume after t.
func (t Timepoint) Next() Timepoint {
	return t + 1
}

type EventType string

const (
	EventTypeChanged EventType = "changed"
	EventTypeDeleted EventType = "deleted"
)

// Event is the metadata attached to every item on a stream.
type Event struct {
	PublishedAt   string    `json:"published_at"`
	Timepoint     Timepoint `json:"timepoint"`
	Type          EventType `json:"type"`
	FieldsChanged []string  `json:"fields_changed,omitempty"`
}

var errMissingTimepoint = errors.New("event has no timepoint")

// Validate checks the fields every event on the wire carries. A missing
// event object decodes to the zero Event, which fails here.
func (e Event) Validate() error {
	switch e.Type {
	case EventTypeChanged, EventTypeDeleted:
	default:
		return fmt.Errorf("got invalid stream event type: %q", e.Type)
	}
	if e.Timepoint == 0 {
		return errMissingTimepoint
	}
	return nil
}

// Item represents a single record delivered on a stream.
type Item[T any] struct {
	Data         T      `json:"data"`
	Event        Event  `json:"event"`
	ResourceID   string `json:"resource_id"`
	ResourceKind string `json:"resource_kind,omitempty"`
	ResourceURI  string `json:"resource_uri,omitempty"`
}

// RawItem is an Item whose payload has not been bound to a type.
type RawItem = Item[json.RawMessage]
