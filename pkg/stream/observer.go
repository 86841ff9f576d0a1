package stream

import (
	"errors"
	"time"

	"github.com/go-logr/logr"

	"github.com/EmilyShepherd/companieshouse-go/types"
)

// Observer receives notifications about what a stream is doing. It is the
// only side channel out of the package; nothing is logged unless an
// Observer is supplied.
//
// Implementations must be safe for concurrent use if they are shared
// between connections.
type Observer interface {
	Connecting(path string, timepoint *types.Timepoint)
	Connected(path string, status int)
	Heartbeat()
	Chunk(size int)
	Record(timepoint types.Timepoint)
	Error(err error)
	Reconnect(err error, delay time.Duration)
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) Connecting(string, *types.Timepoint) {}
func (NopObserver) Connected(string, int)               {}
func (NopObserver) Heartbeat()                          {}
func (NopObserver) Chunk(int)                           {}
func (NopObserver) Record(types.Timepoint)              {}
func (NopObserver) Error(error)                         {}
func (NopObserver) Reconnect(error, time.Duration)      {}

// MultiObserver sends every notification to each of its members in turn.
type MultiObserver []Observer

func (m MultiObserver) Connecting(path string, timepoint *types.Timepoint) {
	for _, o := range m {
		o.Connecting(path, timepoint)
	}
}

func (m MultiObserver) Connected(path string, status int) {
	for _, o := range m {
		o.Connected(path, status)
	}
}

func (m MultiObserver) Heartbeat() {
	for _, o := range m {
		o.Heartbeat()
	}
}

func (m MultiObserver) Chunk(size int) {
	for _, o := range m {
		o.Chunk(size)
	}
}

func (m MultiObserver) Record(timepoint types.Timepoint) {
	for _, o := range m {
		o.Record(timepoint)
	}
}

func (m MultiObserver) Error(err error) {
	for _, o := range m {
		o.Error(err)
	}
}

func (m MultiObserver) Reconnect(err error, delay time.Duration) {
	for _, o := range m {
		o.Reconnect(err, delay)
	}
}

// LogObserver writes notifications to a logr.Logger. Per chunk and per
// record traces are logged at V(1).
type LogObserver struct {
	log logr.Logger
}

func NewLogObserver(log logr.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (l *LogObserver) Connecting(path string, timepoint *types.Timepoint) {
	if timepoint == nil {
		l.log.Info("Connecting to stream without timepoint", "path", path)
		return
	}
	l.log.Info("Connecting to stream", "path", path, "timepoint", uint64(*timepoint))
}

func (l *LogObserver) Connected(path string, status int) {
	l.log.Info("Connection established", "path", path, "status", status)
}

func (l *LogObserver) Heartbeat() {
	l.log.Info("Heartbeat chunk received")
}

func (l *LogObserver) Chunk(size int) {
	l.log.V(1).Info("Stream chunk received", "bytes", size)
}

func (l *LogObserver) Record(timepoint types.Timepoint) {
	l.log.V(1).Info("Stream item received", "timepoint", uint64(timepoint))
}

func (l *LogObserver) Error(err error) {
	var dataErr *BadItemDataError
	switch {
	case errors.Is(err, ErrChunkTimeout):
		l.log.Info("Chunk timeout exceeded")
	case errors.Is(err, ErrStreamComplete):
		l.log.Info("Stream closed by server")
	case errors.As(err, &dataErr):
		l.log.Error(err, "Skipping item with unexpected data", "timepoint", uint64(dataErr.Value.Event.Timepoint), "resource_id", dataErr.Value.ResourceID)
	default:
		l.log.Error(err, "Stream error")
	}
}

func (l *LogObserver) Reconnect(err error, delay time.Duration) {
	l.log.Info("Reconnecting to stream", "reason", err.Error(), "delay", delay)
}
