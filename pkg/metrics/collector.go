// Package metrics exposes stream activity as Prometheus metrics.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/EmilyShepherd/companieshouse-go/pkg/stream"
	"github.com/EmilyShepherd/companieshouse-go/pkg/streaming"
	"github.com/EmilyShepherd/companieshouse-go/types"
)

const namespace = "companieshouse_stream"

// Collector is a stream.Observer which records what it sees in Prometheus
// metrics. Use one Collector per feed; the feed name is attached to every
// series as a constant label.
type Collector struct {
	connects   *prometheus.CounterVec
	reconnects prometheus.Counter
	chunks     prometheus.Counter
	bytes      prometheus.Counter
	heartbeats prometheus.Counter
	records    prometheus.Counter
	errors     *prometheus.CounterVec
	timepoint  prometheus.Gauge
	backoff    prometheus.Histogram
}

var _ stream.Observer = (*Collector)(nil)

func NewCollector(feed string) *Collector {
	labels := prometheus.Labels{"feed": feed}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}

	return &Collector{
		connects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "connections_total",
			Help:        "Connection attempts by response status.",
			ConstLabels: labels,
		}, []string{"status"}),
		reconnects: counter("reconnects_total", "Reconnections scheduled after a failure."),
		chunks:     counter("chunks_total", "Response body chunks received, excluding heartbeats."),
		bytes:      counter("bytes_total", "Response body bytes received, excluding heartbeats."),
		heartbeats: counter("heartbeats_total", "Heartbeats received."),
		records:    counter("records_total", "Items decoded successfully."),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "errors_total",
			Help:        "Errors by kind.",
			ConstLabels: labels,
		}, []string{"kind"}),
		timepoint: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "last_timepoint",
			Help:        "Timepoint of the last item decoded.",
			ConstLabels: labels,
		}),
		backoff: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "reconnect_delay_seconds",
			Help:        "Delay before each reconnection.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.5, 2, 12),
		}),
	}
}

// Register adds every metric to reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, m := range []prometheus.Collector{
		c.connects, c.reconnects, c.chunks, c.bytes, c.heartbeats,
		c.records, c.errors, c.timepoint, c.backoff,
	} {
		if err := reg.Register(m); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) Connecting(string, *types.Timepoint) {}

func (c *Collector) Connected(_ string, status int) {
	c.connects.WithLabelValues(statusLabel(status)).Inc()
}

func (c *Collector) Heartbeat() {
	c.heartbeats.Inc()
}

func (c *Collector) Chunk(size int) {
	c.chunks.Inc()
	c.bytes.Add(float64(size))
}

func (c *Collector) Record(timepoint types.Timepoint) {
	c.records.Inc()
	c.timepoint.Set(float64(timepoint))
}

func (c *Collector) Error(err error) {
	c.errors.WithLabelValues(ErrorKind(err)).Inc()
}

func (c *Collector) Reconnect(_ error, delay time.Duration) {
	c.reconnects.Inc()
	c.backoff.Observe(delay.Seconds())
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		// 4xx responses each mean something different to the client.
		return strconv.Itoa(status)
	case status >= 200 && status < 300:
		return "2xx"
	default:
		return "other"
	}
}

// ErrorKind names the kind of a stream or connection error, for use as a
// metric label.
func ErrorKind(err error) string {
	var (
		badChunk    *stream.BadChunkError
		badEncoding *stream.BadItemEncodingError
		badJSON     *stream.BadItemJSONError
		badData     *stream.BadItemDataError
		unknownResp *streaming.UnknownResponseError
		unknownConn *streaming.UnknownConnectionError
	)
	switch {
	case errors.Is(err, stream.ErrChunkTimeout):
		return "chunk_timeout"
	case errors.Is(err, stream.ErrStreamComplete):
		return "stream_complete"
	case errors.Is(err, stream.ErrLineTooLong):
		return "line_too_long"
	case errors.As(err, &badChunk):
		return "bad_chunk"
	case errors.As(err, &badEncoding):
		return "bad_item_encoding"
	case errors.As(err, &badJSON):
		return "bad_item_json"
	case errors.As(err, &badData):
		return "bad_item_data"
	case errors.Is(err, streaming.ErrConnectionTimeout):
		return "connection_timeout"
	case errors.Is(err, streaming.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, streaming.ErrTooManyRequests):
		return "too_many_requests"
	case errors.Is(err, streaming.ErrBadTimepoint):
		return "bad_timepoint"
	case errors.As(err, &unknownResp):
		return "unknown_response"
	case errors.As(err, &unknownConn):
		return "unknown_connection"
	default:
		return "other"
	}
}
