package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmilyShepherd/companieshouse-go/pkg/client"
	"github.com/EmilyShepherd/companieshouse-go/pkg/stream"
	"github.com/EmilyShepherd/companieshouse-go/pkg/streaming"
	"github.com/EmilyShepherd/companieshouse-go/pkg/token"
	"github.com/EmilyShepherd/companieshouse-go/types"
)

func TestCollector_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("companies")

	require.NoError(t, c.Register(reg))
	assert.Error(t, c.Register(reg))
}

func TestCollector_Counts(t *testing.T) {
	c := NewCollector("filings")

	c.Connected("/filings", http.StatusOK)
	c.Connected("/filings", http.StatusTooManyRequests)
	c.Heartbeat()
	c.Heartbeat()
	c.Chunk(100)
	c.Chunk(28)
	c.Record(41)
	c.Record(42)
	c.Error(stream.ErrChunkTimeout)
	c.Error(&stream.BadItemDataError{Err: errors.New("x")})
	c.Reconnect(stream.ErrChunkTimeout, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.connects.WithLabelValues("2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.connects.WithLabelValues("429")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.heartbeats))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.chunks))
	assert.Equal(t, 128.0, testutil.ToFloat64(c.bytes))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.records))
	assert.Equal(t, 42.0, testutil.ToFloat64(c.timepoint))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.errors.WithLabelValues("chunk_timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.errors.WithLabelValues("bad_item_data")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.reconnects))
}

func TestErrorKind(t *testing.T) {
	tests := map[string]error{
		"chunk_timeout":      stream.ErrChunkTimeout,
		"stream_complete":    stream.ErrStreamComplete,
		"line_too_long":      stream.ErrLineTooLong,
		"bad_chunk":          &stream.BadChunkError{Err: errors.New("reset")},
		"bad_item_encoding":  &stream.BadItemEncodingError{},
		"bad_item_json":      &stream.BadItemJSONError{Err: errors.New("syntax")},
		"bad_item_data":      &stream.BadItemDataError{Err: errors.New("type")},
		"connection_timeout": streaming.ErrConnectionTimeout,
		"unauthorized":       streaming.ErrUnauthorized,
		"too_many_requests":  streaming.ErrTooManyRequests,
		"bad_timepoint":      streaming.ErrBadTimepoint,
		"unknown_response":   &streaming.UnknownResponseError{StatusCode: 502},
		"unknown_connection": &streaming.UnknownConnectionError{Err: errors.New("dial")},
		"other":              errors.New("something else"),
	}

	for kind, err := range tests {
		assert.Equal(t, kind, ErrorKind(err), err.Error())
	}
}

func TestCollector_ObservesStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"data":{"transaction_id":"MzA","category":"accounts","date":"2024-01-01","description":"accounts","type":"AA"},"event":{"published_at":"2024-05-01","timepoint":77,"type":"changed"},"resource_id":"MzA"}` + "\n"))
	}))
	defer srv.Close()

	tp, err := token.NewStaticToken("key")
	require.NoError(t, err)

	collector := NewCollector("filings")
	c := streaming.NewClient(
		client.NewClient(tp, client.WithBaseURL(srv.URL)),
		streaming.WithObserver(collector),
	)

	conn, err := c.Filings(context.Background(), nil)
	require.NoError(t, err)
	defer conn.Close()

	item, err := conn.Next()
	require.NoError(t, err)
	assert.Equal(t, types.Timepoint(77), item.Event.Timepoint)
	assert.Equal(t, "AA", item.Data.Type)

	_, err = conn.Next()
	assert.ErrorIs(t, err, stream.ErrStreamComplete)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.connects.WithLabelValues("2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.records))
	assert.Equal(t, 77.0, testutil.ToFloat64(collector.timepoint))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.errors.WithLabelValues("stream_complete")))
}
