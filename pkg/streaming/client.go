// Package streaming connects to the Companies House streaming API.
//
// Open makes a single connection and maps the response to either a
// stream.Connection or a typed error. Follower wraps it in the reconnect
// loop most consumers want, resuming from the last timepoint seen.
package streaming

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/EmilyShepherd/companieshouse-go/pkg/client"
	"github.com/EmilyShepherd/companieshouse-go/pkg/stream"
	"github.com/EmilyShepherd/companieshouse-go/types"
)

// DefaultConnectionTimeout bounds how long Open waits for response
// headers.
const DefaultConnectionTimeout = 60 * time.Second

type Option func(c *Client)

func WithConnectionTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.connectionTimeout = d
	}
}

// WithChunkTimeout sets how long a connection may stay silent before Next
// gives up with stream.ErrChunkTimeout. Zero keeps the default and a
// negative value waits indefinitely.
func WithChunkTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.cfg.ChunkTimeout = d
	}
}

// WithMaxLineLength sets how many bytes may be buffered without a
// newline before a connection is abandoned. A negative value disables
// the limit.
func WithMaxLineLength(n int) Option {
	return func(c *Client) {
		c.cfg.MaxLineLength = n
	}
}

func WithUnmarshaler(f stream.UnmarshalFunc) Option {
	return func(c *Client) {
		c.cfg.Unmarshal = f
	}
}

func WithObserver(o stream.Observer) Option {
	return func(c *Client) {
		c.observer = o
		c.cfg.Observer = o
	}
}

type Client struct {
	kc                client.Interface
	connectionTimeout time.Duration
	cfg               stream.Config
	observer          stream.Observer
}

func NewClient(kc client.Interface, opts ...Option) *Client {
	c := &Client{
		kc:                kc,
		connectionTimeout: DefaultConnectionTimeout,
		cfg: stream.Config{
			ChunkTimeout: stream.DefaultChunkTimeout,
		},
		observer: stream.NopObserver{},
	}
	for _, o := range opts {
		o(c)
	}
	if c.observer == nil {
		c.observer = stream.NopObserver{}
	}

	return c
}

// Companies opens the company profile stream.
func (c *Client) Companies(ctx context.Context, timepoint *types.Timepoint) (*stream.Connection[types.CompanyProfile], error) {
	return Open(ctx, c, Companies, timepoint)
}

// Filings opens the filing history stream.
func (c *Client) Filings(ctx context.Context, timepoint *types.Timepoint) (*stream.Connection[types.FilingHistory], error) {
	return Open(ctx, c, Filings, timepoint)
}

// cancelOnClose ties the request context to the lifetime of the body.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

// Open connects to the stream for op. If timepoint is given the stream
// starts from that timepoint, inclusive; pass the last timepoint seen
// plus one to carry on after it.
//
// Only the response headers are waited for. The body is left for the
// returned Connection to read. Cancelling ctx aborts the connection.
func Open[T any](ctx context.Context, c *Client, op Operation[T], timepoint *types.Timepoint) (*stream.Connection[T], error) {
	c.observer.Connecting(op.Path, timepoint)

	conn, err := open[T](ctx, c, op, timepoint)
	if err != nil {
		c.observer.Error(err)
	}
	return conn, err
}

func open[T any](ctx context.Context, c *Client, op Operation[T], timepoint *types.Timepoint) (*stream.Connection[T], error) {
	r := client.Request{Path: op.Path}
	if timepoint != nil {
		r.Values = url.Values{}
		r.Values.Set("timepoint", strconv.FormatUint(uint64(*timepoint), 10))
	}

	ctx, cancel := context.WithCancel(ctx)

	req, err := client.NewRequest(ctx, c.kc, r)
	if err != nil {
		cancel()
		return nil, &UnknownConnectionError{Err: err}
	}

	var timer *time.Timer
	if c.connectionTimeout > 0 {
		timer = time.AfterFunc(c.connectionTimeout, cancel)
	}

	resp, err := c.kc.Do(req)

	// If the timer has already fired the request context is gone, even if
	// the headers made it back in time.
	if timer != nil && !timer.Stop() {
		if err == nil {
			resp.Body.Close()
		}
		cancel()
		return nil, ErrConnectionTimeout
	}
	if err != nil {
		cancel()
		return nil, &UnknownConnectionError{Err: err}
	}

	c.observer.Connected(op.Path, resp.StatusCode)

	if resp.StatusCode == http.StatusOK {
		return stream.NewConnection[T](&cancelOnClose{ReadCloser: resp.Body, cancel: cancel}, c.cfg), nil
	}

	defer cancel()
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusRequestedRangeNotSatisfiable:
		return nil, ErrBadTimepoint
	case http.StatusTooManyRequests:
		return nil, ErrTooManyRequests
	default:
		errmsg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &UnknownResponseError{StatusCode: resp.StatusCode, Body: string(errmsg)}
	}
}
