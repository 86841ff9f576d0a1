package client

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/EmilyShepherd/companieshouse-go/pkg/token"
)

const (
	// DefaultStreamingURL is the base host of the Companies House
	// streaming API.
	DefaultStreamingURL = "https://stream.companieshouse.gov.uk"

	apiKeyEnv     = "COMPANIES_HOUSE_STREAMING_API_KEY"
	apiKeyFileEnv = "COMPANIES_HOUSE_STREAMING_API_KEY_FILE"
	baseURLEnv    = "COMPANIES_HOUSE_STREAMING_URL"
)

// Interface is the minimal transport the streaming client needs. It is
// shared with anything else that talks to the same API using the same
// key.
type Interface interface {
	// Do sends an authenticated HTTP request.
	Do(req *http.Request) (*http.Response, error)
	// BaseURL returns the API base URL, without a trailing slash.
	BaseURL() string
}

type Option func(c *Client)

// WithBaseURL overrides the API host, mostly useful for testing.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient replaces the underlying http.Client. It must not set a
// Timeout, as that would cap the lifetime of every stream.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.HttpClient = hc
	}
}

type Client struct {
	HttpClient *http.Client
	baseURL    string

	token token.TokenProvider
}

// NewFromEnv creates a Client with the key taken from the environment.
// COMPANIES_HOUSE_STREAMING_API_KEY_FILE takes priority over
// COMPANIES_HOUSE_STREAMING_API_KEY, and is watched for changes.
func NewFromEnv(opts ...Option) (*Client, error) {
	var (
		tp  token.TokenProvider
		err error
	)
	if filename := os.Getenv(apiKeyFileEnv); filename != "" {
		tp, err = token.NewFileToken(filename)
	} else if os.Getenv(apiKeyEnv) != "" {
		tp, err = token.NewEnvToken(apiKeyEnv)
	} else {
		return nil, errors.New("unable to load streaming api key, " + apiKeyEnv + " or " + apiKeyFileEnv + " must be defined")
	}
	if err != nil {
		return nil, err
	}

	if url := os.Getenv(baseURLEnv); url != "" {
		opts = append([]Option{WithBaseURL(url)}, opts...)
	}

	return NewClient(tp, opts...), nil
}

func NewClient(tp token.TokenProvider, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultStreamingURL,
		token:   tp,
		HttpClient: &http.Client{
			Transport: http.DefaultTransport,
			Timeout:   time.Nanosecond * 0,
		},
	}
	for _, o := range opts {
		o(c)
	}

	return c
}

// Do sends the request, authenticating with the api key as the basic
// auth username and an empty password.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if token := c.token.Token(); len(token) > 0 {
		req.SetBasicAuth(token, "")
	}
	return c.HttpClient.Do(req)
}

func (c *Client) BaseURL() string {
	return c.baseURL
}
