package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Request describes a GET against the API.
type Request struct {
	Path   string
	Values url.Values
}

func (r Request) URL(base string) string {
	u := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(r.Path, "/")

	if queryString := r.Values.Encode(); queryString != "" {
		u += "?" + queryString
	}

	return u
}

// NewRequest builds an unauthenticated GET for r against the client's
// base URL. Authentication is added by Do.
func NewRequest(ctx context.Context, c Interface, r Request) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL(c.BaseURL()), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}
