// Package token provides the credential the streaming API authenticates
// with. The Companies House API issues a single key per application which
// is sent as the username of an HTTP basic auth header.
package token

// TokenProvider is a generic interface for a service that provides the
// API key for the client to use
type TokenProvider interface {

	// Retrieves the current key at the time - this may return a fixed
	// or cached value, or it may re-read it from its source.
	Token() string
}
