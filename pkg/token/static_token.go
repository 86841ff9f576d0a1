package token

import (
	"errors"
	"os"
	"strings"
)

// ErrEmptyToken is returned when a provider is created without a key.
var ErrEmptyToken = errors.New("token: api key is empty")

// StaticToken is a TokenProvider wrapper for a fixed api key
type StaticToken struct {
	token string
}

func NewStaticToken(token string) (*StaticToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyToken
	}
	return &StaticToken{token: token}, nil
}

// NewEnvToken reads a fixed api key from the named environment variable.
func NewEnvToken(name string) (*StaticToken, error) {
	return NewStaticToken(os.Getenv(name))
}

func (t *StaticToken) Token() string {
	return t.token
}
