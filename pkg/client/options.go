package client

import "net/http"

type clientConfig struct {
	apiKey string
	http   *http.Client
}

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

// WithAPIKey sets the Bearer token sent with every request.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) { c.apiKey = key })
}

// WithHTTPClient replaces the underlying HTTP client, e.g. to set a
// timeout or a custom transport.
func WithHTTPClient(h *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		if h != nil {
			c.http = h
		}
	})
}
