// Package httpclient builds the shared HTTP client handed to every inspector call.
package httpclient

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// DefaultUserAgent is sent when Options.UserAgent is empty. Some platforms
// serve reduced pages to unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"

// Options configures New.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

// Client is a stateless HTTP client shared by all monitors. It is safe for
// concurrent use and cheap to pass around by pointer.
type Client struct {
	http      *http.Client
	userAgent string
}

// New returns a Client whose transport negotiates HTTP/2 over TLS.
func New(opts Options) (*Client, error) {
	t := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if err := http2.ConfigureTransport(t); err != nil {
		return nil, fmt.Errorf("configure http2 transport: %w", err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Client{
		http:      &http.Client{Transport: t, Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
	}, nil
}

// Wrap adapts an existing *http.Client, e.g. httptest.Server.Client().
func Wrap(c *http.Client) *Client {
	return &Client{http: c, userAgent: DefaultUserAgent}
}

// Do sends req with the configured user agent unless the request already set one.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.http.Do(req)
}
