package restclient

import (
	"net"
	"net/http"
	"runtime"
	"time"
)

// Responder receives an HTTP request and returns its response.
type Responder func(*http.Request) (*http.Response, error)

// Middleware wraps a Responder with additional behaviour.
type Middleware func(next Responder) Responder

// Transport is an http.RoundTripper that runs every request through a middleware chain.
type Transport struct {
	base       http.RoundTripper
	middleware []Middleware
}

// NewTransport creates a Transport on top of base. A nil base uses a pooled transport.
func NewTransport(base http.RoundTripper, middleware ...Middleware) *Transport {
	if base == nil {
		base = DefaultPooledTransport()
	}
	return &Transport{base: base, middleware: middleware}
}

// Use appends middleware to the chain. The first registered middleware runs first.
func (t *Transport) Use(middleware ...Middleware) {
	t.middleware = append(t.middleware, middleware...)
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	h := Responder(t.base.RoundTrip)
	for i := len(t.middleware) - 1; i >= 0; i-- {
		h = t.middleware[i](h)
	}
	return h(req)
}

// DefaultPooledTransport returns a new http.Transport with similar default
// values to http.DefaultTransport but not shared with other clients.
// No response timeouts are set; callers bound requests through their context.
func DefaultPooledTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
		MaxIdleConnsPerHost:   runtime.GOMAXPROCS(0) + 1,
	}
}
