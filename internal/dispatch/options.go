package dispatch

import (
	"net/http"

	"github.com/heartmarshall/communities-gateway/internal/contract"
	"golang.org/x/time/rate"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) { d.client = c }
}

// WithRateLimit throttles outgoing requests to rps with the given burst.
// rps <= 0 disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(d *Dispatcher) {
		if rps <= 0 {
			d.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		d.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMetrics records request metrics.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// CallOption overrides the base configuration for a single request.
type CallOption func(*overrides)

type overrides struct {
	baseURL     string
	headers     http.Header
	token       *string
	contentType *contract.ContentType
}

// WithHeader sets a header for this call, replacing any default.
func WithHeader(key, value string) CallOption {
	return func(o *overrides) {
		if o.headers == nil {
			o.headers = http.Header{}
		}
		o.headers.Set(key, value)
	}
}

// WithToken replaces the bearer credential for this call.
// An empty token sends the request without credentials.
func WithToken(token string) CallOption {
	return func(o *overrides) { o.token = &token }
}

// WithBaseURL sends this call to another service root.
func WithBaseURL(baseURL string) CallOption {
	return func(o *overrides) { o.baseURL = baseURL }
}

// WithContentType overrides the declared body encoding for this call.
func WithContentType(ct contract.ContentType) CallOption {
	return func(o *overrides) { o.contentType = &ct }
}
