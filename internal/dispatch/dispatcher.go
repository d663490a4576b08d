// Package dispatch performs single HTTP requests against the communities
// service from contract descriptors. It never retries and never turns a
// non-2xx status into an error: callers inspect the Response.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/communities-gateway/internal/contract"
	"github.com/heartmarshall/communities-gateway/internal/domain"
	"github.com/heartmarshall/communities-gateway/pkg/ctxutil"
	"golang.org/x/time/rate"
)

const (
	headerRequestID = "X-Request-Id"
	defaultTimeout  = 30 * time.Second
)

var errEmptyBody = errors.New("empty response body")

// Config is the base configuration applied to every request.
type Config struct {
	BaseURL      string
	RoutesPrefix string
	Headers      http.Header
	Token        string
	UserAgent    string
}

// Dispatcher sends requests described by contract descriptors.
type Dispatcher struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	metrics *Metrics
	log     *slog.Logger

	tokenMu sync.RWMutex
	token   string
}

// New creates a Dispatcher.
func New(cfg Config, logger *slog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:    cfg,
		client: &http.Client{Timeout: defaultTimeout},
		log:    logger.With("component", "dispatch"),
		token:  cfg.Token,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetToken rotates the bearer credential used by subsequent requests.
func (d *Dispatcher) SetToken(token string) {
	d.tokenMu.Lock()
	d.token = token
	d.tokenMu.Unlock()
}

// Token returns the current bearer credential.
func (d *Dispatcher) Token() string {
	d.tokenMu.RLock()
	defer d.tokenMu.RUnlock()
	return d.token
}

// Request carries the caller-supplied parts of one call.
type Request struct {
	PathParams map[string]string
	Query      url.Values
	Body       any
	Options    []CallOption
}

// Do sends one request for desc and returns the response handle.
// The error is non-nil only when no response was obtained or the request
// could not be built; any HTTP status, 2xx or not, yields a Response.
func Do[T any](ctx context.Context, d *Dispatcher, desc contract.Descriptor, req Request) (*Response[T], error) {
	var ov overrides
	for _, opt := range req.Options {
		opt(&ov)
	}

	target := d.buildURL(desc, req, ov)

	ct := desc.Body
	if ov.contentType != nil {
		ct = *ov.contentType
	}
	body, err := encodeBody(ct, req.Body)
	if err != nil {
		return nil, fmt.Errorf("dispatch %s: %w", desc.Name, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, desc.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("dispatch %s: build request: %w", desc.Name, err)
	}
	d.setHeaders(ctx, httpReq, desc, ct, body != nil, ov)

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return nil, &domain.NetworkError{Op: desc.Name, Err: err}
		}
	}

	d.metrics.begin()
	start := time.Now()
	resp, err := d.client.Do(httpReq)
	if err != nil {
		d.metrics.observe(desc.Name, 0, time.Since(start))
		d.log.ErrorContext(ctx, "request failed",
			slog.String("endpoint", desc.Name),
			slog.String("method", desc.Method),
			slog.String("error", err.Error()),
		)
		return nil, &domain.NetworkError{Op: desc.Name, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	d.metrics.observe(desc.Name, resp.StatusCode, elapsed)
	if err != nil {
		return nil, &domain.NetworkError{Op: desc.Name, Err: fmt.Errorf("read body: %w", err)}
	}

	d.log.DebugContext(ctx, "request",
		slog.String("endpoint", desc.Name),
		slog.String("method", desc.Method),
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", elapsed),
		slog.String("request_id", httpReq.Header.Get(headerRequestID)),
	)

	return newResponse[T](desc.Name, resp.StatusCode, resp.Header, raw), nil
}

func (d *Dispatcher) buildURL(desc contract.Descriptor, req Request, ov overrides) string {
	base := d.cfg.BaseURL
	if ov.baseURL != "" {
		base = ov.baseURL
	}
	base = strings.TrimRight(base, "/")

	var b strings.Builder
	b.WriteString(base)
	if !desc.Root {
		b.WriteString(strings.TrimRight(d.cfg.RoutesPrefix, "/"))
	}
	b.WriteString(ExpandPath(desc.Path, req.PathParams))

	query := url.Values{}
	for k, vs := range req.Query {
		if len(vs) == 0 {
			continue
		}
		query[k] = vs
	}
	if len(query) > 0 {
		b.WriteByte('?')
		b.WriteString(query.Encode())
	}
	return b.String()
}

func (d *Dispatcher) setHeaders(ctx context.Context, r *http.Request, desc contract.Descriptor, ct contract.ContentType, hasBody bool, ov overrides) {
	for k, vs := range d.cfg.Headers {
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	if hasBody && ct.MIME() != "" {
		r.Header.Set("Content-Type", ct.MIME())
	}
	r.Header.Set("Accept", "application/json")
	if d.cfg.UserAgent != "" {
		r.Header.Set("User-Agent", d.cfg.UserAgent)
	}

	token := d.Token()
	if ov.token != nil {
		token = *ov.token
	}
	if desc.Auth != contract.AuthNone && token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	requestID := ctxutil.RequestIDFromCtx(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	r.Header.Set(headerRequestID, requestID)

	for k, vs := range ov.headers {
		r.Header[k] = vs
	}
}
