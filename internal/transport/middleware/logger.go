package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/communities-gateway/pkg/ctxutil"
)

// healthPath is logged at debug so liveness probes do not flood the log.
const healthPath = "/_healthz"

// Logger logs one line per request once the response is written.
// 5xx responses log at error, 4xx at warn.
func Logger(logger *slog.Logger) Middleware {
	logger = logger.With("component", "http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &recorder{ResponseWriter: w}
			caller := &callerInfo{}

			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), callerKey{}, caller)))

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.statusCode()),
				slog.Int("bytes", rec.written),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if r.URL.RawQuery != "" {
				attrs = append(attrs, slog.String("query", r.URL.RawQuery))
			}
			if caller.userID != "" {
				attrs = append(attrs, slog.String("user_id", caller.userID))
			}

			logger.LogAttrs(r.Context(), levelFor(r.URL.Path, rec.statusCode()), "http request", attrs...)
		})
	}
}

func levelFor(path string, status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	case path == healthPath:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// callerInfo is filled by Auth, which runs further down the chain and so
// cannot hand the identity back through the request context.
type callerInfo struct {
	userID string
}

type callerKey struct{}

func noteCaller(ctx context.Context, userID string) {
	if c, ok := ctx.Value(callerKey{}).(*callerInfo); ok {
		c.userID = userID
	}
}

// recorder captures the status code and body size of a response.
type recorder struct {
	http.ResponseWriter
	status  int
	written int
}

func (r *recorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.written += n
	return n, err
}

func (r *recorder) statusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}
