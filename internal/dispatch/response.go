package dispatch

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/heartmarshall/communities-gateway/internal/domain"
)

// NoContent is the success shape of endpoints that return an empty body.
type NoContent struct{}

// decodeJSON is swapped in tests to count decodes.
var decodeJSON = json.Unmarshal

// Response is the handle of one completed HTTP exchange. The body is read
// eagerly; parsing is lazy and happens at most once per accessor.
type Response[T any] struct {
	op     string
	status int
	header http.Header
	raw    []byte

	dataOnce sync.Once
	data     T
	dataErr  error

	errOnce    sync.Once
	errBody    ErrorBody
	errBodyErr error
}

func newResponse[T any](op string, status int, header http.Header, raw []byte) *Response[T] {
	return &Response[T]{op: op, status: status, header: header, raw: raw}
}

// StatusCode returns the HTTP status.
func (r *Response[T]) StatusCode() int { return r.status }

// OK reports a 2xx status.
func (r *Response[T]) OK() bool { return r.status >= 200 && r.status < 300 }

// Header returns the response headers.
func (r *Response[T]) Header() http.Header { return r.header }

// Raw returns the unparsed body.
func (r *Response[T]) Raw() []byte { return r.raw }

// Data returns the parsed success body. For a non-2xx status it returns the
// zero value and the error from Err.
func (r *Response[T]) Data() (T, error) {
	if !r.OK() {
		var zero T
		return zero, r.Err()
	}
	r.dataOnce.Do(func() {
		if len(r.raw) == 0 {
			if _, empty := any(r.data).(NoContent); empty {
				return
			}
			r.dataErr = &domain.ParseError{Op: r.op, Status: r.status, Err: errEmptyBody}
			return
		}
		if err := decodeJSON(r.raw, &r.data); err != nil {
			r.dataErr = &domain.ParseError{Op: r.op, Status: r.status, Err: err}
		}
	})
	return r.data, r.dataErr
}

// ErrorBody returns the parsed error body. A 2xx response yields an empty
// ErrorBody.
func (r *Response[T]) ErrorBody() (ErrorBody, error) {
	if r.OK() {
		return ErrorBody{}, nil
	}
	r.errOnce.Do(func() {
		r.errBody, r.errBodyErr = parseErrorBody(r.raw)
		if r.errBodyErr != nil {
			r.errBodyErr = &domain.ParseError{Op: r.op, Status: r.status, Err: r.errBodyErr}
		}
	})
	return r.errBody, r.errBodyErr
}

// Err classifies a non-2xx response as *domain.APIError; nil for 2xx.
// A malformed error body still yields an APIError carrying the raw text.
func (r *Response[T]) Err() error {
	if r.OK() {
		return nil
	}
	body, _ := r.ErrorBody()
	return &domain.APIError{Status: r.status, Message: body.Detail, Fields: body.Issues}
}
