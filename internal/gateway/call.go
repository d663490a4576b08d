package gateway

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/heartmarshall/communities-gateway/internal/contract"
	"github.com/heartmarshall/communities-gateway/internal/dispatch"
	"github.com/heartmarshall/communities-gateway/internal/domain"
)

// args gathers the inputs of one gateway call together with the validation
// results of the typed query and body.
type args struct {
	path      map[string]string
	query     url.Values
	queryErrs []domain.FieldError
	body      any
	bodyErrs  []domain.FieldError
	opts      []dispatch.CallOption
}

// call validates path, query and body in that order and dispatches only when
// all of them pass. Every invalid field is reported, not just the first.
func call[T any](ctx context.Context, g *Gateway, desc contract.Descriptor, a args) (*dispatch.Response[T], error) {
	var errs []domain.FieldError
	errs = append(errs, desc.CheckPath(a.path)...)
	errs = append(errs, a.queryErrs...)
	errs = append(errs, a.bodyErrs...)
	if len(errs) > 0 {
		g.log.DebugContext(ctx, "rejected before dispatch",
			slog.String("endpoint", desc.Name),
			slog.Int("errors", len(errs)),
		)
		return nil, domain.NewValidationErrors(errs)
	}

	return dispatch.Do[T](ctx, g.d, desc, dispatch.Request{
		PathParams: a.path,
		Query:      a.query,
		Body:       a.body,
		Options:    a.opts,
	})
}
