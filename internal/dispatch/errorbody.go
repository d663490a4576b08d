package dispatch

import (
	"errors"

	"github.com/heartmarshall/communities-gateway/internal/domain"
	"github.com/tidwall/gjson"
)

// ErrorBody is the parsed body of a non-2xx response. The service sends
// either {"detail": "message"} or {"detail": [{"loc","msg","type"}...]}.
type ErrorBody struct {
	Detail string
	Issues []domain.FieldError
}

var errMalformedErrorBody = errors.New("error body is not valid JSON")

func parseErrorBody(raw []byte) (ErrorBody, error) {
	if len(raw) == 0 {
		return ErrorBody{}, nil
	}
	if !gjson.ValidBytes(raw) {
		return ErrorBody{Detail: string(raw)}, errMalformedErrorBody
	}

	var body ErrorBody
	detail := gjson.GetBytes(raw, "detail")
	switch {
	case detail.IsArray():
		detail.ForEach(func(_, item gjson.Result) bool {
			fe := domain.FieldError{
				Message: item.Get("msg").String(),
				Type:    item.Get("type").String(),
			}
			item.Get("loc").ForEach(func(_, seg gjson.Result) bool {
				fe.Location = append(fe.Location, seg.String())
				return true
			})
			body.Issues = append(body.Issues, fe)
			return true
		})
	case detail.Exists():
		body.Detail = detail.String()
	default:
		for _, key := range []string{"error", "message"} {
			if v := gjson.GetBytes(raw, key); v.Exists() {
				body.Detail = v.String()
				break
			}
		}
	}
	return body, nil
}
