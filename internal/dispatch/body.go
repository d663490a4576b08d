package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/heartmarshall/communities-gateway/internal/contract"
)

// encodeBody turns body into a reader according to ct.
// A nil body always yields a nil reader.
func encodeBody(ct contract.ContentType, body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}

	switch ct {
	case contract.ContentJSON:
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode json body: %w", err)
		}
		return bytes.NewReader(raw), nil

	case contract.ContentForm:
		switch v := body.(type) {
		case url.Values:
			return strings.NewReader(v.Encode()), nil
		case map[string]string:
			form := url.Values{}
			for k, val := range v {
				form.Set(k, val)
			}
			return strings.NewReader(form.Encode()), nil
		default:
			return nil, fmt.Errorf("encode form body: unsupported type %T", body)
		}

	case contract.ContentBinary:
		switch v := body.(type) {
		case []byte:
			return bytes.NewReader(v), nil
		case io.Reader:
			return v, nil
		default:
			return nil, fmt.Errorf("encode binary body: unsupported type %T", body)
		}

	default:
		return nil, fmt.Errorf("encode body: endpoint declares no body but got %T", body)
	}
}
