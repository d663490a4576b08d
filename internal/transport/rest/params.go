package rest

import (
	"net/http"
	"strconv"

	"github.com/heartmarshall/communities-gateway/internal/contract"
	"github.com/heartmarshall/communities-gateway/internal/domain"
)

// queryInts reads the declared integer query parameters of desc, applying
// defaults and bounds. Values are keyed by parameter name.
func queryInts(r *http.Request, desc contract.Descriptor) (map[string]int, []domain.FieldError) {
	q := r.URL.Query()
	out := make(map[string]int, len(desc.Query))
	var errs []domain.FieldError

	for _, b := range desc.Query {
		loc := []string{"query", b.Name}
		raw := q.Get(b.Name)
		if raw == "" {
			out[b.Name] = b.Default
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, domain.FieldError{
				Location: loc,
				Message:  "Input should be a valid integer, unable to parse string as an integer",
				Type:     "int_parsing",
			})
			continue
		}
		if fe := b.Check(loc, v); fe != nil {
			errs = append(errs, *fe)
			continue
		}
		out[b.Name] = v
	}
	return out, errs
}

// pathValues collects the declared path parameters of desc and validates
// their formats.
func pathValues(r *http.Request, desc contract.Descriptor) (map[string]string, []domain.FieldError) {
	values := make(map[string]string, len(desc.PathParams))
	for _, p := range desc.PathParams {
		values[p.Name] = r.PathValue(p.Name)
	}
	return values, desc.CheckPath(values)
}
