package dispatch

import (
	"fmt"
	"net/url"
	"strings"
)

// ExpandPath substitutes {name} placeholders with escaped values.
// A placeholder without a value is a programming error and panics.
func ExpandPath(template string, params map[string]string) string {
	var b strings.Builder
	b.Grow(len(template))

	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			panic(fmt.Sprintf("dispatch: unterminated placeholder in %q", template))
		}
		name := rest[open+1 : open+end]
		value, ok := params[name]
		if !ok {
			panic(fmt.Sprintf("dispatch: missing path parameter %q for %q", name, template))
		}
		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(value))
		rest = rest[open+end+1:]
	}
}
