package contract

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/heartmarshall/communities-gateway/internal/domain"
)

// IntBound declares the accepted range of an integer query parameter.
// Max == 0 means unbounded above.
type IntBound struct {
	Name    string
	Min     int
	Max     int
	Default int
}

// Check validates v and returns a field error located at loc, or nil.
func (b IntBound) Check(loc []string, v int) *domain.FieldError {
	if v < b.Min {
		return &domain.FieldError{
			Location: loc,
			Message:  fmt.Sprintf("Input should be greater than or equal to %d", b.Min),
			Type:     "greater_than_equal",
		}
	}
	if b.Max != 0 && v > b.Max {
		return &domain.FieldError{
			Location: loc,
			Message:  fmt.Sprintf("Input should be less than or equal to %d", b.Max),
			Type:     "less_than_equal",
		}
	}
	return nil
}

// Resolve returns *v, or the declared default when v is nil.
func (b IntBound) Resolve(v *int) int {
	if v == nil {
		return b.Default
	}
	return *v
}

// Length declares the accepted length of a string field, counted in runes.
// Max == 0 means unbounded above.
type Length struct {
	Min int
	Max int
}

// Check validates s and returns a field error located at loc, or nil.
func (l Length) Check(loc []string, s string) *domain.FieldError {
	n := utf8.RuneCountInString(s)
	if n < l.Min {
		return &domain.FieldError{
			Location: loc,
			Message:  fmt.Sprintf("String should have at least %d %s", l.Min, plural(l.Min, "character")),
			Type:     "string_too_short",
		}
	}
	if l.Max != 0 && n > l.Max {
		return &domain.FieldError{
			Location: loc,
			Message:  fmt.Sprintf("String should have at most %d %s", l.Max, plural(l.Max, "character")),
			Type:     "string_too_long",
		}
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// Declared bounds shared by the client and the reference service.
var (
	OffsetBound      = IntBound{Name: "offset", Min: 0, Default: 0}
	PageLimitBound   = IntBound{Name: "limit", Min: 1, Max: 100, Default: 20}
	LatestLimitBound = IntBound{Name: "limit", Min: 1, Max: 50, Default: 10}

	CommunityNameLength       = Length{Min: 1}
	CategoryNameLength        = Length{Min: 1, Max: 100}
	CategoryDescriptionLength = Length{Max: 500}
	TopicTitleLength          = Length{Min: 3, Max: 200}
)

// FormatUUID marks a path parameter that must parse as a UUID.
const FormatUUID = "uuid"

func checkPathValue(p PathParam, value string) *domain.FieldError {
	loc := []string{"path", p.Name}
	if value == "" {
		return &domain.FieldError{Location: loc, Message: "Field required", Type: "missing"}
	}
	if p.Format == FormatUUID {
		if _, err := uuid.Parse(value); err != nil {
			return &domain.FieldError{Location: loc, Message: "Input should be a valid UUID", Type: "uuid_parsing"}
		}
	}
	return nil
}

func appendIf(errs []domain.FieldError, fe *domain.FieldError) []domain.FieldError {
	if fe != nil {
		errs = append(errs, *fe)
	}
	return errs
}
