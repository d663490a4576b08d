package contract

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/heartmarshall/communities-gateway/internal/domain"
)

// PageQuery is the offset/limit query of paginated list endpoints.
// Nil fields are omitted from the request and take the server default.
type PageQuery struct {
	Offset *int
	Limit  *int
}

// Validate checks the declared bounds. Out-of-range values are rejected,
// never clamped.
func (q PageQuery) Validate() []domain.FieldError {
	var errs []domain.FieldError
	if q.Offset != nil {
		errs = appendIf(errs, OffsetBound.Check([]string{"query", "offset"}, *q.Offset))
	}
	if q.Limit != nil {
		errs = appendIf(errs, PageLimitBound.Check([]string{"query", "limit"}, *q.Limit))
	}
	return errs
}

// Values encodes the query, omitting absent keys.
func (q PageQuery) Values() url.Values {
	v := url.Values{}
	setInt(v, "offset", q.Offset)
	setInt(v, "limit", q.Limit)
	return v
}

// LatestQuery is the query of the latest-topics endpoint.
type LatestQuery struct {
	Limit *int
}

// Validate checks the declared bounds.
func (q LatestQuery) Validate() []domain.FieldError {
	if q.Limit == nil {
		return nil
	}
	return appendIf(nil, LatestLimitBound.Check([]string{"query", "limit"}, *q.Limit))
}

// Values encodes the query, omitting absent keys.
func (q LatestQuery) Values() url.Values {
	v := url.Values{}
	setInt(v, "limit", q.Limit)
	return v
}

func setInt(v url.Values, key string, n *int) {
	if n != nil {
		v.Set(key, strconv.Itoa(*n))
	}
}

// Int returns a pointer to n, for optional query fields.
func Int(n int) *int { return &n }

// CreateCommunityRequest is the body of create_community.
// CreatorID is ignored by the service, which uses the authenticated identity.
type CreateCommunityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatorID   string `json:"creator_id"`
}

// Validate checks all fields and collects all errors.
func (r CreateCommunityRequest) Validate() []domain.FieldError {
	return appendIf(nil, CommunityNameLength.Check([]string{"body", "name"}, strings.TrimSpace(r.Name)))
}

// ForumCategoryRequest is the body of create_forum_category and
// update_forum_category.
type ForumCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Validate checks all fields and collects all errors.
func (r ForumCategoryRequest) Validate() []domain.FieldError {
	errs := appendIf(nil, CategoryNameLength.Check([]string{"body", "name"}, r.Name))
	if r.Description != nil {
		errs = appendIf(errs, CategoryDescriptionLength.Check([]string{"body", "description"}, *r.Description))
	}
	return errs
}

// ForumTopicRequest is the body of create_forum_topic.
type ForumTopicRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate checks all fields and collects all errors.
func (r ForumTopicRequest) Validate() []domain.FieldError {
	return appendIf(nil, TopicTitleLength.Check([]string{"body", "title"}, r.Title))
}
