// Package contract describes every remote capability of the communities
// service: method, path template, parameter and body shapes, and the declared
// validation constraints. Descriptors are immutable values.
package contract

import (
	"net/http"
	"regexp"

	"github.com/heartmarshall/communities-gateway/internal/domain"
)

// ContentType is the declared encoding of a request body.
type ContentType int

const (
	ContentNone ContentType = iota
	ContentJSON
	ContentForm
	ContentBinary
)

// MIME returns the Content-Type header value, or "" for ContentNone.
func (c ContentType) MIME() string {
	switch c {
	case ContentJSON:
		return "application/json"
	case ContentForm:
		return "application/x-www-form-urlencoded"
	case ContentBinary:
		return "application/octet-stream"
	default:
		return ""
	}
}

func (c ContentType) String() string {
	switch c {
	case ContentJSON:
		return "json"
	case ContentForm:
		return "form"
	case ContentBinary:
		return "binary"
	default:
		return "none"
	}
}

// AuthLevel is the credential an endpoint requires.
type AuthLevel int

const (
	AuthNone AuthLevel = iota
	AuthUser
	AuthAdmin
)

func (a AuthLevel) String() string {
	switch a {
	case AuthUser:
		return "user"
	case AuthAdmin:
		return "admin"
	default:
		return "none"
	}
}

// PathParam declares one placeholder of a path template.
type PathParam struct {
	Name   string
	Format string
}

// Descriptor is the static shape of one remote capability.
type Descriptor struct {
	Name       string
	Summary    string
	Method     string
	Path       string
	PathParams []PathParam
	Query      []IntBound
	Body       ContentType
	Auth       AuthLevel
	// Root endpoints are served at the service root, outside the routes prefix.
	Root    bool
	Success int
}

var placeholderRe = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Placeholders returns the placeholder names of the path template in order.
func (d Descriptor) Placeholders() []string {
	matches := placeholderRe.FindAllStringSubmatch(d.Path, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// CheckPath validates caller-supplied path values against the declared
// parameters. Missing keys are reported like empty values.
func (d Descriptor) CheckPath(values map[string]string) []domain.FieldError {
	var errs []domain.FieldError
	for _, p := range d.PathParams {
		errs = appendIf(errs, checkPathValue(p, values[p.Name]))
	}
	return errs
}

var (
	communityParam = PathParam{Name: "communityId"}
	categoryParam  = PathParam{Name: "categoryId"}

	topicCommunityParam = PathParam{Name: "communityId", Format: FormatUUID}
	topicCategoryParam  = PathParam{Name: "categoryId", Format: FormatUUID}
	topicParam          = PathParam{Name: "topicId", Format: FormatUUID}
)

// Registry entries, one per capability.
var (
	CheckHealth = Descriptor{
		Name:    "check_health",
		Summary: "Check health of the service",
		Method:  http.MethodGet,
		Path:    "/_healthz",
		Auth:    AuthNone,
		Root:    true,
		Success: http.StatusOK,
	}

	CreateCommunity = Descriptor{
		Name:    "create_community",
		Summary: "Create a new community",
		Method:  http.MethodPost,
		Path:    "/communities/",
		Body:    ContentJSON,
		Auth:    AuthUser,
		Success: http.StatusCreated,
	}

	ListMyCommunities = Descriptor{
		Name:    "list_my_communities",
		Summary: "List communities the caller created or joined",
		Method:  http.MethodGet,
		Path:    "/communities/me",
		Auth:    AuthUser,
		Success: http.StatusOK,
	}

	GetCommunity = Descriptor{
		Name:       "get_community_details",
		Summary:    "Get a community by id",
		Method:     http.MethodGet,
		Path:       "/communities/{communityId}",
		PathParams: []PathParam{communityParam},
		Auth:       AuthUser,
		Success:    http.StatusOK,
	}

	ListAllCommunities = Descriptor{
		Name:    "list_all_communities",
		Summary: "List all non-deleted communities",
		Method:  http.MethodGet,
		Path:    "/communities",
		Query:   []IntBound{OffsetBound, PageLimitBound},
		Auth:    AuthUser,
		Success: http.StatusOK,
	}

	JoinCommunity = Descriptor{
		Name:       "join_community",
		Summary:    "Join a community",
		Method:     http.MethodPost,
		Path:       "/communities/{communityId}/join",
		PathParams: []PathParam{communityParam},
		Auth:       AuthUser,
		Success:    http.StatusOK,
	}

	GetMembershipStatus = Descriptor{
		Name:       "get_community_membership_status",
		Summary:    "Check whether the caller is a member or creator",
		Method:     http.MethodGet,
		Path:       "/communities/{communityId}/membership_status",
		PathParams: []PathParam{communityParam},
		Auth:       AuthUser,
		Success:    http.StatusOK,
	}

	CreateForumCategory = Descriptor{
		Name:       "create_forum_category",
		Summary:    "Create a forum category",
		Method:     http.MethodPost,
		Path:       "/communities/{communityId}/forum-categories",
		PathParams: []PathParam{communityParam},
		Body:       ContentJSON,
		Auth:       AuthAdmin,
		Success:    http.StatusCreated,
	}

	ListForumCategories = Descriptor{
		Name:       "list_forum_categories",
		Summary:    "List non-deleted forum categories",
		Method:     http.MethodGet,
		Path:       "/communities/{communityId}/forum-categories",
		PathParams: []PathParam{communityParam},
		Auth:       AuthUser,
		Success:    http.StatusOK,
	}

	UpdateForumCategory = Descriptor{
		Name:       "update_forum_category",
		Summary:    "Update a forum category",
		Method:     http.MethodPut,
		Path:       "/communities/{communityId}/forum-categories/{categoryId}",
		PathParams: []PathParam{communityParam, categoryParam},
		Body:       ContentJSON,
		Auth:       AuthAdmin,
		Success:    http.StatusOK,
	}

	DeleteForumCategory = Descriptor{
		Name:       "delete_forum_category",
		Summary:    "Soft delete a forum category",
		Method:     http.MethodDelete,
		Path:       "/communities/{communityId}/forum-categories/{categoryId}",
		PathParams: []PathParam{communityParam, categoryParam},
		Auth:       AuthAdmin,
		Success:    http.StatusNoContent,
	}

	CreateForumTopic = Descriptor{
		Name:       "create_forum_topic",
		Summary:    "Create a forum topic in a category",
		Method:     http.MethodPost,
		Path:       "/communities/{communityId}/categories/{categoryId}/topics",
		PathParams: []PathParam{topicCommunityParam, topicCategoryParam},
		Body:       ContentJSON,
		Auth:       AuthUser,
		Success:    http.StatusCreated,
	}

	ListForumTopicsInCategory = Descriptor{
		Name:       "list_forum_topics_in_category",
		Summary:    "List non-deleted topics of a category",
		Method:     http.MethodGet,
		Path:       "/communities/{communityId}/categories/{categoryId}/topics",
		PathParams: []PathParam{topicCommunityParam, topicCategoryParam},
		Query:      []IntBound{OffsetBound, PageLimitBound},
		Auth:       AuthUser,
		Success:    http.StatusOK,
	}

	ListLatestForumTopics = Descriptor{
		Name:       "list_latest_forum_topics_in_community",
		Summary:    "List the most recent topics across a community",
		Method:     http.MethodGet,
		Path:       "/communities/{communityId}/topics/latest",
		PathParams: []PathParam{topicCommunityParam},
		Query:      []IntBound{LatestLimitBound},
		Auth:       AuthUser,
		Success:    http.StatusOK,
	}

	GetForumTopic = Descriptor{
		Name:       "get_forum_topic_details",
		Summary:    "Get a forum topic",
		Method:     http.MethodGet,
		Path:       "/communities/{communityId}/topics/{topicId}",
		PathParams: []PathParam{topicCommunityParam, topicParam},
		Auth:       AuthUser,
		Success:    http.StatusOK,
	}

	DeleteForumTopic = Descriptor{
		Name:       "delete_forum_topic",
		Summary:    "Soft delete a forum topic",
		Method:     http.MethodDelete,
		Path:       "/communities/{communityId}/topics/{topicId}",
		PathParams: []PathParam{topicCommunityParam, topicParam},
		Auth:       AuthUser,
		Success:    http.StatusNoContent,
	}
)

var registry = []Descriptor{
	CheckHealth,
	CreateCommunity,
	ListMyCommunities,
	GetCommunity,
	ListAllCommunities,
	JoinCommunity,
	GetMembershipStatus,
	CreateForumCategory,
	ListForumCategories,
	UpdateForumCategory,
	DeleteForumCategory,
	CreateForumTopic,
	ListForumTopicsInCategory,
	ListLatestForumTopics,
	GetForumTopic,
	DeleteForumTopic,
}

// All returns every registered descriptor in declaration order.
func All() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a descriptor by name.
func Lookup(name string) (Descriptor, bool) {
	for _, d := range registry {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}
