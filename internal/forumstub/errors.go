package forumstub

import (
	"github.com/heartmarshall/communities-gateway/internal/domain"
)

// Error is a refusal with the detail message shown to clients.
// Kind is one of the domain sentinels.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() error { return e.Kind }

func notFound(detail string) error {
	return &Error{Kind: domain.ErrNotFound, Detail: detail}
}

func forbidden(detail string) error {
	return &Error{Kind: domain.ErrForbidden, Detail: detail}
}

const (
	msgCommunityNotFound = "Community not found"
	msgCategoryNotFound  = "Forum category not found"
	msgNotAdmin          = "User does not have admin permissions for this community"
	msgCreatorJoin       = "Creator cannot join their own community as a member (already implicitly a member)."
	msgAlreadyMember     = "User is already a member of this community."
	msgNotTopicOwner     = "Only the topic creator or a community admin can delete this topic"
)
