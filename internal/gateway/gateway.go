// Package gateway exposes one typed method per remote capability of the
// communities service. Each method validates its inputs against the declared
// contract, then dispatches exactly one request. Responses are passed through
// untranslated.
package gateway

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/communities-gateway/internal/contract"
	"github.com/heartmarshall/communities-gateway/internal/dispatch"
	"github.com/heartmarshall/communities-gateway/internal/domain"
)

// Gateway is the typed client of the communities service.
type Gateway struct {
	d   *dispatch.Dispatcher
	log *slog.Logger
}

// New creates a Gateway over d.
func New(d *dispatch.Dispatcher, logger *slog.Logger) *Gateway {
	return &Gateway{
		d:   d,
		log: logger.With("component", "gateway"),
	}
}

// Dispatcher returns the underlying dispatcher, e.g. to rotate the token.
func (g *Gateway) Dispatcher() *dispatch.Dispatcher { return g.d }

// CheckHealth probes the service root.
func (g *Gateway) CheckHealth(ctx context.Context, opts ...dispatch.CallOption) (*dispatch.Response[domain.Health], error) {
	return call[domain.Health](ctx, g, contract.CheckHealth, args{opts: opts})
}

// CreateCommunity creates a community owned by the caller. The creator is
// not added to the member list.
func (g *Gateway) CreateCommunity(ctx context.Context, in contract.CreateCommunityRequest, opts ...dispatch.CallOption) (*dispatch.Response[domain.Community], error) {
	return call[domain.Community](ctx, g, contract.CreateCommunity, args{
		body:     in,
		bodyErrs: in.Validate(),
		opts:     opts,
	})
}

// ListMyCommunities lists communities the caller created or joined.
func (g *Gateway) ListMyCommunities(ctx context.Context, opts ...dispatch.CallOption) (*dispatch.Response[[]domain.Community], error) {
	return call[[]domain.Community](ctx, g, contract.ListMyCommunities, args{opts: opts})
}

// GetCommunity fetches one community.
func (g *Gateway) GetCommunity(ctx context.Context, communityID string, opts ...dispatch.CallOption) (*dispatch.Response[domain.Community], error) {
	return call[domain.Community](ctx, g, contract.GetCommunity, args{
		path: map[string]string{"communityId": communityID},
		opts: opts,
	})
}

// ListAllCommunities lists one page of the community catalog.
func (g *Gateway) ListAllCommunities(ctx context.Context, q contract.PageQuery, opts ...dispatch.CallOption) (*dispatch.Response[domain.CommunityPage], error) {
	return call[domain.CommunityPage](ctx, g, contract.ListAllCommunities, args{
		query:     q.Values(),
		queryErrs: q.Validate(),
		opts:      opts,
	})
}

// JoinCommunity adds the caller to the community's members. The service
// refuses the creator and existing members.
func (g *Gateway) JoinCommunity(ctx context.Context, communityID string, opts ...dispatch.CallOption) (*dispatch.Response[domain.JoinConfirmation], error) {
	return call[domain.JoinConfirmation](ctx, g, contract.JoinCommunity, args{
		path: map[string]string{"communityId": communityID},
		opts: opts,
	})
}

// GetMembershipStatus reports whether the caller is a member or the creator.
func (g *Gateway) GetMembershipStatus(ctx context.Context, communityID string, opts ...dispatch.CallOption) (*dispatch.Response[domain.MembershipStatus], error) {
	return call[domain.MembershipStatus](ctx, g, contract.GetMembershipStatus, args{
		path: map[string]string{"communityId": communityID},
		opts: opts,
	})
}

// CreateForumCategory creates a category. Requires the admin role.
func (g *Gateway) CreateForumCategory(ctx context.Context, communityID string, in contract.ForumCategoryRequest, opts ...dispatch.CallOption) (*dispatch.Response[domain.ForumCategory], error) {
	return call[domain.ForumCategory](ctx, g, contract.CreateForumCategory, args{
		path:     map[string]string{"communityId": communityID},
		body:     in,
		bodyErrs: in.Validate(),
		opts:     opts,
	})
}

// ListForumCategories lists the non-deleted categories of a community.
func (g *Gateway) ListForumCategories(ctx context.Context, communityID string, opts ...dispatch.CallOption) (*dispatch.Response[[]domain.ForumCategory], error) {
	return call[[]domain.ForumCategory](ctx, g, contract.ListForumCategories, args{
		path: map[string]string{"communityId": communityID},
		opts: opts,
	})
}

// UpdateForumCategory replaces a category's name and description.
// Requires the admin role.
func (g *Gateway) UpdateForumCategory(ctx context.Context, communityID, categoryID string, in contract.ForumCategoryRequest, opts ...dispatch.CallOption) (*dispatch.Response[domain.ForumCategory], error) {
	return call[domain.ForumCategory](ctx, g, contract.UpdateForumCategory, args{
		path:     map[string]string{"communityId": communityID, "categoryId": categoryID},
		body:     in,
		bodyErrs: in.Validate(),
		opts:     opts,
	})
}

// DeleteForumCategory tombstones a category. Requires the admin role.
func (g *Gateway) DeleteForumCategory(ctx context.Context, communityID, categoryID string, opts ...dispatch.CallOption) (*dispatch.Response[dispatch.NoContent], error) {
	return call[dispatch.NoContent](ctx, g, contract.DeleteForumCategory, args{
		path: map[string]string{"communityId": communityID, "categoryId": categoryID},
		opts: opts,
	})
}

// CreateForumTopic opens a topic in a category.
func (g *Gateway) CreateForumTopic(ctx context.Context, communityID, categoryID string, in contract.ForumTopicRequest, opts ...dispatch.CallOption) (*dispatch.Response[domain.ForumTopic], error) {
	return call[domain.ForumTopic](ctx, g, contract.CreateForumTopic, args{
		path:     map[string]string{"communityId": communityID, "categoryId": categoryID},
		body:     in,
		bodyErrs: in.Validate(),
		opts:     opts,
	})
}

// ListForumTopicsInCategory lists one page of non-deleted topics, newest first.
func (g *Gateway) ListForumTopicsInCategory(ctx context.Context, communityID, categoryID string, q contract.PageQuery, opts ...dispatch.CallOption) (*dispatch.Response[domain.TopicPage], error) {
	return call[domain.TopicPage](ctx, g, contract.ListForumTopicsInCategory, args{
		path:      map[string]string{"communityId": communityID, "categoryId": categoryID},
		query:     q.Values(),
		queryErrs: q.Validate(),
		opts:      opts,
	})
}

// ListLatestForumTopics lists the most recent topics across a community.
func (g *Gateway) ListLatestForumTopics(ctx context.Context, communityID string, q contract.LatestQuery, opts ...dispatch.CallOption) (*dispatch.Response[domain.TopicPage], error) {
	return call[domain.TopicPage](ctx, g, contract.ListLatestForumTopics, args{
		path:      map[string]string{"communityId": communityID},
		query:     q.Values(),
		queryErrs: q.Validate(),
		opts:      opts,
	})
}

// GetForumTopic fetches one topic.
func (g *Gateway) GetForumTopic(ctx context.Context, communityID, topicID string, opts ...dispatch.CallOption) (*dispatch.Response[domain.ForumTopic], error) {
	return call[domain.ForumTopic](ctx, g, contract.GetForumTopic, args{
		path: map[string]string{"communityId": communityID, "topicId": topicID},
		opts: opts,
	})
}

// DeleteForumTopic tombstones a topic. Allowed for its creator and the
// community admin.
func (g *Gateway) DeleteForumTopic(ctx context.Context, communityID, topicID string, opts ...dispatch.CallOption) (*dispatch.Response[dispatch.NoContent], error) {
	return call[dispatch.NoContent](ctx, g, contract.DeleteForumTopic, args{
		path: map[string]string{"communityId": communityID, "topicId": topicID},
		opts: opts,
	})
}
