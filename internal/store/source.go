package store

import (
	"context"
	"fmt"

	"github.com/heartmarshall/communities-gateway/internal/contract"
	"github.com/heartmarshall/communities-gateway/internal/dispatch"
	"github.com/heartmarshall/communities-gateway/internal/domain"
	"github.com/heartmarshall/communities-gateway/internal/gateway"
)

// GatewaySource feeds both stores from a Gateway. A non-2xx response becomes
// the fetch error.
type GatewaySource struct {
	gw *gateway.Gateway
	// Page is the catalog window requested by ListAllCommunities. The zero
	// value asks for the service defaults.
	Page contract.PageQuery
}

var (
	_ CatalogSource    = (*GatewaySource)(nil)
	_ MembershipSource = (*GatewaySource)(nil)
)

// NewGatewaySource creates a GatewaySource over gw.
func NewGatewaySource(gw *gateway.Gateway) *GatewaySource {
	return &GatewaySource{gw: gw}
}

// ListAllCommunities returns the communities of the configured catalog page.
func (s *GatewaySource) ListAllCommunities(ctx context.Context) ([]domain.CommunityBasicInfo, error) {
	page, err := unwrap(s.gw.ListAllCommunities(ctx, s.Page))
	if err != nil {
		return nil, fmt.Errorf("list all communities: %w", err)
	}
	return page.Communities, nil
}

// ListMyCommunities returns the caller's communities.
func (s *GatewaySource) ListMyCommunities(ctx context.Context) ([]domain.Community, error) {
	mine, err := unwrap(s.gw.ListMyCommunities(ctx))
	if err != nil {
		return nil, fmt.Errorf("list my communities: %w", err)
	}
	return mine, nil
}

func unwrap[T any](resp *dispatch.Response[T], err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return resp.Data()
}
