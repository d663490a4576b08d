package store

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/communities-gateway/internal/auth"
	"github.com/heartmarshall/communities-gateway/internal/contract"
	"github.com/heartmarshall/communities-gateway/internal/dispatch"
	"github.com/heartmarshall/communities-gateway/internal/domain"
	"github.com/heartmarshall/communities-gateway/internal/forumstub"
	"github.com/heartmarshall/communities-gateway/internal/gateway"
	"github.com/heartmarshall/communities-gateway/internal/transport/middleware"
	"github.com/heartmarshall/communities-gateway/internal/transport/rest"
)

// newStubGateway starts the reference service and returns a gateway
// authenticated as userID. An empty userID sends no credential.
func newStubGateway(t *testing.T, userID string) *gateway.Gateway {
	t.Helper()
	logger := discardLogger()
	jwt := auth.NewJWTManager("store-test-secret-at-least-32-characters", "forumstub", time.Hour)

	forum := rest.NewForumHandler(forumstub.New(logger), logger)
	router := rest.NewRouter("/routes", rest.Handlers(forum, rest.NewHealthHandler("test")))
	srv := httptest.NewServer(middleware.Auth(jwt)(router))
	t.Cleanup(srv.Close)

	var token string
	if userID != "" {
		var err error
		token, err = jwt.GenerateAccessToken(auth.Identity{UserID: userID})
		require.NoError(t, err)
	}
	d := dispatch.New(dispatch.Config{BaseURL: srv.URL, RoutesPrefix: "/routes", Token: token}, logger)
	return gateway.New(d, logger)
}

func TestGatewaySource_FeedsBothStores(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gw := newStubGateway(t, "alice")

	for _, name := range []string{"Gophers", "Bakers"} {
		resp, err := gw.CreateCommunity(ctx, contract.CreateCommunityRequest{Name: name})
		require.NoError(t, err)
		require.True(t, resp.OK())
	}

	src := NewGatewaySource(gw)
	discovery := NewDiscovery(src, discardLogger())
	membership := NewMembership(src, discardLogger())

	require.NoError(t, discovery.FetchAll(ctx))
	discovery.SetSearchTerm("goph")
	st := discovery.State()
	assert.Len(t, st.All, 2)
	require.Len(t, st.Filtered, 1)
	assert.Equal(t, "Gophers", st.Filtered[0].Name)

	require.NoError(t, membership.FetchMine(ctx))
	assert.Len(t, membership.State().Mine, 2)
}

func TestGatewaySource_PageQuery(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gw := newStubGateway(t, "alice")

	for _, name := range []string{"A", "B", "C"} {
		_, err := gw.CreateCommunity(ctx, contract.CreateCommunityRequest{Name: name})
		require.NoError(t, err)
	}

	src := NewGatewaySource(gw)
	src.Page = contract.PageQuery{Limit: contract.Int(2)}

	items, err := src.ListAllCommunities(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestGatewaySource_RefusalBecomesStoreError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	membership := NewMembership(NewGatewaySource(newStubGateway(t, "")), discardLogger())

	err := membership.FetchMine(ctx)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	st := membership.State()
	assert.Equal(t, StatusErrored, st.Status)
	assert.Contains(t, st.Err, "list my communities")
}

func TestGatewaySource_InvalidPageNeverSent(t *testing.T) {
	t.Parallel()

	src := NewGatewaySource(newStubGateway(t, "alice"))
	src.Page = contract.PageQuery{Limit: contract.Int(500)}

	_, err := src.ListAllCommunities(context.Background())
	require.ErrorIs(t, err, domain.ErrValidation)
}
