package rest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/heartmarshall/communities-gateway/internal/contract"
)

// Handlers maps descriptor names to the handlers serving them.
func Handlers(forum *ForumHandler, health *HealthHandler) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		contract.CheckHealth.Name:               health.Health,
		contract.CreateCommunity.Name:           forum.CreateCommunity,
		contract.ListMyCommunities.Name:         forum.ListMyCommunities,
		contract.GetCommunity.Name:              forum.GetCommunity,
		contract.ListAllCommunities.Name:        forum.ListAllCommunities,
		contract.JoinCommunity.Name:             forum.JoinCommunity,
		contract.GetMembershipStatus.Name:       forum.GetMembershipStatus,
		contract.CreateForumCategory.Name:       forum.CreateForumCategory,
		contract.ListForumCategories.Name:       forum.ListForumCategories,
		contract.UpdateForumCategory.Name:       forum.UpdateForumCategory,
		contract.DeleteForumCategory.Name:       forum.DeleteForumCategory,
		contract.CreateForumTopic.Name:          forum.CreateForumTopic,
		contract.ListForumTopicsInCategory.Name: forum.ListForumTopicsInCategory,
		contract.ListLatestForumTopics.Name:     forum.ListLatestForumTopics,
		contract.GetForumTopic.Name:             forum.GetForumTopic,
		contract.DeleteForumTopic.Name:          forum.DeleteForumTopic,
	}
}

// NewRouter registers one route per registry descriptor. Non-root routes are
// mounted under prefix. It panics when a descriptor has no handler, so a
// registry entry can never be left unserved.
func NewRouter(prefix string, handlers map[string]http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()
	for _, d := range contract.All() {
		h, ok := handlers[d.Name]
		if !ok {
			panic(fmt.Sprintf("rest: no handler for %s", d.Name))
		}
		mux.HandleFunc(Pattern(prefix, d), h)
	}
	return mux
}

// Pattern returns the ServeMux pattern of d. A trailing slash matches only
// the exact path.
func Pattern(prefix string, d contract.Descriptor) string {
	path := d.Path
	if !d.Root {
		path = strings.TrimSuffix(prefix, "/") + path
	}
	if strings.HasSuffix(path, "/") {
		path += "{$}"
	}
	return d.Method + " " + path
}
