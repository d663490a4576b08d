package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var catalog = []CommunityBasicInfo{
	{ID: "a", Name: "Foo Club", Description: "bar"},
	{ID: "b", Name: "Baz", Description: "qux foo"},
}

func ids(cs []CommunityBasicInfo) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestFilterCommunities_MatchesNameOrDescription(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, ids(FilterCommunities(catalog, "foo")))
	assert.Equal(t, []string{"a", "b"}, ids(FilterCommunities(catalog, "FOO")))
}

func TestFilterCommunities_NoMatch(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FilterCommunities(catalog, "zzz"))
}

func TestFilterCommunities_BlankTermReturnsAll(t *testing.T) {
	t.Parallel()

	assert.Equal(t, catalog, FilterCommunities(catalog, ""))
	assert.Equal(t, catalog, FilterCommunities(catalog, "   "))
}

func TestFilterCommunities_SubsetProperty(t *testing.T) {
	t.Parallel()

	big := []CommunityBasicInfo{
		{ID: "1", Name: "Go Programmers", Description: "gophers unite"},
		{ID: "2", Name: "Rustaceans", Description: "crabs"},
		{ID: "3", Name: "Chess", Description: "Grandmasters and go players"},
		{ID: "4", Name: "Knitting", Description: ""},
		{ID: "5", Name: "GOLF", Description: "eighteen holes"},
	}

	for _, term := range []string{"go", "o", "crab", "", "x", "GO P", "holes"} {
		filtered := FilterCommunities(big, term)
		in := make(map[string]bool, len(filtered))
		for _, c := range filtered {
			in[c.ID] = true
			assert.True(t, MatchesSearch(c, term) || strings.TrimSpace(term) == "", "term %q: %s should match", term, c.ID)
		}
		for _, c := range big {
			if !in[c.ID] {
				assert.False(t, MatchesSearch(c, term), "term %q: %s excluded but matches", term, c.ID)
			}
		}
	}
}
