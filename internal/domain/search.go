package domain

import "strings"

// MatchesSearch reports whether term is a case-insensitive substring of the
// community's name or description.
func MatchesSearch(c CommunityBasicInfo, term string) bool {
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(c.Name), needle) ||
		strings.Contains(strings.ToLower(c.Description), needle)
}

// FilterCommunities returns the subset of all matching term, preserving order.
// A blank term (empty or whitespace only) returns all unchanged.
func FilterCommunities(all []CommunityBasicInfo, term string) []CommunityBasicInfo {
	if strings.TrimSpace(term) == "" {
		return all
	}
	filtered := make([]CommunityBasicInfo, 0, len(all))
	for _, c := range all {
		if MatchesSearch(c, term) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
