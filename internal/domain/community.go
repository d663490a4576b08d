package domain

import (
	"slices"
	"time"
)

// Community is the full community aggregate.
// The creator is not automatically part of MemberIDs.
type Community struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   string    `json:"creator_id"`
	MemberIDs   []string  `json:"member_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsCreator reports whether userID created the community.
func (c Community) IsCreator(userID string) bool {
	return userID != "" && c.CreatorID == userID
}

// HasMember reports whether userID is listed in MemberIDs.
func (c Community) HasMember(userID string) bool {
	return slices.Contains(c.MemberIDs, userID)
}

// MembershipFor derives the membership status of userID.
// The creator counts as a member.
func (c Community) MembershipFor(userID string) MembershipStatus {
	creator := c.IsCreator(userID)
	return MembershipStatus{
		IsMember:  creator || c.HasMember(userID),
		IsCreator: creator,
	}
}

// BasicInfo projects the community for catalog listings.
func (c Community) BasicInfo() CommunityBasicInfo {
	return CommunityBasicInfo{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		MemberCount: len(c.MemberIDs),
	}
}

// CommunityBasicInfo is the catalog projection of a community.
type CommunityBasicInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MemberCount int    `json:"member_count"`
}

// CommunityPage is one page of the community catalog.
type CommunityPage struct {
	Communities []CommunityBasicInfo `json:"communities"`
	TotalCount  int                  `json:"total_count"`
}

// MembershipStatus is derived per request and never persisted.
type MembershipStatus struct {
	IsMember  bool `json:"is_member"`
	IsCreator bool `json:"is_creator"`
}

// JoinConfirmation is returned by a successful join.
type JoinConfirmation struct {
	Message     string `json:"message"`
	CommunityID string `json:"community_id"`
	UserID      string `json:"user_id"`
}

// Health is the health-check payload.
type Health struct {
	Status string `json:"status"`
}
