package domain

import "time"

// ForumCategory is a named subdivision of a community's discussion space.
// Deleted is a tombstone: it governs list visibility and is never sent.
type ForumCategory struct {
	ID          string    `json:"id"`
	CommunityID string    `json:"community_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Deleted     bool      `json:"-"`
}

// ForumTopic is a discussion thread within a category.
type ForumTopic struct {
	ID                string    `json:"id"`
	CommunityID       string    `json:"community_id"`
	CategoryID        string    `json:"category_id"`
	CreatorID         string    `json:"creator_id"`
	Title             string    `json:"title"`
	Content           string    `json:"content"`
	AuthorDisplayName *string   `json:"author_display_name,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	Deleted           bool      `json:"is_deleted"`
}

// TopicPage is a page of topics plus the pagination window that produced it.
type TopicPage struct {
	Topics     []ForumTopic `json:"topics"`
	TotalCount int          `json:"total_count"`
	Offset     *int         `json:"offset"`
	Limit      *int         `json:"limit"`
}
