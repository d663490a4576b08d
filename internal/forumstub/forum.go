// Package forumstub is an in-memory implementation of the communities
// service. It backs the reference server and the end-to-end tests of the
// gateway and the cache stores. Nothing is persisted.
package forumstub

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/communities-gateway/internal/contract"
	"github.com/heartmarshall/communities-gateway/internal/domain"
)

// Option configures a Forum.
type Option func(*Forum)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(f *Forum) { f.now = now }
}

// Forum holds communities, categories and topics in memory.
// All methods are safe for concurrent use.
type Forum struct {
	mu  sync.RWMutex
	now func() time.Time
	log *slog.Logger

	seq         int64
	communities map[string]*communityRecord
	order       []string
	categories  map[string]*categoryRecord
	topics      map[string]*topicRecord
}

type communityRecord struct {
	domain.Community
	seq int64
}

type categoryRecord struct {
	domain.ForumCategory
	seq int64
}

type topicRecord struct {
	domain.ForumTopic
	seq int64
}

// New creates an empty Forum.
func New(logger *slog.Logger, opts ...Option) *Forum {
	f := &Forum{
		now:         time.Now,
		log:         logger.With("component", "forumstub"),
		communities: make(map[string]*communityRecord),
		categories:  make(map[string]*categoryRecord),
		topics:      make(map[string]*topicRecord),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Forum) next() int64 {
	f.seq++
	return f.seq
}

// ---------------------------------------------------------------------------
// Communities
// ---------------------------------------------------------------------------

// CreateCommunity stores a new community owned by userID. The creator id in
// the request is ignored and the creator is not added to the member list.
func (f *Forum) CreateCommunity(userID string, in contract.CreateCommunityRequest) domain.Community {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := &communityRecord{
		Community: domain.Community{
			ID:          uuid.NewString(),
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
			CreatorID:   userID,
			MemberIDs:   []string{},
			CreatedAt:   f.now().UTC(),
		},
		seq: f.next(),
	}
	f.communities[c.ID] = c
	f.order = append(f.order, c.ID)

	f.log.Debug("community created", slog.String("community_id", c.ID), slog.String("creator_id", userID))
	return cloneCommunity(c.Community)
}

// ListMine returns the communities userID created or joined, oldest first.
func (f *Forum) ListMine(userID string) []domain.Community {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := []domain.Community{}
	for _, id := range f.order {
		c := f.communities[id]
		if c.IsCreator(userID) || c.HasMember(userID) {
			out = append(out, cloneCommunity(c.Community))
		}
	}
	return out
}

// GetCommunity returns one community.
func (f *Forum) GetCommunity(id string) (domain.Community, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	c, ok := f.communities[id]
	if !ok {
		return domain.Community{}, notFound(msgCommunityNotFound)
	}
	return cloneCommunity(c.Community), nil
}

// ListCommunities returns one page of the catalog in creation order.
func (f *Forum) ListCommunities(offset, limit int) domain.CommunityPage {
	f.mu.RLock()
	defer f.mu.RUnlock()

	page := domain.CommunityPage{
		Communities: []domain.CommunityBasicInfo{},
		TotalCount:  len(f.order),
	}
	for _, id := range window(f.order, offset, limit) {
		page.Communities = append(page.Communities, f.communities[id].BasicInfo())
	}
	return page
}

// Join adds userID to the members of a community.
func (f *Forum) Join(communityID, userID string) (domain.JoinConfirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.communities[communityID]
	if !ok {
		return domain.JoinConfirmation{}, notFound(msgCommunityNotFound)
	}
	if c.IsCreator(userID) {
		return domain.JoinConfirmation{}, forbidden(msgCreatorJoin)
	}
	if c.HasMember(userID) {
		return domain.JoinConfirmation{}, forbidden(msgAlreadyMember)
	}
	c.MemberIDs = append(c.MemberIDs, userID)

	return domain.JoinConfirmation{
		Message:     "Successfully joined community.",
		CommunityID: communityID,
		UserID:      userID,
	}, nil
}

// MembershipStatus derives the status of userID in a community.
func (f *Forum) MembershipStatus(communityID, userID string) (domain.MembershipStatus, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	c, ok := f.communities[communityID]
	if !ok {
		return domain.MembershipStatus{}, notFound(msgCommunityNotFound)
	}
	return c.MembershipFor(userID), nil
}

// ---------------------------------------------------------------------------
// Forum categories
// ---------------------------------------------------------------------------

// CreateCategory adds a category. Only the community creator may do so.
func (f *Forum) CreateCategory(communityID, userID string, in contract.ForumCategoryRequest) (domain.ForumCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.adminCommunity(communityID, userID); err != nil {
		return domain.ForumCategory{}, err
	}

	k := &categoryRecord{
		ForumCategory: domain.ForumCategory{
			ID:          uuid.NewString(),
			CommunityID: communityID,
			Name:        in.Name,
			Description: in.Description,
			CreatedAt:   f.now().UTC(),
		},
		seq: f.next(),
	}
	f.categories[k.ID] = k
	return k.ForumCategory, nil
}

// ListCategories returns the live categories of a community, oldest first.
func (f *Forum) ListCategories(communityID string) ([]domain.ForumCategory, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if _, ok := f.communities[communityID]; !ok {
		return nil, notFound(msgCommunityNotFound)
	}

	recs := make([]*categoryRecord, 0)
	for _, k := range f.categories {
		if k.CommunityID == communityID && !k.Deleted {
			recs = append(recs, k)
		}
	}
	slices.SortFunc(recs, func(a, b *categoryRecord) int { return cmp.Compare(a.seq, b.seq) })

	out := make([]domain.ForumCategory, 0, len(recs))
	for _, k := range recs {
		out = append(out, k.ForumCategory)
	}
	return out, nil
}

// UpdateCategory replaces name and description of a live category.
func (f *Forum) UpdateCategory(communityID, categoryID, userID string, in contract.ForumCategoryRequest) (domain.ForumCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.adminCommunity(communityID, userID); err != nil {
		return domain.ForumCategory{}, err
	}
	k, err := f.liveCategory(communityID, categoryID)
	if err != nil {
		return domain.ForumCategory{}, err
	}
	k.Name = in.Name
	k.Description = in.Description
	return k.ForumCategory, nil
}

// DeleteCategory tombstones a category. Deleting an already deleted
// category is a no-op.
func (f *Forum) DeleteCategory(communityID, categoryID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.adminCommunity(communityID, userID); err != nil {
		return err
	}
	k, ok := f.categories[categoryID]
	if !ok || k.CommunityID != communityID {
		return notFound(msgCategoryNotFound)
	}
	k.Deleted = true
	return nil
}

// ---------------------------------------------------------------------------
// Forum topics
// ---------------------------------------------------------------------------

// CreateTopic opens a topic in a live category.
func (f *Forum) CreateTopic(communityID, categoryID, userID, displayName string, in contract.ForumTopicRequest) (domain.ForumTopic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.topicScope(communityID, categoryID); err != nil {
		return domain.ForumTopic{}, err
	}

	now := f.now().UTC()
	t := &topicRecord{
		ForumTopic: domain.ForumTopic{
			ID:          uuid.NewString(),
			CommunityID: communityID,
			CategoryID:  categoryID,
			CreatorID:   userID,
			Title:       in.Title,
			Content:     in.Content,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		seq: f.next(),
	}
	if displayName != "" {
		t.AuthorDisplayName = &displayName
	}
	f.topics[t.ID] = t
	return t.ForumTopic, nil
}

// ListTopics returns one page of live topics of a category, newest first.
func (f *Forum) ListTopics(communityID, categoryID string, offset, limit int) (domain.TopicPage, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if err := f.topicScope(communityID, categoryID); err != nil {
		return domain.TopicPage{}, err
	}

	all := f.liveTopics(func(t *topicRecord) bool {
		return t.CommunityID == communityID && t.CategoryID == categoryID
	})
	return domain.TopicPage{
		Topics:     window(all, offset, limit),
		TotalCount: len(all),
		Offset:     &offset,
		Limit:      &limit,
	}, nil
}

// LatestTopics returns the newest live topics across a community. Topics in
// deleted categories are still listed here.
func (f *Forum) LatestTopics(communityID string, limit int) (domain.TopicPage, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if _, ok := f.communities[communityID]; !ok {
		return domain.TopicPage{}, notFound(fmt.Sprintf("Community with ID %s not found", communityID))
	}

	all := f.liveTopics(func(t *topicRecord) bool { return t.CommunityID == communityID })
	offset := 0
	return domain.TopicPage{
		Topics:     window(all, 0, limit),
		TotalCount: len(all),
		Offset:     &offset,
		Limit:      &limit,
	}, nil
}

// GetTopic returns one live topic.
func (f *Forum) GetTopic(communityID, topicID string) (domain.ForumTopic, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	t, ok := f.topics[topicID]
	if !ok || t.CommunityID != communityID || t.Deleted {
		return domain.ForumTopic{}, notFound(topicNotFound(communityID, topicID))
	}
	return t.ForumTopic, nil
}

// DeleteTopic tombstones a topic. Allowed for the topic creator and the
// community creator.
func (f *Forum) DeleteTopic(communityID, topicID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.topics[topicID]
	if !ok || t.CommunityID != communityID || t.Deleted {
		return notFound(topicNotFound(communityID, topicID))
	}
	c := f.communities[communityID]
	if t.CreatorID != userID && (c == nil || !c.IsCreator(userID)) {
		return forbidden(msgNotTopicOwner)
	}
	t.Deleted = true
	t.UpdatedAt = f.now().UTC()
	return nil
}

// ---------------------------------------------------------------------------
// helpers (callers hold the lock)
// ---------------------------------------------------------------------------

func (f *Forum) adminCommunity(communityID, userID string) (*communityRecord, error) {
	c, ok := f.communities[communityID]
	if !ok {
		return nil, notFound(msgCommunityNotFound)
	}
	if !c.IsCreator(userID) {
		return nil, forbidden(msgNotAdmin)
	}
	return c, nil
}

func (f *Forum) liveCategory(communityID, categoryID string) (*categoryRecord, error) {
	k, ok := f.categories[categoryID]
	if !ok || k.CommunityID != communityID {
		return nil, notFound(msgCategoryNotFound)
	}
	if k.Deleted {
		return nil, notFound(msgCategoryNotFound + " (it may have been deleted)")
	}
	return k, nil
}

func (f *Forum) topicScope(communityID, categoryID string) error {
	if _, ok := f.communities[communityID]; !ok {
		return notFound(fmt.Sprintf("Community with ID %s not found", communityID))
	}
	k, ok := f.categories[categoryID]
	if !ok || k.CommunityID != communityID {
		return notFound(fmt.Sprintf("Category with ID %s in community %s not found", categoryID, communityID))
	}
	if k.Deleted {
		return notFound(fmt.Sprintf("Category with ID %s in community %s not found (it may have been deleted)", categoryID, communityID))
	}
	return nil
}

func (f *Forum) liveTopics(keep func(*topicRecord) bool) []domain.ForumTopic {
	recs := make([]*topicRecord, 0)
	for _, t := range f.topics {
		if !t.Deleted && keep(t) {
			recs = append(recs, t)
		}
	}
	// Newest first; insertion order breaks ties.
	slices.SortFunc(recs, func(a, b *topicRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})

	out := make([]domain.ForumTopic, 0, len(recs))
	for _, t := range recs {
		out = append(out, t.ForumTopic)
	}
	return out
}

func topicNotFound(communityID, topicID string) string {
	return fmt.Sprintf("Forum topic with ID %s not found in community %s or it has been deleted.", topicID, communityID)
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return slices.Clone(items[offset:end])
}

func cloneCommunity(c domain.Community) domain.Community {
	c.MemberIDs = slices.Clone(c.MemberIDs)
	if c.MemberIDs == nil {
		c.MemberIDs = []string{}
	}
	return c
}
