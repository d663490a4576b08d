package forumstub

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/communities-gateway/internal/contract"
	"github.com/heartmarshall/communities-gateway/internal/domain"
)

const (
	alice = "alice"
	bob   = "bob"
	carol = "carol"
)

func newForum(t *testing.T, opts ...Option) *Forum {
	t.Helper()
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), opts...)
}

// frozenClock returns the same instant on every call.
func frozenClock() func() time.Time {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

// tickingClock advances one second per call.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		at = at.Add(time.Second)
		return at
	}
}

func seedCategory(t *testing.T, f *Forum) (domain.Community, domain.ForumCategory) {
	t.Helper()
	c := f.CreateCommunity(alice, contract.CreateCommunityRequest{Name: "Gophers"})
	k, err := f.CreateCategory(c.ID, alice, contract.ForumCategoryRequest{Name: "General"})
	require.NoError(t, err)
	return c, k
}

func assertDetail(t *testing.T, err error, kind error, detail string) {
	t.Helper()
	require.ErrorIs(t, err, kind)
	var fe *Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, detail, fe.Detail)
}

func TestCreateCommunity_CreatorNotAMember(t *testing.T) {
	t.Parallel()
	f := newForum(t)

	c := f.CreateCommunity(alice, contract.CreateCommunityRequest{Name: "  Gophers  ", CreatorID: bob})

	assert.Equal(t, "Gophers", c.Name)
	assert.Equal(t, alice, c.CreatorID)
	assert.NotNil(t, c.MemberIDs)
	assert.Empty(t, c.MemberIDs)
}

func TestJoin(t *testing.T) {
	t.Parallel()
	f := newForum(t)
	c := f.CreateCommunity(alice, contract.CreateCommunityRequest{Name: "Gophers"})

	_, err := f.Join(c.ID, alice)
	assertDetail(t, err, domain.ErrForbidden, msgCreatorJoin)

	got, err := f.GetCommunity(c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.MemberIDs, "rejected join must not change membership")

	conf, err := f.Join(c.ID, bob)
	require.NoError(t, err)
	assert.Equal(t, "Successfully joined community.", conf.Message)

	_, err = f.Join(c.ID, bob)
	assertDetail(t, err, domain.ErrForbidden, msgAlreadyMember)

	_, err = f.Join("missing", bob)
	assertDetail(t, err, domain.ErrNotFound, msgCommunityNotFound)

	got, err = f.GetCommunity(c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob}, got.MemberIDs)
}

func TestMembershipStatus(t *testing.T) {
	t.Parallel()
	f := newForum(t)
	c := f.CreateCommunity(alice, contract.CreateCommunityRequest{Name: "Gophers"})
	_, err := f.Join(c.ID, bob)
	require.NoError(t, err)

	tests := []struct {
		user string
		want domain.MembershipStatus
	}{
		{alice, domain.MembershipStatus{IsMember: true, IsCreator: true}},
		{bob, domain.MembershipStatus{IsMember: true}},
		{carol, domain.MembershipStatus{}},
	}
	for _, tt := range tests {
		got, err := f.MembershipStatus(c.ID, tt.user)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.user)
	}
}

func TestListMine(t *testing.T) {
	t.Parallel()
	f := newForum(t)
	a := f.CreateCommunity(alice, contract.CreateCommunityRequest{Name: "A"})
	b := f.CreateCommunity(bob, contract.CreateCommunityRequest{Name: "B"})
	f.CreateCommunity(carol, contract.CreateCommunityRequest{Name: "C"})
	_, err := f.Join(b.ID, alice)
	require.NoError(t, err)

	mine := f.ListMine(alice)
	require.Len(t, mine, 2)
	assert.Equal(t, a.ID, mine[0].ID)
	assert.Equal(t, b.ID, mine[1].ID)

	assert.NotNil(t, f.ListMine("nobody"))
}

func TestListCommunities_Window(t *testing.T) {
	t.Parallel()
	f := newForum(t)
	for _, name := range []string{"A", "B", "C"} {
		f.CreateCommunity(alice, contract.CreateCommunityRequest{Name: name})
	}

	page := f.ListCommunities(2, 10)
	assert.Equal(t, 3, page.TotalCount)
	require.Len(t, page.Communities, 1)
	assert.Equal(t, "C", page.Communities[0].Name)

	page = f.ListCommunities(5, 10)
	assert.Equal(t, 3, page.TotalCount)
	assert.NotNil(t, page.Communities)
	assert.Empty(t, page.Communities)
}

func TestCategories_AdminOnly(t *testing.T) {
	t.Parallel()
	f := newForum(t)
	c, k := seedCategory(t, f)

	_, err := f.CreateCategory(c.ID, bob, contract.ForumCategoryRequest{Name: "x"})
	assertDetail(t, err, domain.ErrForbidden, msgNotAdmin)

	_, err = f.UpdateCategory(c.ID, k.ID, bob, contract.ForumCategoryRequest{Name: "x"})
	assertDetail(t, err, domain.ErrForbidden, msgNotAdmin)

	err = f.DeleteCategory(c.ID, k.ID, bob)
	assertDetail(t, err, domain.ErrForbidden, msgNotAdmin)

	_, err = f.CreateCategory("missing", alice, contract.ForumCategoryRequest{Name: "x"})
	assertDetail(t, err, domain.ErrNotFound, msgCommunityNotFound)
}

func TestDeleteCategory_HiddenAndIdempotent(t *testing.T) {
	t.Parallel()
	f := newForum(t)
	c, k := seedCategory(t, f)
	other, err := f.CreateCategory(c.ID, alice, contract.ForumCategoryRequest{Name: "Other"})
	require.NoError(t, err)

	require.NoError(t, f.DeleteCategory(c.ID, k.ID, alice))
	require.NoError(t, f.DeleteCategory(c.ID, k.ID, alice))

	cats, err := f.ListCategories(c.ID)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, other.ID, cats[0].ID)

	_, err = f.UpdateCategory(c.ID, k.ID, alice, contract.ForumCategoryRequest{Name: "x"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = f.DeleteCategory(c.ID, "missing", alice)
	assertDetail(t, err, domain.ErrNotFound, msgCategoryNotFound)
}

func TestCreateTopic_RequiresLiveCategory(t *testing.T) {
	t.Parallel()
	f := newForum(t)
	c, k := seedCategory(t, f)

	topic, err := f.CreateTopic(c.ID, k.ID, bob, "Bob", contract.ForumTopicRequest{Title: "Hello", Content: "x"})
	require.NoError(t, err)
	require.NotNil(t, topic.AuthorDisplayName)
	assert.Equal(t, "Bob", *topic.AuthorDisplayName)
	assert.False(t, topic.Deleted)

	anon, err := f.CreateTopic(c.ID, k.ID, bob, "", contract.ForumTopicRequest{Title: "Hello"})
	require.NoError(t, err)
	assert.Nil(t, anon.AuthorDisplayName)

	require.NoError(t, f.DeleteCategory(c.ID, k.ID, alice))
	_, err = f.CreateTopic(c.ID, k.ID, bob, "Bob", contract.ForumTopicRequest{Title: "Again"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListTopics_NewestFirstExcludingDeleted(t *testing.T) {
	t.Parallel()
	f := newForum(t, WithClock(frozenClock()))
	c, k := seedCategory(t, f)

	var ids []string
	for _, title := range []string{"first", "second", "third"} {
		topic, err := f.CreateTopic(c.ID, k.ID, bob, "", contract.ForumTopicRequest{Title: title})
		require.NoError(t, err)
		ids = append(ids, topic.ID)
	}
	require.NoError(t, f.DeleteTopic(c.ID, ids[1], bob))

	page, err := f.ListTopics(c.ID, k.ID, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)
	require.Len(t, page.Topics, 2)
	// Equal timestamps fall back to insertion order, newest first.
	assert.Equal(t, ids[2], page.Topics[0].ID)
	assert.Equal(t, ids[0], page.Topics[1].ID)
	require.NotNil(t, page.Offset)
	assert.Equal(t, 0, *page.Offset)

	page, err = f.ListTopics(c.ID, k.ID, 1, 1)
	require.NoError(t, err)
	require.Len(t, page.Topics, 1)
	assert.Equal(t, ids[0], page.Topics[0].ID)
}

func TestLatestTopics_AcrossCategories(t *testing.T) {
	t.Parallel()
	f := newForum(t, WithClock(tickingClock()))
	c, k := seedCategory(t, f)
	k2, err := f.CreateCategory(c.ID, alice, contract.ForumCategoryRequest{Name: "Second"})
	require.NoError(t, err)

	older, err := f.CreateTopic(c.ID, k.ID, bob, "", contract.ForumTopicRequest{Title: "older"})
	require.NoError(t, err)
	newer, err := f.CreateTopic(c.ID, k2.ID, bob, "", contract.ForumTopicRequest{Title: "newer"})
	require.NoError(t, err)

	page, err := f.LatestTopics(c.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)
	require.Len(t, page.Topics, 1)
	assert.Equal(t, newer.ID, page.Topics[0].ID)
	assert.Equal(t, 0, *page.Offset)
	assert.Equal(t, 1, *page.Limit)

	page, err = f.LatestTopics(c.ID, 10)
	require.NoError(t, err)
	require.Len(t, page.Topics, 2)
	assert.Equal(t, older.ID, page.Topics[1].ID)

	_, err = f.LatestTopics("missing", 10)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteTopic_Permissions(t *testing.T) {
	t.Parallel()
	f := newForum(t)
	c, k := seedCategory(t, f)

	byBob, err := f.CreateTopic(c.ID, k.ID, bob, "", contract.ForumTopicRequest{Title: "bob's"})
	require.NoError(t, err)
	byCarol, err := f.CreateTopic(c.ID, k.ID, carol, "", contract.ForumTopicRequest{Title: "carol's"})
	require.NoError(t, err)

	err = f.DeleteTopic(c.ID, byBob.ID, carol)
	assertDetail(t, err, domain.ErrForbidden, msgNotTopicOwner)

	require.NoError(t, f.DeleteTopic(c.ID, byBob.ID, bob))
	require.NoError(t, f.DeleteTopic(c.ID, byCarol.ID, alice), "community creator may delete any topic")

	_, err = f.GetTopic(c.ID, byBob.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = f.DeleteTopic(c.ID, byBob.ID, bob)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetTopic_WrongCommunity(t *testing.T) {
	t.Parallel()
	f := newForum(t)
	c, k := seedCategory(t, f)
	other := f.CreateCommunity(bob, contract.CreateCommunityRequest{Name: "Other"})

	topic, err := f.CreateTopic(c.ID, k.ID, bob, "", contract.ForumTopicRequest{Title: "Hello"})
	require.NoError(t, err)

	_, err = f.GetTopic(other.ID, topic.ID)
	assertDetail(t, err, domain.ErrNotFound, topicNotFound(other.ID, topic.ID))
}

func TestForum_ConcurrentJoins(t *testing.T) {
	t.Parallel()
	f := newForum(t)
	c := f.CreateCommunity(alice, contract.CreateCommunityRequest{Name: "Gophers"})

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.Join(c.ID, bob)
		}()
	}
	wg.Wait()

	got, err := f.GetCommunity(c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob}, got.MemberIDs)
}
