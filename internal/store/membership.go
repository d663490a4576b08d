package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/heartmarshall/communities-gateway/internal/domain"
)

//go:generate moq -out membership_source_mock_test.go -pkg store . MembershipSource

// MembershipSource lists the communities the caller created or joined.
type MembershipSource interface {
	ListMyCommunities(ctx context.Context) ([]domain.Community, error)
}

// MembershipState is a snapshot of the membership cache. An empty
// SelectedID means nothing is selected.
type MembershipState struct {
	Mine       []domain.Community `json:"mine"`
	SelectedID string             `json:"selected_id,omitempty"`
	Status     Status             `json:"status"`
	Err        string             `json:"error,omitempty"`
}

// Membership caches the caller's communities and which one is being viewed.
type Membership struct {
	src MembershipSource
	log *slog.Logger

	mu    sync.Mutex
	state MembershipState
	epoch uint64

	subs hub[MembershipState]
}

// NewMembership creates an empty, idle Membership store.
func NewMembership(src MembershipSource, logger *slog.Logger) *Membership {
	return &Membership{
		src:   src,
		log:   logger.With("component", "store.membership"),
		state: MembershipState{Mine: []domain.Community{}},
	}
}

// State returns the current snapshot.
func (m *Membership) State() MembershipState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned function removes the subscription. fn may call State but
// must not change the store.
func (m *Membership) Subscribe(fn func(MembershipState)) func() {
	return m.subs.subscribe(fn)
}

// FetchMine reloads the caller's communities with the same replace, keep on
// failure and supersede rules as Discovery.FetchAll. The selection is left
// as is even when the selected community is no longer listed.
func (m *Membership) FetchMine(ctx context.Context) error {
	var epoch uint64
	m.subs.commit(func() (MembershipState, bool) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.epoch++
		epoch = m.epoch
		m.state.Status = StatusLoading
		m.state.Err = ""
		return m.state, true
	})

	mine, err := m.src.ListMyCommunities(ctx)

	current := m.subs.commit(func() (MembershipState, bool) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if epoch != m.epoch {
			return m.state, false
		}
		if err != nil {
			m.state.Status = StatusErrored
			m.state.Err = err.Error()
			return m.state, true
		}
		if mine == nil {
			mine = []domain.Community{}
		}
		m.state.Mine = mine
		m.state.Status = StatusLoaded
		return m.state, true
	})

	switch {
	case !current:
		m.log.DebugContext(ctx, "discarding superseded communities", slog.Uint64("epoch", epoch))
		return ErrSuperseded
	case err != nil:
		m.log.WarnContext(ctx, "communities fetch failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Select records id as the community being viewed. id is not checked
// against the cached communities.
func (m *Membership) Select(id string) {
	m.subs.commit(func() (MembershipState, bool) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.state.SelectedID = id
		return m.state, true
	})
}

// ClearSelection forgets the selected community.
func (m *Membership) ClearSelection() {
	m.Select("")
}

// Selected returns the cached community matching the selection, if any.
func (m *Membership) Selected() (domain.Community, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.SelectedID == "" {
		return domain.Community{}, false
	}
	for _, c := range m.state.Mine {
		if c.ID == m.state.SelectedID {
			return c, true
		}
	}
	return domain.Community{}, false
}
