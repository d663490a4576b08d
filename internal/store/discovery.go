package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/heartmarshall/communities-gateway/internal/domain"
)

//go:generate moq -out catalog_source_mock_test.go -pkg store . CatalogSource

// CatalogSource lists the community catalog.
type CatalogSource interface {
	ListAllCommunities(ctx context.Context) ([]domain.CommunityBasicInfo, error)
}

// DiscoveryState is a snapshot of the discovery cache. Slices are shared
// between snapshots and must not be modified.
type DiscoveryState struct {
	All        []domain.CommunityBasicInfo `json:"all"`
	Filtered   []domain.CommunityBasicInfo `json:"filtered"`
	SearchTerm string                      `json:"search_term"`
	Status     Status                      `json:"status"`
	Err        string                      `json:"error,omitempty"`
}

// Discovery caches the community catalog and the subset matching the
// current search term.
type Discovery struct {
	src CatalogSource
	log *slog.Logger

	mu    sync.Mutex
	state DiscoveryState
	epoch uint64

	subs hub[DiscoveryState]
}

// NewDiscovery creates an empty, idle Discovery store.
func NewDiscovery(src CatalogSource, logger *slog.Logger) *Discovery {
	return &Discovery{
		src: src,
		log: logger.With("component", "store.discovery"),
		state: DiscoveryState{
			All:      []domain.CommunityBasicInfo{},
			Filtered: []domain.CommunityBasicInfo{},
		},
	}
}

// State returns the current snapshot.
func (d *Discovery) State() DiscoveryState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned function removes the subscription. fn may call State but
// must not change the store.
func (d *Discovery) Subscribe(fn func(DiscoveryState)) func() {
	return d.subs.subscribe(fn)
}

// FetchAll reloads the catalog. On success the catalog is replaced and the
// filtered view is recomputed with the search term current when the response
// lands, not when the fetch started. On failure the previous catalog is kept
// and the error message recorded. A response overtaken by a later FetchAll
// is dropped and ErrSuperseded returned.
func (d *Discovery) FetchAll(ctx context.Context) error {
	var epoch uint64
	d.subs.commit(func() (DiscoveryState, bool) {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.epoch++
		epoch = d.epoch
		d.state.Status = StatusLoading
		d.state.Err = ""
		return d.state, true
	})

	all, err := d.src.ListAllCommunities(ctx)

	current := d.subs.commit(func() (DiscoveryState, bool) {
		d.mu.Lock()
		defer d.mu.Unlock()
		if epoch != d.epoch {
			return d.state, false
		}
		if err != nil {
			d.state.Status = StatusErrored
			d.state.Err = err.Error()
			return d.state, true
		}
		if all == nil {
			all = []domain.CommunityBasicInfo{}
		}
		d.state.All = all
		d.state.Filtered = domain.FilterCommunities(all, d.state.SearchTerm)
		d.state.Status = StatusLoaded
		return d.state, true
	})

	switch {
	case !current:
		d.log.DebugContext(ctx, "discarding superseded catalog", slog.Uint64("epoch", epoch))
		return ErrSuperseded
	case err != nil:
		d.log.WarnContext(ctx, "catalog fetch failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// SetSearchTerm stores term and recomputes the filtered view from the
// current catalog. A blank term selects everything.
func (d *Discovery) SetSearchTerm(term string) {
	d.subs.commit(func() (DiscoveryState, bool) {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.state.SearchTerm = term
		d.state.Filtered = domain.FilterCommunities(d.state.All, term)
		return d.state, true
	})
}
