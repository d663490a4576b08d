// Package store holds the client-side caches of the communities service:
// the discovery catalog with its search-filtered view, and the caller's own
// communities with the current selection. Every fetch replaces the cached
// collection wholesale. Subscribers are notified after each state change.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrSuperseded is returned by a fetch whose response arrived after a newer
// fetch of the same store had started. The response is discarded.
var ErrSuperseded = errors.New("store: superseded by a newer fetch")

// Status is the lifecycle state of a cache entry.
type Status int32

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusErrored:
		return "errored"
	default:
		return fmt.Sprintf("status(%d)", s)
	}
}

// MarshalJSON implements json.Marshaler.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

type subscriber[S any] struct {
	id int
	fn func(S)
}

// hub fans snapshots out to subscribers. Transitions go through commit,
// which serializes them with their delivery, so every subscriber sees the
// snapshots in the order the transitions happened. Subscribers may read
// the store but must not mutate it from the callback.
type hub[S any] struct {
	deliver sync.Mutex

	mu     sync.Mutex
	nextID int
	subs   []subscriber[S]
}

func (h *hub[S]) subscribe(fn func(S)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs = append(h.subs, subscriber[S]{id: id, fn: fn})
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, s := range h.subs {
			if s.id == id {
				h.subs = append(h.subs[:i], h.subs[i+1:]...)
				return
			}
		}
	}
}

// commit runs a transition and publishes its snapshot before the next
// transition may start. transition returns false when nothing changed.
func (h *hub[S]) commit(transition func() (S, bool)) bool {
	h.deliver.Lock()
	defer h.deliver.Unlock()

	snap, changed := transition()
	if changed {
		h.publish(snap)
	}
	return changed
}

func (h *hub[S]) publish(state S) {
	h.mu.Lock()
	subs := make([]subscriber[S], len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	for _, s := range subs {
		s.fn(state)
	}
}
