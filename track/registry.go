package track

import (
	"sync"

	"github.com/dudk/wavplay"
)

// Registry creates and owns tracks. Add, Get and Remove belong to the
// control thread, Playing is read by the render loop. Track references
// handed out stay valid even if the registry is mutated afterwards.
type Registry struct {
	mu     sync.RWMutex
	nextID uint64
	tracks map[uint64]*Track
	order  []uint64
}

// NewRegistry returns an empty track registry.
func NewRegistry() *Registry {
	return &Registry{
		tracks: make(map[uint64]*Track),
	}
}

// Add creates a new idle track and returns its id. Ids are assigned
// monotonically and never reused within the process lifetime.
func (r *Registry) Add() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.tracks[id] = newTrack(id)
	r.order = append(r.order, id)
	return id
}

// Get returns the track with the passed id, or false when the id is
// unknown.
func (r *Registry) Get(id uint64) (*Track, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tracks[id]
	return t, ok
}

// Remove deletes the track from the registry. A playing track cannot be
// removed, it has to be stopped first so that the render loop never loses
// a track mid-pass. Removing an unknown id is a no-op.
func (r *Registry) Remove(id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tracks[id]
	if !ok {
		return nil
	}
	if t.State() == Playing {
		return wavplay.ErrInvalidState
	}
	delete(r.tracks, id)
	for i, ordered := range r.order {
		if ordered == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Playing returns a snapshot of tracks eligible for rendering, in
// creation order.
func (r *Registry) Playing() []*Track {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var playing []*Track
	for _, id := range r.order {
		if t := r.tracks[id]; t.State() == Playing {
			playing = append(playing, t)
		}
	}
	return playing
}
