// Package track owns playback sessions. A track binds a decoded source to
// an output stream, exposes transport controls for the control thread and
// a render step for the engine loop.
package track

import (
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"

	"github.com/dudk/wavplay"
)

// State identifies one of the possible states a track can be in.
type State int32

// states
const (
	Idle State = iota
	Playing
	Stopped
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Stopped:
		return "stopped"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Event identifies the type of track event.
type Event int

// PlaybackFinished is fired exactly once when the bound source is
// exhausted. It is never fired on explicit stop.
const PlaybackFinished Event = iota

// Track is a single playback session. Play, Stop, Bind and Reset belong to
// the control thread, Render belongs to the engine loop. Operations
// attempted in a wrong state fail with wavplay.ErrInvalidState, they are
// never silently ignored.
type Track struct {
	id      uint64
	session string

	state    atomic.Int32
	position atomic.Int64
	volume   atomic.Uint64

	// mu guards bindings and state transitions.
	mu       sync.Mutex
	out      wavplay.Output
	src      wavplay.Source
	callback func(Event)
	done     chan struct{}

	// renderMu serializes render passes, Stop waits on it to guarantee
	// that no frames reach the device after it returns.
	renderMu sync.Mutex
}

func newTrack(id uint64) *Track {
	t := &Track{
		id:   id,
		done: make(chan struct{}),
	}
	t.volume.Store(math.Float64bits(1))
	return t
}

// ID returns registry-assigned track id.
func (t *Track) ID() uint64 {
	return t.id
}

// Session returns unique id of the current playback session. It is empty
// until the track is bound.
func (t *Track) Session() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session
}

// State returns the current track state. Safe to poll from any goroutine.
func (t *Track) State() State {
	return State(t.state.Load())
}

// Position returns the number of frames rendered in the current session.
func (t *Track) Position() int64 {
	return t.position.Load()
}

// SetVolume sets playback gain clamped to [0, 1].
func (t *Track) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	t.volume.Store(math.Float64bits(volume))
}

// Volume returns current playback gain.
func (t *Track) Volume() float64 {
	return math.Float64frombits(t.volume.Load())
}

// OnEvent registers the event callback. A track holds at most one
// callback, consequent calls replace it. The callback is invoked on the
// render goroutine and must return promptly.
func (t *Track) OnEvent(callback func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.callback = callback
}

// Done returns a channel closed when the session reaches a terminal state,
// either Stopped or Finished. It allows an event-driven wait as an
// alternative to polling State.
func (t *Track) Done() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// Bind attaches an output stream and a source to an idle track. Binding
// does not start playback. A bound track must be reset back to idle before
// it can be bound again.
func (t *Track) Bind(out wavplay.Output, src wavplay.Source) error {
	if out == nil || src == nil {
		return wavplay.ErrNotReady
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if State(t.state.Load()) != Idle || t.out != nil {
		return wavplay.ErrInvalidState
	}
	t.out = out
	t.src = src
	t.session = xid.New().String()
	return nil
}

// Play makes the track eligible for rendering. It fails with ErrNotReady
// if the track has no bound output or source and with ErrInvalidState if
// the track is not idle.
func (t *Track) Play() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if State(t.state.Load()) != Idle {
		return wavplay.ErrInvalidState
	}
	if t.out == nil || t.src == nil {
		return wavplay.ErrNotReady
	}
	t.state.Store(int32(Playing))
	return nil
}

// Stop ends the session. When Stop returns, no further frames of this
// track reach the device and its resources are released. PlaybackFinished
// is not fired. Safe to call concurrently with an in-flight render pass.
func (t *Track) Stop() error {
	t.mu.Lock()
	if State(t.state.Load()) != Playing {
		t.mu.Unlock()
		return wavplay.ErrInvalidState
	}
	t.state.Store(int32(Stopped))
	out, src, done := t.out, t.src, t.done
	t.mu.Unlock()

	// wait for the pass which is in flight right now
	t.renderMu.Lock()
	t.renderMu.Unlock()

	return release(out, src, done)
}

// Reset returns a terminated track to idle so a fresh session can be
// bound. Resetting a playing track is not allowed.
func (t *Track) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch State(t.state.Load()) {
	case Idle:
		return nil
	case Playing:
		return wavplay.ErrInvalidState
	}
	t.out = nil
	t.src = nil
	t.session = ""
	t.done = make(chan struct{})
	t.position.Store(0)
	t.state.Store(int32(Idle))
	return nil
}

// Render executes one render pass: it pulls up to n frames from the bound
// source, applies gain and pushes them to the output. On source exhaustion
// the track transitions to Finished and fires PlaybackFinished, on write
// failure it is forced to Stopped and the error is returned. The event
// callback is invoked with no track locks held.
func (t *Track) Render(n int) error {
	t.renderMu.Lock()
	fire, err := t.renderPass(n)
	t.renderMu.Unlock()
	if fire != nil {
		fire(PlaybackFinished)
	}
	return err
}

func (t *Track) renderPass(n int) (func(Event), error) {
	if t.State() != Playing {
		return nil, nil
	}
	b, err := t.src.ReadFrames(n)
	switch err {
	case nil, io.ErrUnexpectedEOF:
	case io.EOF:
		return t.finish(), nil
	default:
		t.abort()
		return nil, fmt.Errorf("track %d source: %w", t.id, err)
	}
	b.Gain(t.Volume())
	if werr := t.out.Write(b); werr != nil {
		t.abort()
		return nil, fmt.Errorf("track %d output: %w", t.id, werr)
	}
	t.position.Add(int64(b.Size()))
	if err == io.ErrUnexpectedEOF {
		return t.finish(), nil
	}
	return nil, nil
}

// finish transitions a playing track to Finished and returns the callback
// to fire. Only one terminal transition wins, so the event cannot be fired
// twice and never races a concurrent Stop.
func (t *Track) finish() func(Event) {
	t.mu.Lock()
	if State(t.state.Load()) != Playing {
		t.mu.Unlock()
		return nil
	}
	t.state.Store(int32(Finished))
	callback := t.callback
	out, src, done := t.out, t.src, t.done
	t.mu.Unlock()

	_ = release(out, src, done)
	return callback
}

// abort forces a playing track to Stopped after a render failure. Other
// tracks are unaffected.
func (t *Track) abort() {
	t.mu.Lock()
	if State(t.state.Load()) != Playing {
		t.mu.Unlock()
		return
	}
	t.state.Store(int32(Stopped))
	out, src, done := t.out, t.src, t.done
	t.mu.Unlock()

	_ = release(out, src, done)
}

// release closes session resources and signals the done channel. It runs
// exactly once per session: every terminal transition goes through a
// single compare-and-transition above.
func release(out wavplay.Output, src wavplay.Source, done chan struct{}) error {
	err := src.Close()
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	close(done)
	return err
}
