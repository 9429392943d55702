// Package engine runs the real-time rendering loop which drains playing
// tracks into their output streams.
package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dudk/wavplay"
	"github.com/dudk/wavplay/log"
	"github.com/dudk/wavplay/track"
)

const (
	// DefaultBufferSize is the number of frames pulled per track per
	// render pass.
	DefaultBufferSize = 512
	// DefaultIdleInterval is how long the loop sleeps when no track is
	// playing. Pacing during playback comes from blocking output writes,
	// not from this interval.
	DefaultIdleInterval = 10 * time.Millisecond
)

// Engine owns the render goroutine. Start and Stop belong to the control
// thread, the loop itself only reads the registry and renders tracks.
type Engine struct {
	registry     *track.Registry
	bufferSize   int
	idleInterval time.Duration
	log          wavplay.Logger

	mu      sync.Mutex
	running atomic.Bool
	cancel  chan struct{}
	done    chan struct{}
}

// Option provides a way to set functional parameters to engine.
type Option func(*Engine)

// BufferSize sets the number of frames rendered per track per pass.
func BufferSize(n int) Option {
	return func(e *Engine) {
		e.bufferSize = n
	}
}

// IdleInterval sets the sleep interval of an idle loop.
func IdleInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.idleInterval = d
	}
}

// WithLogger sets the logger used for render failures.
func WithLogger(l wavplay.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// New creates a new engine over the passed registry.
func New(registry *track.Registry, options ...Option) *Engine {
	e := &Engine{
		registry:     registry,
		bufferSize:   DefaultBufferSize,
		idleInterval: DefaultIdleInterval,
		log:          log.GetLogger(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Start launches the render loop. Starting a running engine fails with
// wavplay.ErrInvalidState.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running.Load() {
		return wavplay.ErrInvalidState
	}
	e.cancel = make(chan struct{})
	e.done = make(chan struct{})
	e.running.Store(true)
	go e.loop(e.cancel, e.done)
	return nil
}

// Stop signals the render loop to exit and waits for its termination.
// When Stop returns, no render activity is left. Consequent calls are
// no-ops.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running.Load() {
		return
	}
	close(e.cancel)
	<-e.done
	e.running.Store(false)
}

// IsRunning reports whether the render loop is active. Safe to poll from
// the control thread.
func (e *Engine) IsRunning() bool {
	return e.running.Load()
}

func (e *Engine) loop(cancel <-chan struct{}, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-cancel:
			return
		default:
		}

		playing := e.registry.Playing()
		if len(playing) == 0 {
			select {
			case <-cancel:
				return
			case <-time.After(e.idleInterval):
			}
			continue
		}

		for _, t := range playing {
			// render failures are contained to the affected track
			if err := t.Render(e.bufferSize); err != nil {
				e.log.Info("render: ", err)
			}
		}
	}
}
