// Package mock provides source and output fakes which allow to execute
// playback tests without audio hardware.
package mock

import (
	"io"
	"sync"
	"time"

	"github.com/dudk/wavplay/signal"
)

// Source mocks a wavplay.Source with a constant-value signal of Limit
// frames. Interval simulates decode latency per read.
type Source struct {
	Limit    int64
	Value    float64
	Channels int
	Rate     int
	Depth    signal.BitDepth
	Interval time.Duration

	ErrorOnRead error // returned instead of frames once set

	read   int64
	closed bool
}

// ReadFrames returns up to n frames of the constant signal. It follows
// source error conventions: io.EOF at exhaustion, io.ErrUnexpectedEOF on a
// short final read.
func (m *Source) ReadFrames(n int) (signal.Float64, error) {
	if m.ErrorOnRead != nil {
		return nil, m.ErrorOnRead
	}
	if m.read >= m.Limit {
		return nil, io.EOF
	}
	time.Sleep(m.Interval)

	frames := int64(n)
	if left := m.Limit - m.read; left < frames {
		frames = left
	}
	b := signal.EmptyFloat64(m.Channels, int(frames))
	for i := range b {
		for j := range b[i] {
			b[i][j] = m.Value
		}
	}
	m.read += frames
	if frames < int64(n) {
		return b, io.ErrUnexpectedEOF
	}
	return b, nil
}

// SampleRate returns mocked sample rate.
func (m *Source) SampleRate() int {
	return m.Rate
}

// NumChannels returns mocked number of channels.
func (m *Source) NumChannels() int {
	return m.Channels
}

// BitDepth returns mocked bit depth.
func (m *Source) BitDepth() signal.BitDepth {
	return m.Depth
}

// NumFrames returns the frame limit.
func (m *Source) NumFrames() int64 {
	return m.Limit
}

// Close marks the source closed.
func (m *Source) Close() error {
	m.closed = true
	return nil
}

// Closed reports if the source was closed.
func (m *Source) Closed() bool {
	return m.closed
}

// Output mocks a wavplay.Output and records everything written to it.
type Output struct {
	ErrorOnWrite error // returned by writes once FailAfter writes happened
	FailAfter    int

	mu     sync.Mutex
	writes int
	frames int64
	last   signal.Float64
	closed bool
}

// Write records the buffer.
func (m *Output) Write(b signal.Float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ErrorOnWrite != nil && m.writes >= m.FailAfter {
		return m.ErrorOnWrite
	}
	m.writes++
	m.frames += int64(b.Size())
	m.last = b
	return nil
}

// Last returns the buffer of the most recent write.
func (m *Output) Last() signal.Float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Close marks the output closed.
func (m *Output) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Count returns number of writes and frames which reached the output.
func (m *Output) Count() (int, int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes, m.frames
}

// Closed reports if the output was closed.
func (m *Output) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
