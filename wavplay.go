// Package wavplay provides a minimal real-time playback engine for PCM wav
// files. It moves audio frames from a decoded source to an output device on
// a dedicated render goroutine, while play/stop control stays on the caller
// side.
//
// The package itself only holds the contracts shared by the subpackages:
// wav decodes, device enumerates and opens outputs, track owns a playback
// session and engine runs the render loop.
package wavplay

import (
	"errors"
	"fmt"

	"github.com/dudk/wavplay/signal"
)

// Source is a sequential reader of audio frames. Implementations should use
// next error conventions:
// 		- nil if n full frames were read;
// 		- io.EOF if no frames were read;
// 		- io.ErrUnexpectedEOF if fewer than n frames were read.
// The latest case means that source is exhausted and the returned buffer
// holds its last frames. A short read never happens mid-stream.
type Source interface {
	ReadFrames(n int) (signal.Float64, error)
	SampleRate() int
	NumChannels() int
	BitDepth() signal.BitDepth
	NumFrames() int64
	Close() error
}

// Output is a destination for audio frames. Write blocks until the
// destination consumed the buffer, which paces the render loop.
type Output interface {
	Write(signal.Float64) error
	Close() error
}

// Logger is a global interface for wavplay loggers.
type Logger interface {
	Debug(...interface{})
	Info(...interface{})
}

var (
	// ErrInvalidState is returned if a track or engine method cannot be
	// executed at this moment.
	ErrInvalidState = errors.New("invalid state")

	// ErrNotReady is returned on play attempt when track has no bound
	// output or source.
	ErrNotReady = errors.New("track is not ready")

	// ErrDeviceNotFound is returned when requested device id does not
	// match any enumerated device.
	ErrDeviceNotFound = errors.New("audio device not found")
)

// DecodeError is returned when a file cannot be used as a playback source.
type DecodeError struct {
	Path   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %v: %v", e.Path, e.Reason)
}
