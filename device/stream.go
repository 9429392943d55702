package device

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/dudk/wavplay"
	"github.com/dudk/wavplay/signal"
)

// Stream is a playback stream opened on a concrete output device. Write
// blocks until the device consumed the frames, which paces the render loop.
type Stream struct {
	stream      *portaudio.Stream
	buf         []float32
	bufferSize  int
	numChannels int

	closeOnce sync.Once
	closeErr  error
}

// OpenOutput opens and starts a playback stream pinned to the passed
// device.
func (c *Catalog) OpenOutput(d Device, sampleRate, numChannels, bufferSize int) (*Stream, error) {
	if d.info == nil {
		return nil, wavplay.ErrDeviceNotFound
	}
	if numChannels > d.OutChannels {
		return nil, fmt.Errorf("device %v has %d output channels, need %d", d.Name, d.OutChannels, numChannels)
	}

	s := &Stream{
		buf:         make([]float32, bufferSize*numChannels),
		bufferSize:  bufferSize,
		numChannels: numChannels,
	}
	params := portaudio.StreamParameters{
		Output: portaudio.StreamDeviceParameters{
			Device:   d.info,
			Channels: numChannels,
			Latency:  d.info.DefaultHighOutputLatency,
		},
		SampleRate:      float64(sampleRate),
		FramesPerBuffer: bufferSize,
	}
	stream, err := portaudio.OpenStream(params, &s.buf)
	if err != nil {
		return nil, fmt.Errorf("open stream on %v: %w", d.Name, err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("start stream on %v: %w", d.Name, err)
	}
	s.stream = stream
	return s, nil
}

// Write interleaves the buffer into the device buffer and submits it. The
// last chunk is padded with silence when the buffer holds fewer frames
// than a full device buffer.
func (s *Stream) Write(b signal.Float64) error {
	if b.NumChannels() != s.numChannels {
		return fmt.Errorf("buffer has %d channels, stream expects %d", b.NumChannels(), s.numChannels)
	}
	frames := b.Size()
	for offset := 0; offset < frames; offset += s.bufferSize {
		for i := 0; i < s.bufferSize; i++ {
			for j := 0; j < s.numChannels; j++ {
				if offset+i < frames {
					s.buf[i*s.numChannels+j] = float32(b[j][offset+i])
				} else {
					s.buf[i*s.numChannels+j] = 0
				}
			}
		}
		if err := s.stream.Write(); err != nil {
			return fmt.Errorf("write to stream: %w", err)
		}
	}
	return nil
}

// Close stops and closes the stream. Consequent calls return the result of
// the first one.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		if err := s.stream.Stop(); err != nil {
			s.closeErr = err
			_ = s.stream.Close()
			return
		}
		s.closeErr = s.stream.Close()
	})
	return s.closeErr
}
