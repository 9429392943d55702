// Package wav implements a playback source backed by a PCM wav file.
package wav

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/dudk/wavplay"
	"github.com/dudk/wavplay/signal"
)

// pcmFormat is the only wav audio format which can be played back.
const pcmFormat = 1

// Source reads frames from a wav file. It is owned by a single track and
// cannot be shared: reads advance the file cursor.
type Source struct {
	path        string
	file        *os.File
	decoder     *wav.Decoder
	ib          *audio.IntBuffer
	numChannels int
	sampleRate  int
	bitDepth    signal.BitDepth
	numFrames   int64
	read        int64
}

// Open validates the wav container at path and returns a source ready for
// sequential reads. Validation failures are returned as *wavplay.DecodeError.
func Open(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		_ = file.Close()
		return nil, &wavplay.DecodeError{Path: path, Reason: "not a valid wav file"}
	}

	if err := validate(decoder); err != nil {
		_ = file.Close()
		return nil, &wavplay.DecodeError{Path: path, Reason: err.Error()}
	}

	if err := decoder.FwdToPCM(); err != nil {
		_ = file.Close()
		return nil, &wavplay.DecodeError{Path: path, Reason: fmt.Sprintf("no pcm data: %v", err)}
	}

	numChannels := int(decoder.NumChans)
	bitDepth := signal.BitDepth(decoder.BitDepth)
	bytesPerFrame := int64(numChannels) * int64(bitDepth/8)

	return &Source{
		path:        path,
		file:        file,
		decoder:     decoder,
		numChannels: numChannels,
		sampleRate:  int(decoder.SampleRate),
		bitDepth:    bitDepth,
		numFrames:   decoder.PCMLen() / bytesPerFrame,
		ib: &audio.IntBuffer{
			Format:         decoder.Format(),
			SourceBitDepth: int(decoder.BitDepth),
		},
	}, nil
}

// validate checks wav attributes which the decoder accepts but playback
// cannot handle.
func validate(decoder *wav.Decoder) error {
	if decoder.WavAudioFormat != pcmFormat {
		return fmt.Errorf("unsupported compression code %d", decoder.WavAudioFormat)
	}
	if decoder.NumChans == 0 {
		return fmt.Errorf("zero channels")
	}
	if decoder.SampleRate == 0 {
		return fmt.Errorf("zero sample rate")
	}
	if !signal.BitDepth(decoder.BitDepth).Supported() {
		return fmt.Errorf("unsupported bit depth %d", decoder.BitDepth)
	}
	return nil
}

// ReadFrames returns up to n frames from the current cursor. io.EOF is
// returned when the source was already exhausted, io.ErrUnexpectedEOF
// together with the remaining frames on the last read. A short read never
// happens mid-stream.
func (s *Source) ReadFrames(n int) (signal.Float64, error) {
	if n <= 0 {
		return nil, nil
	}
	samples := n * s.numChannels
	if cap(s.ib.Data) < samples {
		s.ib.Data = make([]int, samples)
	}
	s.ib.Data = s.ib.Data[:samples]

	read, err := s.decoder.PCMBuffer(s.ib)
	if err != nil {
		return nil, fmt.Errorf("read %v: %w", s.path, err)
	}
	if read == 0 {
		return nil, io.EOF
	}

	frames := read / s.numChannels
	s.read += int64(frames)
	b := signal.InterInt{
		Data:        s.ib.Data[:read],
		NumChannels: s.numChannels,
		BitDepth:    s.bitDepth,
	}.AsFloat64()
	if frames < n {
		return b, io.ErrUnexpectedEOF
	}
	return b, nil
}

// SampleRate returns wav sample rate.
func (s *Source) SampleRate() int {
	return s.sampleRate
}

// NumChannels returns number of channels in the wav data.
func (s *Source) NumChannels() int {
	return s.numChannels
}

// BitDepth returns the bit depth of the wav data.
func (s *Source) BitDepth() signal.BitDepth {
	return s.bitDepth
}

// NumFrames returns the total number of frames in the wav data.
func (s *Source) NumFrames() int64 {
	return s.numFrames
}

// Close closes the underlying file.
func (s *Source) Close() error {
	return s.file.Close()
}
