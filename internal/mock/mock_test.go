package mock_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/wavplay/internal/mock"
	"github.com/dudk/wavplay/signal"
)

func TestSource(t *testing.T) {
	src := &mock.Source{
		Limit:    100,
		Value:    0.5,
		Channels: 2,
		Rate:     44100,
		Depth:    signal.BitDepth16,
	}
	assert.Equal(t, 44100, src.SampleRate())
	assert.Equal(t, 2, src.NumChannels())
	assert.Equal(t, signal.BitDepth16, src.BitDepth())
	assert.Equal(t, int64(100), src.NumFrames())

	b, err := src.ReadFrames(64)
	assert.NoError(t, err)
	assert.Equal(t, 64, b.Size())
	assert.Equal(t, 0.5, b[0][0])

	b, err = src.ReadFrames(64)
	assert.Equal(t, io.ErrUnexpectedEOF, err)
	assert.Equal(t, 36, b.Size())

	_, err = src.ReadFrames(64)
	assert.Equal(t, io.EOF, err)

	assert.False(t, src.Closed())
	assert.NoError(t, src.Close())
	assert.True(t, src.Closed())
}

func TestSourceError(t *testing.T) {
	rerr := errors.New("test error")
	src := &mock.Source{Limit: 100, Channels: 1, ErrorOnRead: rerr}
	_, err := src.ReadFrames(64)
	assert.Equal(t, rerr, err)
}

func TestOutput(t *testing.T) {
	out := &mock.Output{}
	b := signal.EmptyFloat64(2, 64)
	assert.NoError(t, out.Write(b))
	assert.NoError(t, out.Write(b))

	writes, frames := out.Count()
	assert.Equal(t, 2, writes)
	assert.Equal(t, int64(128), frames)
	assert.Equal(t, b, out.Last())

	assert.False(t, out.Closed())
	assert.NoError(t, out.Close())
	assert.True(t, out.Closed())
}

func TestOutputError(t *testing.T) {
	werr := errors.New("test error")
	out := &mock.Output{ErrorOnWrite: werr, FailAfter: 1}
	b := signal.EmptyFloat64(1, 8)
	assert.NoError(t, out.Write(b))
	assert.Equal(t, werr, out.Write(b))

	writes, frames := out.Count()
	assert.Equal(t, 1, writes)
	assert.Equal(t, int64(8), frames)
}
