package signal_test

import (
	"math"
	"testing"
	"time"

	"github.com/dudk/wavplay/signal"
	"github.com/stretchr/testify/assert"
)

func TestInterIntAsFloat64(t *testing.T) {
	tests := []struct {
		ints        []int
		numChannels int
		bitDepth    signal.BitDepth
		expected    [][]float64
	}{
		{
			ints:        []int{1, 2, 1, 2, 1, 2, 1, 2},
			numChannels: 2,
			expected: [][]float64{
				{1, 1, 1, 1},
				{2, 2, 2, 2},
			},
		},
		{
			ints:        []int{1, 2, 1, 2, 1, 2, 1},
			numChannels: 2,
			expected: [][]float64{
				{1, 1, 1, 1},
				{2, 2, 2, 0},
			},
		},
		{
			ints:        []int{math.MaxInt16, math.MaxInt16 * 2},
			numChannels: 2,
			bitDepth:    signal.BitDepth16,
			expected: [][]float64{
				{1},
				{2},
			},
		},
		{
			ints:        []int{math.MaxInt32},
			numChannels: 1,
			bitDepth:    signal.BitDepth32,
			expected: [][]float64{
				{1},
			},
		},
		{
			ints:        []int{1<<23 - 1},
			numChannels: 1,
			bitDepth:    signal.BitDepth24,
			expected: [][]float64{
				{1},
			},
		},
		{
			// 8-bit pcm is unsigned, 128 is digital silence
			ints:        []int{128, 0, 255, 192},
			numChannels: 1,
			bitDepth:    signal.BitDepth8,
			expected: [][]float64{
				{0, -1, 127.0 / 128, 0.5},
			},
		},
		{
			ints:     nil,
			expected: nil,
		},
	}

	for _, test := range tests {
		ints := signal.InterInt{
			Data:        test.ints,
			NumChannels: test.numChannels,
			BitDepth:    test.bitDepth,
		}
		floats := ints.AsFloat64()
		assert.Equal(t, len(test.expected), floats.NumChannels())
		for i := range test.expected {
			assert.Equal(t, len(test.expected[i]), len(floats[i]))
			for j, expected := range test.expected[i] {
				assert.Equal(t, expected, floats[i][j])
			}
		}
	}
}

func TestBitDepthSupported(t *testing.T) {
	assert.True(t, signal.BitDepth8.Supported())
	assert.True(t, signal.BitDepth16.Supported())
	assert.True(t, signal.BitDepth24.Supported())
	assert.True(t, signal.BitDepth32.Supported())
	assert.False(t, signal.BitDepth(12).Supported())
	assert.False(t, signal.BitDepth(0).Supported())
}

func TestDurationOf(t *testing.T) {
	assert.Equal(t, time.Second, signal.DurationOf(44100, 44100))
	assert.Equal(t, 2*time.Second, signal.DurationOf(44100, 88200))
	assert.Equal(t, 500*time.Millisecond, signal.DurationOf(44100, 22050))
}

func TestFloat64(t *testing.T) {
	var empty signal.Float64
	assert.Equal(t, 0, empty.NumChannels())
	assert.Equal(t, 0, empty.Size())

	buf := signal.EmptyFloat64(2, 8)
	assert.Equal(t, 2, buf.NumChannels())
	assert.Equal(t, 8, buf.Size())

	buf = signal.Float64{{0.5, -0.5}, {1, -1}}
	buf = buf.Gain(0.5)
	assert.Equal(t, signal.Float64{{0.25, -0.25}, {0.5, -0.5}}, buf)
	same := buf.Gain(1)
	assert.Equal(t, buf, same)
}
