package track_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dudk/wavplay"
	"github.com/dudk/wavplay/internal/mock"
	"github.com/dudk/wavplay/track"
)

func TestRegistryIds(t *testing.T) {
	registry := track.NewRegistry()

	first := registry.Add()
	second := registry.Add()
	assert.NotEqual(t, first, second)

	// ids are not reused after removal
	require.NoError(t, registry.Remove(first))
	third := registry.Add()
	assert.NotEqual(t, first, third)
	assert.NotEqual(t, second, third)
}

func TestRegistryGet(t *testing.T) {
	registry := track.NewRegistry()
	id := registry.Add()

	tr, ok := registry.Get(id)
	assert.True(t, ok)
	assert.Equal(t, id, tr.ID())

	// unknown id is distinguishable from every real one
	missing, ok := registry.Get(9999)
	assert.False(t, ok)
	assert.Nil(t, missing)
}

func TestRegistryRemove(t *testing.T) {
	registry := track.NewRegistry()
	id := registry.Add()
	tr, _ := registry.Get(id)

	require.NoError(t, tr.Bind(&mock.Output{}, &mock.Source{Limit: 100, Channels: 1, Rate: 44100}))
	require.NoError(t, tr.Play())

	// playing tracks cannot be removed
	assert.Equal(t, wavplay.ErrInvalidState, registry.Remove(id))

	require.NoError(t, tr.Stop())
	require.NoError(t, registry.Remove(id))
	_, ok := registry.Get(id)
	assert.False(t, ok)

	// removing an unknown id is a no-op
	assert.NoError(t, registry.Remove(id))
}

func TestRegistryPlaying(t *testing.T) {
	registry := track.NewRegistry()
	first, _ := registry.Get(registry.Add())
	second, _ := registry.Get(registry.Add())

	assert.Empty(t, registry.Playing())

	require.NoError(t, first.Bind(&mock.Output{}, &mock.Source{Limit: 100, Channels: 1, Rate: 44100}))
	require.NoError(t, second.Bind(&mock.Output{}, &mock.Source{Limit: 100, Channels: 1, Rate: 44100}))
	require.NoError(t, second.Play())

	playing := registry.Playing()
	require.Len(t, playing, 1)
	assert.Equal(t, second.ID(), playing[0].ID())

	require.NoError(t, first.Play())
	playing = registry.Playing()
	require.Len(t, playing, 2)
	// creation order is kept
	assert.Equal(t, first.ID(), playing[0].ID())
	assert.Equal(t, second.ID(), playing[1].ID())
}
