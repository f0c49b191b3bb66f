package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore(t *testing.T) {
	store := NewConfigStore()
	assert.Equal(t, ":memory:", store.Path())

	_, ok := store.Lookup("output.dir")
	assert.False(t, ok)

	require.NoError(t, store.Set("output.dir", "out"))
	require.NoError(t, store.Set("output.dir", "out2"))
	require.NoError(t, store.Set("match.hook_radius_m", 25.0))

	v, ok := store.Lookup("output.dir")
	assert.True(t, ok)
	assert.Equal(t, "out2", v)

	require.NoError(t, store.Unset("output.dir"))
	require.NoError(t, store.Unset("missing"))
	_, ok = store.Lookup("output.dir")
	assert.False(t, ok)

	v, ok = store.Lookup("match.hook_radius_m")
	assert.True(t, ok)
	assert.Equal(t, 25.0, v)
}
