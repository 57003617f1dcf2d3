package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGetClear(t *testing.T) {
	c, err := NewCache()
	require.NoError(t, err)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", "two")

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Del("a")
	_, ok = c.Get("a")
	assert.False(t, ok)

	c.ClearAll()
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Empty(t, c.keys)
}
