package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindingsOrdered(t *testing.T) {
	var b bindings
	require.NoError(t, b.setPositional(2, "b"))
	require.NoError(t, b.setPositional(1, "a"))
	require.NoError(t, b.setPositional(3, nil))

	args, err := b.ordered()
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", nil}, args)
}

func TestBindingsMissingPosition(t *testing.T) {
	var b bindings
	require.NoError(t, b.setPositional(1, "a"))
	require.NoError(t, b.setPositional(3, "c"))

	_, err := b.ordered()
	assert.ErrorIs(t, err, ErrMissingBind)
	assert.Contains(t, err.Error(), "position 2")
}

func TestBindingsRejectsInvalidKeys(t *testing.T) {
	var b bindings
	assert.ErrorIs(t, b.setPositional(0, "x"), ErrInvalidPosition)
	assert.ErrorIs(t, b.setNamed("p1", "x"), ErrInvalidName)
	assert.ErrorIs(t, b.setNamed(":", "x"), ErrInvalidName)
}

func TestBindingsNamedRebind(t *testing.T) {
	var b bindings
	require.NoError(t, b.setNamed(":p1", "a"))
	require.NoError(t, b.setNamed(":p2", "b"))
	require.NoError(t, b.setNamed(":p1", "c"))

	assert.Equal(t, []namedValue{{"p1", "c"}, {"p2", "b"}}, b.named)
	assert.False(t, b.mixed())

	require.NoError(t, b.setPositional(1, "d"))
	assert.True(t, b.mixed())

	b.reset()
	assert.Empty(t, b.named)
	assert.Empty(t, b.positional)
}
