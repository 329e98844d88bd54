package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capacity int

type label string

func TestEmpty(t *testing.T) {
	assert.Equal(t, 0, Empty.Len())

	_, ok := Get[capacity](Empty)
	assert.False(t, ok)
	assert.False(t, Has[capacity](Empty))
}

func TestWithAndGet(t *testing.T) {
	s := With(Empty, capacity(16))

	got, ok := Get[capacity](s)
	require.True(t, ok)
	assert.Equal(t, capacity(16), got)
	assert.True(t, Has[capacity](s))
	assert.Equal(t, 1, s.Len())

	// Components of other types remain absent.
	_, ok = Get[label](s)
	assert.False(t, ok)
}

func TestWithIsImmutable(t *testing.T) {
	a := With(Empty, capacity(1))
	b := With(a, label("vec"))

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, b.Len())
	assert.False(t, Has[label](a))
}

func TestWithReplacesSameType(t *testing.T) {
	s := With(With(Empty, capacity(1)), capacity(2))

	got, ok := Get[capacity](s)
	require.True(t, ok)
	assert.Equal(t, capacity(2), got)
	assert.Equal(t, 1, s.Len())
}

func TestZeroValueIsEmpty(t *testing.T) {
	var s Set
	assert.Equal(t, 0, s.Len())
	assert.False(t, Has[capacity](s))

	s = With(s, capacity(3))
	assert.True(t, Has[capacity](s))
}

// A struct with a conditional field pays only for what it carries.
func TestConditionalField(t *testing.T) {
	type buffer struct {
		data       []byte
		components Set
	}

	plain := buffer{data: make([]byte, 4)}
	tracked := buffer{data: make([]byte, 4), components: With(Empty, capacity(64))}

	if c, ok := Get[capacity](tracked.components); ok {
		assert.Equal(t, capacity(64), c)
	} else {
		t.Fatal("expected tracked buffer to carry a capacity component")
	}

	_, ok := Get[capacity](plain.components)
	assert.False(t, ok)
}
