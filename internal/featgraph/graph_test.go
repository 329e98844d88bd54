package featgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.Empty(t, g.nodes)
}

func TestAddFeature(t *testing.T) {
	g := New()

	g.AddFeature("math")
	assert.Len(t, g.nodes, 1)

	g.AddFeature("math") // idempotent
	assert.Len(t, g.nodes, 1)

	g.AddFeature("window")
	assert.Len(t, g.nodes, 2)
}

func TestAddEnables(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddFeature("full")
		g.AddFeature("window")

		require.NoError(t, g.AddEnables("full", "window"))
		assert.Contains(t, g.nodes["full"].enables, "window")
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddFeature("math")

		err := g.AddEnables("dne", "math")
		assert.ErrorContains(t, err, "feature not found")

		err = g.AddEnables("math", "dne")
		assert.ErrorContains(t, err, "feature not found")

		err = g.AddEnables("math", "math")
		assert.ErrorContains(t, err, "cannot enable itself")
	})
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph", func(t *testing.T) {
		assert.NoError(t, New().DetectCycles())
	})

	t.Run("acyclic enables chain", func(t *testing.T) {
		g := New()
		g.AddFeature("full")
		g.AddFeature("window")
		g.AddFeature("math")
		require.NoError(t, g.AddEnables("full", "window"))
		require.NoError(t, g.AddEnables("full", "math"))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("direct cycle is detected", func(t *testing.T) {
		g := New()
		g.AddFeature("a")
		g.AddFeature("b")
		require.NoError(t, g.AddEnables("a", "b"))
		require.NoError(t, g.AddEnables("b", "a"))
		err := g.DetectCycles()
		assert.ErrorContains(t, err, "feature cycle detected")
	})

	t.Run("longer cycle is detected", func(t *testing.T) {
		g := New()
		for _, f := range []string{"a", "b", "c", "d"} {
			g.AddFeature(f)
		}
		require.NoError(t, g.AddEnables("a", "b"))
		require.NoError(t, g.AddEnables("b", "c"))
		require.NoError(t, g.AddEnables("c", "d"))
		require.NoError(t, g.AddEnables("d", "a"))
		assert.ErrorContains(t, g.DetectCycles(), "feature cycle detected")
	})
}

func TestClosure(t *testing.T) {
	g := New()
	for _, f := range []string{"full", "window", "math", "unused"} {
		g.AddFeature(f)
	}
	require.NoError(t, g.AddEnables("full", "window"))
	require.NoError(t, g.AddEnables("full", "math"))

	t.Run("roots plus everything reachable, sorted", func(t *testing.T) {
		got, err := g.Closure([]string{"full"})
		require.NoError(t, err)
		assert.Equal(t, []string{"full", "math", "window"}, got)
	})

	t.Run("leaf root is just itself", func(t *testing.T) {
		got, err := g.Closure([]string{"math"})
		require.NoError(t, err)
		assert.Equal(t, []string{"math"}, got)
	})

	t.Run("no roots means empty closure", func(t *testing.T) {
		got, err := g.Closure(nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unknown root is an error", func(t *testing.T) {
		_, err := g.Closure([]string{"graphics"})
		assert.ErrorContains(t, err, "feature not found")
	})
}
