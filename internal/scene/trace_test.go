package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	for _, valid := range []string{"outgoing", "incoming", "both"} {
		dir, err := ParseDirection(valid)
		require.NoError(t, err)
		assert.Equal(t, Direction(valid), dir)
	}

	_, err := ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTrace(t *testing.T) {
	doc := mustParse(t, sceneFixture)

	t.Run("outgoing from a game object", func(t *testing.T) {
		edges, err := doc.Trace(100, DirectionOutgoing, 1)
		require.NoError(t, err)

		targets := map[int64]bool{}
		for _, e := range edges {
			assert.Equal(t, int64(100), e.Source)
			assert.Equal(t, 1, e.Depth)
			targets[e.Target] = true
		}
		assert.True(t, targets[101])
		assert.True(t, targets[102])
	})

	t.Run("incoming finds referrers", func(t *testing.T) {
		edges, err := doc.Trace(100, DirectionIncoming, 1)
		require.NoError(t, err)

		sources := map[int64]bool{}
		for _, e := range edges {
			sources[e.Source] = true
		}
		assert.True(t, sources[101], "transform references its owner")
		assert.True(t, sources[102], "script references its owner")
	})

	t.Run("depth grows the frontier", func(t *testing.T) {
		shallow, err := doc.Trace(100, DirectionOutgoing, 1)
		require.NoError(t, err)
		deep, err := doc.Trace(100, DirectionOutgoing, 3)
		require.NoError(t, err)
		assert.Greater(t, len(deep), len(shallow))
	})

	t.Run("unknown start", func(t *testing.T) {
		_, err := doc.Trace(987654, DirectionOutgoing, 2)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("terminates on reference cycles", func(t *testing.T) {
		cyclic := "%YAML 1.1\n" +
			"--- !u!114 &1\nMonoBehaviour:\n  next: {fileID: 2}\n" +
			"--- !u!114 &2\nMonoBehaviour:\n  next: {fileID: 3}\n" +
			"--- !u!114 &3\nMonoBehaviour:\n  next: {fileID: 1}\n"
		d := mustParse(t, cyclic)

		edges, err := d.Trace(1, DirectionBoth, 50)
		require.NoError(t, err)
		assert.NotEmpty(t, edges)

		seen := map[[2]int64]int{}
		for _, e := range edges {
			key := [2]int64{e.Source, e.Target}
			seen[key]++
			assert.Equal(t, 1, seen[key], "edge %v reported more than once", key)
		}
	})
}
