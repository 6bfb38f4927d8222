package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetField(t *testing.T) {
	doc := mustParse(t, sceneFixture)

	t.Run("top-level scalar", func(t *testing.T) {
		v, err := doc.GetField(doc.FindByID(100), "m_Name")
		require.NoError(t, err)
		assert.Equal(t, "Player", v)
	})

	t.Run("inline mapping value", func(t *testing.T) {
		v, err := doc.GetField(doc.FindByID(101), "m_LocalPosition")
		require.NoError(t, err)
		assert.Equal(t, "{x: 1, y: 2, z: 3}", v)
	})

	t.Run("nested mapping", func(t *testing.T) {
		v, err := doc.GetField(doc.FindByID(500), "m_Modification.m_TransformParent")
		require.NoError(t, err)
		assert.Equal(t, "{fileID: 0}", v)
	})

	t.Run("list element", func(t *testing.T) {
		v, err := doc.GetField(doc.FindByID(100), "m_Component[1]")
		require.NoError(t, err)
		assert.Equal(t, "{fileID: 102}", v)
	})

	t.Run("keyed field inside a list item", func(t *testing.T) {
		v, err := doc.GetField(doc.FindByID(500), "m_Modification.m_Modifications[1].propertyPath")
		require.NoError(t, err)
		assert.Equal(t, "m_Name", v)
	})

	t.Run("Array.data spelling addresses the same element", func(t *testing.T) {
		short, err := doc.GetField(doc.FindByID(100), "m_Component[0]")
		require.NoError(t, err)
		long, err := doc.GetField(doc.FindByID(100), "m_Component.Array.data[0]")
		require.NoError(t, err)
		assert.Equal(t, short, long)
	})

	t.Run("inline comment excluded from value", func(t *testing.T) {
		v, err := doc.GetField(doc.FindByID(102), "speed")
		require.NoError(t, err)
		assert.Equal(t, "5", v)
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := doc.GetField(doc.FindByID(100), "m_DoesNotExist")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("no case normalization", func(t *testing.T) {
		_, err := doc.GetField(doc.FindByID(100), "m_name")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("out-of-range index", func(t *testing.T) {
		_, err := doc.GetField(doc.FindByID(100), "m_Component[5]")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := doc.GetField(doc.FindByID(100), "")
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("unterminated index", func(t *testing.T) {
		_, err := doc.GetField(doc.FindByID(100), "m_Component[1")
		assert.ErrorIs(t, err, ErrMalformed)
	})
}

func TestSetField(t *testing.T) {
	t.Run("rewrites only the value portion", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		b := doc.FindByID(101)
		require.NoError(t, doc.SetField(b, "m_LocalPosition", "{x: 9, y: 2, z: 3}"))

		v, err := doc.GetField(b, "m_LocalPosition")
		require.NoError(t, err)
		assert.Equal(t, "{x: 9, y: 2, z: 3}", v)
		assert.True(t, doc.Dirty())
	})

	t.Run("preserves trailing comment", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		b := doc.FindByID(102)
		require.NoError(t, doc.SetField(b, "speed", "10"))
		assert.Contains(t, doc.Render(), "  speed: 10 # units per second\n")
	})

	t.Run("empty value keeps bare key form", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		b := doc.FindByID(102)
		require.NoError(t, doc.SetField(b, "m_Name", ""))
		assert.Contains(t, doc.Render(), "\n  m_Name:\n")
	})

	t.Run("rejects values that break the line format", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		b := doc.FindByID(100)
		err := doc.SetField(b, "m_Name", "two\nlines")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing field leaves block untouched", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		before := doc.Render()
		err := doc.SetField(doc.FindByID(100), "m_Missing", "1")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, before, doc.Render())
	})
}
