package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModifications(t *testing.T) {
	doc := mustParse(t, sceneFixture)
	instance := doc.FindByID(500)

	mods := doc.Modifications(instance)
	require.Len(t, mods, 2)

	assert.Equal(t, int64(400004), mods[0].TargetFileID)
	assert.Equal(t, turretGUID, mods[0].TargetGUID)
	assert.Equal(t, "m_RootOrder", mods[0].PropertyPath)
	assert.Equal(t, "2", mods[0].Value)
	assert.Equal(t, "{fileID: 0}", mods[0].ObjectRef)

	assert.Equal(t, "m_Name", mods[1].PropertyPath)
	assert.Equal(t, "Turret", mods[1].Value)

	assert.Equal(t, 2, doc.ModificationCount(instance))
	assert.Equal(t, turretGUID, doc.SourceGUID(instance))
	assert.Zero(t, doc.TransformParent(instance))
}

func TestUpsertOverride(t *testing.T) {
	t.Run("replaces an existing entry in place", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		instance := doc.FindByID(500)

		require.NoError(t, doc.UpsertOverride(instance, 400000, "", "m_Name", "Cannon", ""))

		mods := doc.Modifications(instance)
		require.Len(t, mods, 2, "replace must not grow the list")
		assert.Equal(t, "Cannon", mods[1].Value)
	})

	t.Run("appends a new entry with derived guid", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		instance := doc.FindByID(500)

		require.NoError(t, doc.UpsertOverride(instance, 400008, "", "m_Enabled", "0", ""))

		mods := doc.Modifications(instance)
		require.Len(t, mods, 3)
		last := mods[2]
		assert.Equal(t, int64(400008), last.TargetFileID)
		assert.Equal(t, turretGUID, last.TargetGUID, "guid falls back to the source prefab")
		assert.Equal(t, "m_Enabled", last.PropertyPath)
		assert.Equal(t, "0", last.Value)
		assert.Equal(t, "{fileID: 0}", last.ObjectRef)
	})

	t.Run("object reference overrides carry the reference", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		instance := doc.FindByID(500)

		require.NoError(t, doc.UpsertOverride(instance, 400008, "", "target", "", "{fileID: 201}"))

		mods := doc.Modifications(instance)
		assert.Equal(t, "{fileID: 201}", mods[len(mods)-1].ObjectRef)
	})

	t.Run("rejects non-instance blocks", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		err := doc.UpsertOverride(doc.FindByID(100), 1, "", "m_Name", "x", "")
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("rejects multi-line values", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		err := doc.UpsertOverride(doc.FindByID(500), 400000, "", "m_Name", "a\nb", "")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestRemoveOverride(t *testing.T) {
	t.Run("removes one entry", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		instance := doc.FindByID(500)

		require.NoError(t, doc.RemoveOverride(instance, 400004, "m_RootOrder"))
		mods := doc.Modifications(instance)
		require.Len(t, mods, 1)
		assert.Equal(t, "m_Name", mods[0].PropertyPath)
	})

	t.Run("last removal collapses the list", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		instance := doc.FindByID(500)

		require.NoError(t, doc.RemoveOverride(instance, 400004, "m_RootOrder"))
		require.NoError(t, doc.RemoveOverride(instance, 400000, "m_Name"))

		assert.Empty(t, doc.Modifications(instance))
		v, err := doc.GetField(instance, "m_Modification.m_Modifications")
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("missing entry is an error", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		err := doc.RemoveOverride(doc.FindByID(500), 400004, "m_NoSuchPath")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRemovalLists(t *testing.T) {
	t.Run("add and read back", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		instance := doc.FindByID(500)

		require.NoError(t, doc.AddRemovedComponent(instance, 400008, ""))
		assert.Equal(t, []int64{400008}, doc.RemovedComponents(instance))

		require.NoError(t, doc.AddRemovedGameObject(instance, 400000, ""))
		assert.Equal(t, []int64{400000}, doc.RemovedGameObjects(instance))
	})

	t.Run("duplicate add is a no-op", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		instance := doc.FindByID(500)

		require.NoError(t, doc.AddRemovedComponent(instance, 400008, ""))
		require.NoError(t, doc.AddRemovedComponent(instance, 400008, ""))
		assert.Len(t, doc.RemovedComponents(instance), 1)
	})

	t.Run("remove restores inline empty form", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		instance := doc.FindByID(500)

		require.NoError(t, doc.AddRemovedComponent(instance, 400008, ""))
		require.NoError(t, doc.RemoveRemovedComponent(instance, 400008))
		assert.Empty(t, doc.RemovedComponents(instance))

		v, err := doc.GetField(instance, "m_Modification.m_RemovedComponents")
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("removing an absent entry is an error", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		err := doc.RemoveRemovedGameObject(doc.FindByID(500), 12345)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("round-trips through render", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		instance := doc.FindByID(500)
		require.NoError(t, doc.AddRemovedComponent(instance, 400008, ""))

		reparsed := mustParse(t, doc.Render())
		assert.Equal(t, []int64{400008}, reparsed.RemovedComponents(reparsed.FindByID(500)))
	})
}
