package scene

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnpackInstance(t *testing.T) {
	source := fixtureSource{turretGUID: prefabFixture}

	t.Run("materializes the template", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)

		root, err := doc.UnpackInstance(500, source)
		require.NoError(t, err)
		require.NotNil(t, root)
		requireUniqueIDs(t, doc)

		assert.Nil(t, doc.FindByID(500), "instance block is consumed")
		assert.Equal(t, "Turret", doc.DisplayName(root), "name override applied")
		assert.NotEqual(t, int64(400000), root.FileID, "template IDs are re-minted")

		transform := doc.TransformOf(root.FileID)
		require.NotNil(t, transform)
		order, err := doc.GetField(transform, "m_RootOrder")
		require.NoError(t, err)
		assert.Equal(t, "2", order, "value override applied to the copied transform")

		comps := doc.ComponentsOf(root.FileID, nil)
		require.Len(t, comps, 2)
		assert.Equal(t, "MonoBehaviour", comps[1].TypeName)
	})

	t.Run("attaches under the host parent", func(t *testing.T) {
		content := sceneFixture
		doc := mustParse(t, content)
		instance := doc.FindByID(500)
		require.NoError(t, doc.SetField(instance, "m_Modification.m_TransformParent", "{fileID: 201}"))

		root, err := doc.UnpackInstance(500, source)
		require.NoError(t, err)
		assert.Equal(t, int64(200), doc.ParentOf(root.FileID))
		assert.Equal(t, []int64{root.FileID}, doc.ChildrenOf(200))
	})

	t.Run("honors removed components", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		instance := doc.FindByID(500)
		require.NoError(t, doc.AddRemovedComponent(instance, 400008, ""))

		root, err := doc.UnpackInstance(500, source)
		require.NoError(t, err)

		comps := doc.ComponentsOf(root.FileID, nil)
		require.Len(t, comps, 1)
		assert.Equal(t, "Transform", comps[0].TypeName)
	})

	t.Run("stale overrides are skipped", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		instance := doc.FindByID(500)
		require.NoError(t, doc.UpsertOverride(instance, 400008, "", "m_Missing", "1", ""))

		root, err := doc.UnpackInstance(500, source)
		require.NoError(t, err)
		assert.NotNil(t, root)
	})

	t.Run("unresolvable template", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		_, err := doc.UnpackInstance(500, fixtureSource{})
		assert.ErrorIs(t, err, ErrTemplateUnresolved)
		assert.NotNil(t, doc.FindByID(500), "failure leaves the instance alone")
	})

	t.Run("template without a root object", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		before := doc.Render()
		dangling := strings.Replace(prefabFixture, "m_Father: {fileID: 0}", "m_Father: {fileID: 999}", 1)

		root, err := doc.UnpackInstance(500, fixtureSource{turretGUID: dangling})
		assert.ErrorIs(t, err, ErrMalformed)
		assert.Nil(t, root)
		assert.NotNil(t, doc.FindByID(500), "failure leaves the instance alone")
		assert.Equal(t, before, doc.Render(), "no template blocks spliced in")
	})

	t.Run("nil source", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		_, err := doc.UnpackInstance(500, nil)
		assert.ErrorIs(t, err, ErrTemplateUnresolved)
	})

	t.Run("non-instance block", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		_, err := doc.UnpackInstance(100, source)
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("missing block", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		_, err := doc.UnpackInstance(777, source)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
