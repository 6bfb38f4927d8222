package scene

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireUniqueIDs asserts no two blocks share a file ID.
func requireUniqueIDs(t *testing.T, doc *Document) {
	t.Helper()
	seen := map[int64]bool{}
	for _, b := range doc.Blocks() {
		require.False(t, seen[b.FileID], "duplicate file ID %d", b.FileID)
		seen[b.FileID] = true
	}
}

func TestAddBlock(t *testing.T) {
	t.Run("game object at root", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		before := len(doc.Blocks())

		b, err := doc.AddBlock(ClassGameObject, "Pickup", 0)
		require.NoError(t, err)
		require.Len(t, doc.Blocks(), before+2, "GameObject arrives with its Transform")
		requireUniqueIDs(t, doc)

		assert.Equal(t, "Pickup", doc.DisplayName(b))
		assert.Zero(t, doc.ParentOf(b.FileID))
		require.NotNil(t, doc.TransformOf(b.FileID))
	})

	t.Run("game object under a parent", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)

		b, err := doc.AddBlock(ClassGameObject, "Weapon", 100)
		require.NoError(t, err)
		assert.Equal(t, int64(100), doc.ParentOf(b.FileID))
		assert.Contains(t, doc.ChildrenOf(100), b.FileID)
		requireUniqueIDs(t, doc)
	})

	t.Run("component on a game object", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)

		b, err := doc.AddBlock(ClassRigidbody, "", 200)
		require.NoError(t, err)
		assert.Equal(t, "Rigidbody", b.TypeName())
		assert.Contains(t, doc.ComponentRefs(doc.FindByID(200)), b.FileID)
	})

	t.Run("script container gets script fields", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)

		b, err := doc.AddBlock(ClassMonoBehaviour, "Mover", 200)
		require.NoError(t, err)
		v, err := doc.GetField(b, "m_Script")
		require.NoError(t, err)
		assert.Equal(t, "{fileID: 0}", v)
		name, err := doc.GetField(b, "m_Name")
		require.NoError(t, err)
		assert.Equal(t, "Mover", name)
	})

	t.Run("invalid name", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		_, err := doc.AddBlock(ClassGameObject, "a/b", 0)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing parent", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		_, err := doc.AddBlock(ClassGameObject, "Orphan", 12345)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("component parent fails before inserting", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		before := len(doc.Blocks())
		_, err := doc.AddBlock(ClassGameObject, "X", 101)
		assert.ErrorIs(t, err, ErrMalformed, "a Transform cannot parent a GameObject")
		assert.Len(t, doc.Blocks(), before, "failed add must not leave partial blocks")
	})
}

func TestDeleteBlock(t *testing.T) {
	t.Run("refuses non-cascade delete with children", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		err := doc.DeleteBlock(100, false)
		assert.ErrorIs(t, err, ErrHasChildren)
		assert.NotNil(t, doc.FindByID(100))
	})

	t.Run("cascade removes the whole subtree", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		require.NoError(t, doc.DeleteBlock(100, true))

		for _, id := range []int64{100, 101, 102, 300, 301} {
			assert.Nil(t, doc.FindByID(id), "block %d should be gone", id)
		}
		assert.NotNil(t, doc.FindByID(200), "unrelated objects survive")
	})

	t.Run("leaf delete detaches from parent list", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		require.NoError(t, doc.DeleteBlock(300, false))

		assert.Nil(t, doc.FindByID(300))
		assert.Nil(t, doc.FindByID(301))
		assert.Empty(t, doc.ChildrenOf(100))
	})

	t.Run("component delete prunes the owner list", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		require.NoError(t, doc.DeleteBlock(102, false))

		assert.Nil(t, doc.FindByID(102))
		assert.Equal(t, []int64{101}, doc.ComponentRefs(doc.FindByID(100)))
	})

	t.Run("missing block", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		assert.ErrorIs(t, doc.DeleteBlock(424242, false), ErrNotFound)
	})

	t.Run("prefab instance takes its stripped companions", func(t *testing.T) {
		content := sceneFixture +
			"--- !u!4 &501 stripped\n" +
			"Transform:\n" +
			"  m_CorrespondingSourceObject: {fileID: 400004, guid: 11112222333344445555666677778888, type: 3}\n" +
			"  m_PrefabInstance: {fileID: 500}\n" +
			"  m_PrefabAsset: {fileID: 0}\n"
		doc := mustParse(t, content)
		require.NotNil(t, doc.FindByID(501))

		require.NoError(t, doc.DeleteBlock(500, false))
		assert.Nil(t, doc.FindByID(500))
		assert.Nil(t, doc.FindByID(501), "stripped companion goes with its instance")
	})
}

func TestReparent(t *testing.T) {
	t.Run("moves an object under a new parent", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		require.NoError(t, doc.Reparent("Enemy", "Player", false))

		assert.Equal(t, int64(100), doc.ParentOf(200))
		assert.ElementsMatch(t, []int64{300, 200}, doc.ChildrenOf(100))
	})

	t.Run("moves a nested object to the root", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		require.NoError(t, doc.Reparent("Child", RootTarget, false))

		assert.Zero(t, doc.ParentOf(300))
		assert.Empty(t, doc.ChildrenOf(100))

		v, err := doc.GetField(doc.FindByID(301), "m_Father")
		require.NoError(t, err)
		assert.Equal(t, "{fileID: 0}", v)
	})

	t.Run("rejects self-parenting", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		assert.ErrorIs(t, doc.Reparent("Player", "Player", false), ErrValidation)
	})

	t.Run("rejects cycles through descendants", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		err := doc.Reparent("Player", "Child", false)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, int64(100), doc.ParentOf(300), "hierarchy unchanged after refusal")
	})

	t.Run("by file ID", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		require.NoError(t, doc.Reparent("200", "100", true))
		assert.Equal(t, int64(100), doc.ParentOf(200))
	})

	t.Run("parent without a children list leaves the hierarchy untouched", func(t *testing.T) {
		const fixture = `%YAML 1.1
%TAG !u! tag:unity3d.com,2011:
--- !u!1 &100
GameObject:
  m_Component:
  - component: {fileID: 101}
  m_Name: Player
--- !u!4 &101
Transform:
  m_GameObject: {fileID: 100}
  m_Children:
  - {fileID: 301}
  m_Father: {fileID: 0}
--- !u!1 &300
GameObject:
  m_Component:
  - component: {fileID: 301}
  m_Name: Child
--- !u!4 &301
Transform:
  m_GameObject: {fileID: 300}
  m_Children: []
  m_Father: {fileID: 101}
--- !u!1 &600
GameObject:
  m_Component:
  - component: {fileID: 601}
  m_Name: Broken
--- !u!4 &601
Transform:
  m_GameObject: {fileID: 600}
  m_Father: {fileID: 0}
`
		doc := mustParse(t, fixture)
		before := doc.Render()

		err := doc.Reparent("Child", "Broken", false)
		assert.ErrorIs(t, err, ErrMalformed)
		assert.Equal(t, before, doc.Render(), "no partial rewrite")
		assert.Equal(t, int64(100), doc.ParentOf(300), "old parent keeps the child")
		assert.Equal(t, []int64{300}, doc.ChildrenOf(100))
	})
}

func TestCloneBlock(t *testing.T) {
	t.Run("clones a subtree with fresh IDs", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		before := len(doc.Blocks())

		clone, err := doc.CloneBlock(100)
		require.NoError(t, err)
		require.Len(t, doc.Blocks(), before+5, "Player, Transform, script, Child, Child's Transform")
		requireUniqueIDs(t, doc)

		assert.NotEqual(t, int64(100), clone.FileID)
		assert.Equal(t, "Player", doc.DisplayName(clone))

		children := doc.ChildrenOf(clone.FileID)
		require.Len(t, children, 1)
		assert.Equal(t, "Child", doc.DisplayName(doc.FindByID(children[0])))
		assert.Equal(t, []int64{300}, doc.ChildrenOf(100), "original subtree untouched")
	})

	t.Run("internal references rewritten, external kept", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		clone, err := doc.CloneBlock(300)
		require.NoError(t, err)

		cloneTransform := doc.TransformOf(clone.FileID)
		require.NotNil(t, cloneTransform)

		owner, err := doc.GetField(cloneTransform, "m_GameObject")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("{fileID: %d}", clone.FileID), owner)

		father, err := doc.GetField(cloneTransform, "m_Father")
		require.NoError(t, err)
		assert.Equal(t, "{fileID: 101}", father, "parent is outside the copied set")
		assert.ElementsMatch(t, []int64{301, cloneTransform.FileID}, doc.childTransformRefs(doc.FindByID(101)))
	})

	t.Run("missing source", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		_, err := doc.CloneBlock(31337)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
