package scene

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassRegistry(t *testing.T) {
	assert.Equal(t, "GameObject", ClassName(ClassGameObject))
	assert.Equal(t, "PrefabInstance", ClassName(ClassPrefabInstance))
	assert.Equal(t, "Class9999", ClassName(9999))

	id, ok := ClassIDFor("transform")
	require.True(t, ok)
	assert.Equal(t, ClassTransform, id)

	_, ok = ClassIDFor("NoSuchType")
	assert.False(t, ok)
}

func TestAnchorFormat(t *testing.T) {
	assert.Equal(t, "--- !u!1 &42", newAnchor(ClassGameObject, 42, false))
	assert.Equal(t, "--- !u!4 &-7 stripped", newAnchor(ClassTransform, -7, true))

	b := &Block{FileID: 42, ClassID: ClassGameObject, anchor: newAnchor(ClassGameObject, 42, false)}
	assert.Equal(t, "--- !u!1 &42", b.Anchor())
	assert.Equal(t, "GameObject", b.TypeName())
}

func TestNewFileID(t *testing.T) {
	doc := mustParse(t, sceneFixture)
	seen := map[int64]bool{}
	for i := 0; i < 100; i++ {
		id := doc.newFileID()
		assert.Positive(t, id)
		assert.False(t, seen[id])
		assert.Nil(t, doc.FindByID(id))
		seen[id] = true
	}
}

func TestNewGUID(t *testing.T) {
	hex32 := regexp.MustCompile(`^[0-9a-f]{32}$`)
	a, b := NewGUID(), NewGUID()
	assert.Regexp(t, hex32, a)
	assert.Regexp(t, hex32, b)
	assert.NotEqual(t, a, b)
}

func TestValidateEmbeddedName(t *testing.T) {
	assert.NoError(t, ValidateEmbeddedName("name", "Main Camera (1)"))

	for _, bad := range []string{"a/b", "a\\b", "a\nb", "a\rb", "a\x00b"} {
		assert.ErrorIs(t, ValidateEmbeddedName("name", bad), ErrValidation, "input %q", bad)
	}
}
