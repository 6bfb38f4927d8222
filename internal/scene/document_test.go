package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("recognizes a well-formed document", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		assert.Len(t, doc.Blocks(), 8)
		assert.NotNil(t, doc.FindByID(100))
		assert.Equal(t, "GameObject", doc.FindByID(100).TypeName())
		assert.Len(t, doc.FindByClass(ClassTransform), 3)
	})

	t.Run("rejects missing signature", func(t *testing.T) {
		_, err := Parse("GameObject:\n  m_Name: X\n")
		assert.ErrorIs(t, err, ErrNotRecognized)
	})

	t.Run("rejects documents without anchors", func(t *testing.T) {
		_, err := Parse("%YAML 1.1\n%TAG !u! tag:unity3d.com,2011:\n")
		assert.ErrorIs(t, err, ErrNotRecognized)
	})

	t.Run("parses stripped and negative anchors", func(t *testing.T) {
		doc := mustParse(t, "%YAML 1.1\n--- !u!4 &-7637222528103358043 stripped\nTransform:\n  m_Father: {fileID: 0}\n")
		b := doc.FindByID(-7637222528103358043)
		require.NotNil(t, b)
		assert.True(t, b.Stripped)
	})
}

func TestRenderRoundTrip(t *testing.T) {
	t.Run("byte identity", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		assert.Empty(t, cmp.Diff(sceneFixture, doc.Render()))
	})

	t.Run("preserves crlf", func(t *testing.T) {
		crlf := strings.ReplaceAll(sceneFixture, "\n", "\r\n")
		doc := mustParse(t, crlf)
		assert.Equal(t, crlf, doc.Render())
	})

	t.Run("preserves missing trailing newline", func(t *testing.T) {
		content := strings.TrimSuffix(sceneFixture, "\n")
		doc := mustParse(t, content)
		assert.Equal(t, content, doc.Render())
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.unity"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("loads from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "level.unity")
		require.NoError(t, os.WriteFile(path, []byte(sceneFixture), 0644))

		doc, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, path, doc.Path())
		assert.False(t, doc.Dirty())
	})
}

func TestSave(t *testing.T) {
	t.Run("edit touches only its line", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "level.unity")
		require.NoError(t, os.WriteFile(path, []byte(sceneFixture), 0644))

		doc, err := Load(path)
		require.NoError(t, err)
		require.NoError(t, doc.SetField(doc.FindByID(100), "m_Name", "Hero"))
		require.True(t, doc.Dirty())

		n, err := doc.Save()
		require.NoError(t, err)
		require.Greater(t, n, 0)
		assert.False(t, doc.Dirty())

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		before := strings.Split(sceneFixture, "\n")
		got := strings.Split(string(after), "\n")
		require.Equal(t, len(before), len(got))

		changed := 0
		for i := range before {
			if before[i] != got[i] {
				changed++
				assert.Equal(t, "  m_Name: Hero", got[i])
			}
		}
		assert.Equal(t, 1, changed)
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "level.unity")
		require.NoError(t, os.WriteFile(path, []byte(sceneFixture), 0644))

		doc, err := Load(path)
		require.NoError(t, err)
		_, err = doc.Save()
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("parsed-only document cannot save", func(t *testing.T) {
		doc := mustParse(t, sceneFixture)
		_, err := doc.Save()
		assert.Error(t, err)
	})
}
