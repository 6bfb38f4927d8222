// Package scene implements a structural-preservation editor for Unity-style
// scene documents: line-oriented YAML split into anchored blocks that can be
// addressed, mutated field-by-field, and written back byte-identically
// everywhere an edit did not touch.
package scene

import (
	"fmt"
	"strings"
)

// Well-known class IDs. The registry is not exhaustive; unknown IDs render
// as Class<N> and round-trip untouched.
const (
	ClassGameObject          = 1
	ClassComponent           = 2 // legacy container, still seen in old scenes
	ClassTransform           = 4
	ClassCamera              = 20
	ClassMaterial            = 21
	ClassMeshRenderer        = 23
	ClassMeshFilter          = 33
	ClassOcclusionPortal     = 41
	ClassRigidbody           = 54
	ClassBoxCollider         = 65
	ClassAudioListener       = 81
	ClassAudioSource         = 82
	ClassLight               = 108
	ClassMonoBehaviour       = 114
	ClassSphereCollider      = 135
	ClassSkinnedMeshRenderer = 137
	ClassRectTransform       = 224
	ClassCanvas              = 223
	ClassPrefabInstance      = 1001
	ClassSceneRoots          = 1660057539
)

var classNames = map[int]string{
	ClassGameObject:          "GameObject",
	ClassComponent:           "Component",
	ClassTransform:           "Transform",
	ClassCamera:              "Camera",
	ClassMaterial:            "Material",
	ClassMeshRenderer:        "MeshRenderer",
	ClassMeshFilter:          "MeshFilter",
	ClassOcclusionPortal:     "OcclusionPortal",
	ClassRigidbody:           "Rigidbody",
	ClassBoxCollider:         "BoxCollider",
	ClassAudioListener:       "AudioListener",
	ClassAudioSource:         "AudioSource",
	ClassLight:               "Light",
	ClassMonoBehaviour:       "MonoBehaviour",
	ClassSphereCollider:      "SphereCollider",
	ClassSkinnedMeshRenderer: "SkinnedMeshRenderer",
	ClassRectTransform:       "RectTransform",
	ClassCanvas:              "Canvas",
	ClassPrefabInstance:      "PrefabInstance",
	ClassSceneRoots:          "SceneRoots",
}

// ClassIDFor reverses the registry lookup, matching type names
// case-insensitively. Callers that accept user input fall back to numeric
// IDs when this fails.
func ClassIDFor(name string) (int, bool) {
	for id, n := range classNames {
		if strings.EqualFold(n, name) {
			return id, true
		}
	}
	return 0, false
}

// ClassName returns the type name for a class ID, or Class<N> for IDs
// outside the registry.
func ClassName(classID int) string {
	if name, ok := classNames[classID]; ok {
		return name
	}
	return fmt.Sprintf("Class%d", classID)
}

// Block is one top-level structural unit: an anchor line plus every body
// line up to the next anchor. The file ID is stable for the block's
// lifetime; only block creation mints new ones.
type Block struct {
	FileID   int64
	ClassID  int
	Stripped bool

	// anchor is the anchor line exactly as read, so an untouched block
	// reproduces its original bytes on save. Freshly created blocks
	// render a canonical anchor.
	anchor string

	// Lines holds the body verbatim, without line terminators.
	Lines []string
}

// newAnchor renders the canonical anchor line for a created block.
func newAnchor(classID int, fileID int64, stripped bool) string {
	s := fmt.Sprintf("--- !u!%d &%d", classID, fileID)
	if stripped {
		s += " stripped"
	}
	return s
}

// TypeName returns the block's type name derived from its class ID.
func (b *Block) TypeName() string {
	return ClassName(b.ClassID)
}

// Anchor returns the block's anchor line.
func (b *Block) Anchor() string {
	return b.anchor
}

// clone returns a deep copy of the block sharing no line storage.
func (b *Block) clone() *Block {
	dup := *b
	dup.Lines = make([]string, len(b.Lines))
	copy(dup.Lines, b.Lines)
	return &dup
}
