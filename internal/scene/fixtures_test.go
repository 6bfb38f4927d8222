package scene

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// sceneFixture is a small but structurally complete scene: a Player with a
// script and a nested Child, a root-level Enemy, and one prefab instance
// renamed to Turret through its override list.
const sceneFixture = `%YAML 1.1
%TAG !u! tag:unity3d.com,2011:
--- !u!1 &100
GameObject:
  m_ObjectHideFlags: 0
  serializedVersion: 6
  m_Component:
  - component: {fileID: 101}
  - component: {fileID: 102}
  m_Layer: 0
  m_Name: Player
  m_TagString: Untagged
  m_IsActive: 1
--- !u!4 &101
Transform:
  m_ObjectHideFlags: 0
  m_GameObject: {fileID: 100}
  m_LocalRotation: {x: 0, y: 0, z: 0, w: 1}
  m_LocalPosition: {x: 1, y: 2, z: 3}
  m_LocalScale: {x: 1, y: 1, z: 1}
  m_Children:
  - {fileID: 301}
  m_Father: {fileID: 0}
  m_RootOrder: 0
--- !u!114 &102
MonoBehaviour:
  m_ObjectHideFlags: 0
  m_GameObject: {fileID: 100}
  m_Enabled: 1
  m_EditorHideFlags: 0
  m_Script: {fileID: 11500000, guid: abcdef0123456789abcdef0123456789, type: 3}
  m_Name:
  speed: 5 # units per second
--- !u!1 &200
GameObject:
  m_ObjectHideFlags: 0
  serializedVersion: 6
  m_Component:
  - component: {fileID: 201}
  m_Layer: 0
  m_Name: Enemy
  m_TagString: Untagged
  m_IsActive: 1
--- !u!4 &201
Transform:
  m_ObjectHideFlags: 0
  m_GameObject: {fileID: 200}
  m_LocalPosition: {x: 0, y: 0, z: 0}
  m_Children: []
  m_Father: {fileID: 0}
  m_RootOrder: 1
--- !u!1 &300
GameObject:
  m_ObjectHideFlags: 0
  serializedVersion: 6
  m_Component:
  - component: {fileID: 301}
  m_Layer: 0
  m_Name: Child
  m_TagString: Untagged
  m_IsActive: 1
--- !u!4 &301
Transform:
  m_ObjectHideFlags: 0
  m_GameObject: {fileID: 300}
  m_LocalPosition: {x: 0, y: 0, z: 0}
  m_Children: []
  m_Father: {fileID: 101}
  m_RootOrder: 0
--- !u!1001 &500
PrefabInstance:
  m_ObjectHideFlags: 0
  serializedVersion: 2
  m_Modification:
    serializedVersion: 3
    m_TransformParent: {fileID: 0}
    m_Modifications:
    - target: {fileID: 400004, guid: 11112222333344445555666677778888, type: 3}
      propertyPath: m_RootOrder
      value: 2
      objectReference: {fileID: 0}
    - target: {fileID: 400000, guid: 11112222333344445555666677778888, type: 3}
      propertyPath: m_Name
      value: Turret
      objectReference: {fileID: 0}
    m_RemovedComponents: []
    m_RemovedGameObjects: []
  m_SourcePrefab: {fileID: 100100000, guid: 11112222333344445555666677778888, type: 3}
`

// prefabFixture is the template the scene's instance points at.
const prefabFixture = `%YAML 1.1
%TAG !u! tag:unity3d.com,2011:
--- !u!1 &400000
GameObject:
  m_ObjectHideFlags: 0
  serializedVersion: 6
  m_Component:
  - component: {fileID: 400004}
  - component: {fileID: 400008}
  m_Layer: 0
  m_Name: TurretBase
  m_TagString: Untagged
  m_IsActive: 1
--- !u!4 &400004
Transform:
  m_ObjectHideFlags: 0
  m_GameObject: {fileID: 400000}
  m_LocalPosition: {x: 0, y: 0, z: 0}
  m_Children: []
  m_Father: {fileID: 0}
  m_RootOrder: 0
--- !u!114 &400008
MonoBehaviour:
  m_ObjectHideFlags: 0
  m_GameObject: {fileID: 400000}
  m_Enabled: 1
  m_EditorHideFlags: 0
  m_Script: {fileID: 11500000, guid: abcdef0123456789abcdef0123456789, type: 3}
  m_Name:
  range: 12
`

const turretGUID = "11112222333344445555666677778888"

func mustParse(t *testing.T, content string) *Document {
	t.Helper()
	doc, err := Parse(content)
	require.NoError(t, err)
	return doc
}

// fixtureSource serves a parsed template for one GUID.
type fixtureSource map[string]string

func (s fixtureSource) Template(guid string) (*Document, error) {
	content, ok := s[guid]
	if !ok {
		return nil, ErrNotFound
	}
	return Parse(content)
}
