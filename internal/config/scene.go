package config

import "sceneforge/internal/scene"

// SceneConfig names the class IDs and field names that carry structure in
// scene documents. Projects with custom transform-like components extend
// the provider list; everything defaults to the stock registry.
type SceneConfig struct {
	HierarchyProviders []int  `yaml:"hierarchy_providers"` // Transform-like class IDs
	ScriptContainers   []int  `yaml:"script_containers"`   // MonoBehaviour-like class IDs
	GameObjectClass    int    `yaml:"gameobject_class"`
	ParentField        string `yaml:"parent_field"`
	ChildrenField      string `yaml:"children_field"`
	ScriptField        string `yaml:"script_field"`
}

// DefaultSceneConfig returns the stock class registry.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		HierarchyProviders: []int{scene.ClassTransform, scene.ClassRectTransform},
		ScriptContainers:   []int{scene.ClassMonoBehaviour},
		GameObjectClass:    scene.ClassGameObject,
		ParentField:        "m_Father",
		ChildrenField:      "m_Children",
		ScriptField:        "m_Script",
	}
}

// fillDefaults patches zero values left by a partial config file.
func (c *SceneConfig) fillDefaults() {
	d := DefaultSceneConfig()
	if len(c.HierarchyProviders) == 0 {
		c.HierarchyProviders = d.HierarchyProviders
	}
	if len(c.ScriptContainers) == 0 {
		c.ScriptContainers = d.ScriptContainers
	}
	if c.GameObjectClass == 0 {
		c.GameObjectClass = d.GameObjectClass
	}
	if c.ParentField == "" {
		c.ParentField = d.ParentField
	}
	if c.ChildrenField == "" {
		c.ChildrenField = d.ChildrenField
	}
	if c.ScriptField == "" {
		c.ScriptField = d.ScriptField
	}
}

// ClassConfig converts to the scene package's registry type.
func (c SceneConfig) ClassConfig() scene.ClassConfig {
	cc := scene.ClassConfig{
		HierarchyProviders: make(map[int]bool, len(c.HierarchyProviders)),
		ScriptContainers:   make(map[int]bool, len(c.ScriptContainers)),
		GameObjectClass:    c.GameObjectClass,
		ParentField:        c.ParentField,
		ChildrenField:      c.ChildrenField,
		ScriptField:        c.ScriptField,
	}
	for _, id := range c.HierarchyProviders {
		cc.HierarchyProviders[id] = true
	}
	for _, id := range c.ScriptContainers {
		cc.ScriptContainers[id] = true
	}
	return cc
}
