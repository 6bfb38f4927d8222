// Package settings reads and edits the fixed-schema files under
// ProjectSettings/: tag and layer lists, physics constants, and quality
// tiers. These are single-block documents in the same line-oriented
// format, so the scene package's field primitives do the actual rewriting
// and saves stay atomic.
package settings

import (
	"fmt"
	"path/filepath"

	"sceneforge/internal/scene"
)

// Setting file names, keyed by the short names the CLI exposes.
var settingFiles = map[string]string{
	"tags":    "TagManager.asset",
	"layers":  "TagManager.asset",
	"physics": "DynamicsManager.asset",
	"quality": "QualitySettings.asset",
}

// open loads a settings document and returns its single content block.
func open(projectPath, name string) (*scene.Document, *scene.Block, error) {
	file, ok := settingFiles[name]
	if !ok {
		return nil, nil, fmt.Errorf("%w: setting %q", scene.ErrNotFound, name)
	}

	doc, err := scene.Load(filepath.Join(projectPath, "ProjectSettings", file))
	if err != nil {
		return nil, nil, err
	}
	blocks := doc.Blocks()
	if len(blocks) == 0 {
		return nil, nil, scene.ErrNotRecognized
	}
	return doc, blocks[0], nil
}

// ReadSetting returns the structured data for a named setting: tag list,
// layer slots, physics constants, or quality tiers.
func ReadSetting(projectPath, name string) (interface{}, error) {
	switch name {
	case "tags":
		return ReadTags(projectPath)
	case "layers":
		return ReadLayers(projectPath)
	case "physics":
		return ReadPhysics(projectPath)
	case "quality":
		return ReadQuality(projectPath)
	}
	return nil, fmt.Errorf("%w: setting %q", scene.ErrNotFound, name)
}

// EditSetting applies one property edit to a named setting and persists
// it. The property syntax depends on the setting: a tag name for tags, a
// slot index for layers, a field name for physics, and tier.field for
// quality.
func EditSetting(projectPath, name, property, value string) error {
	switch name {
	case "tags":
		// For the tag list the "value" is the operation.
		switch value {
		case "add", "":
			return AddTag(projectPath, property)
		case "remove":
			return RemoveTag(projectPath, property)
		default:
			return fmt.Errorf("%w: tag operation %q (want add or remove)", scene.ErrValidation, value)
		}
	case "layers":
		return SetLayer(projectPath, property, value)
	case "physics":
		return SetPhysics(projectPath, property, value)
	case "quality":
		return SetQuality(projectPath, property, value)
	}
	return fmt.Errorf("%w: setting %q", scene.ErrNotFound, name)
}
