package settings

import (
	"strings"

	"sceneforge/internal/logging"
	"sceneforge/internal/scene"
)

// scalarFields collects the top-level `key: value` lines of a settings
// block. Nested structures keep their inline form (`{x: 0, y: -9.81}`),
// deeper lines belong to some parent key and are skipped.
func scalarFields(b *scene.Block) map[string]string {
	fields := map[string]string{}
	for _, line := range b.Lines {
		trimmed := strings.TrimLeft(line, " ")
		if len(line)-len(trimmed) != 2 || strings.HasPrefix(trimmed, "- ") {
			continue
		}
		colon := strings.Index(trimmed, ":")
		if colon < 0 {
			continue
		}
		fields[trimmed[:colon]] = strings.TrimSpace(trimmed[colon+1:])
	}
	return fields
}

// ReadPhysics returns the physics constants as a flat field map.
func ReadPhysics(projectPath string) (map[string]string, error) {
	_, block, err := open(projectPath, "physics")
	if err != nil {
		return nil, err
	}
	return scalarFields(block), nil
}

// SetPhysics rewrites one physics field. Inline structures are replaced
// whole, e.g. m_Gravity with a full {x, y, z} value.
func SetPhysics(projectPath, property, value string) error {
	doc, block, err := open(projectPath, "physics")
	if err != nil {
		return err
	}
	if err := doc.SetField(block, property, value); err != nil {
		return err
	}
	if _, err := doc.Save(); err != nil {
		return err
	}
	logging.Settings("physics %s set to %s", property, value)
	return nil
}
