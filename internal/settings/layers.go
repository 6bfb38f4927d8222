package settings

import (
	"fmt"
	"strconv"
	"strings"

	"sceneforge/internal/logging"
	"sceneforge/internal/scene"
)

// LayerCount is the fixed size of the layer table.
const LayerCount = 32

// builtinLayers are the engine-reserved slots that cannot be renamed.
var builtinLayers = map[int]bool{0: true, 1: true, 2: true, 4: true, 5: true}

// Layer is one slot in the layer table. Empty names mark unassigned slots.
type Layer struct {
	Slot int    `json:"slot"`
	Name string `json:"name"`
}

// ReadLayers returns all 32 layer slots in order.
func ReadLayers(projectPath string) ([]Layer, error) {
	_, block, err := open(projectPath, "layers")
	if err != nil {
		return nil, err
	}
	_, names, _ := listSection(block, "layers")
	layers := make([]Layer, 0, LayerCount)
	for i, name := range names {
		layers = append(layers, Layer{Slot: i, Name: name})
	}
	for len(layers) < LayerCount {
		layers = append(layers, Layer{Slot: len(layers)})
	}
	return layers, nil
}

// SetLayer assigns a name to a layer slot. Builtin slots are rejected, and
// an empty name clears the slot.
func SetLayer(projectPath, slot, name string) error {
	idx, err := strconv.Atoi(slot)
	if err != nil || idx < 0 || idx >= LayerCount {
		return fmt.Errorf("%w: layer slot %q (want 0-%d)", scene.ErrValidation, slot, LayerCount-1)
	}
	if builtinLayers[idx] {
		return fmt.Errorf("%w: layer slot %d is reserved by the engine", scene.ErrValidation, idx)
	}
	if err := scene.ValidateEmbeddedName("layer", name); err != nil {
		return err
	}

	doc, block, err := open(projectPath, "layers")
	if err != nil {
		return err
	}
	_, names, lines := listSection(block, "layers")
	if idx >= len(names) {
		return fmt.Errorf("%w: layer table has %d slots", scene.ErrMalformed, len(names))
	}

	line := block.Lines[lines[idx]]
	indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
	if name == "" {
		block.Lines[lines[idx]] = indent + "-"
	} else {
		block.Lines[lines[idx]] = indent + "- " + name
	}

	if _, err := doc.Save(); err != nil {
		return err
	}
	logging.Settings("layer %d set to %q", idx, name)
	return nil
}
