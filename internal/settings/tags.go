package settings

import (
	"fmt"
	"strings"

	"sceneforge/internal/logging"
	"sceneforge/internal/scene"
)

// listSection scans a top-level string list in a settings block: the key
// line followed by `- Name` items. Item values may be empty (a bare `-`),
// which the layer list uses for unassigned slots.
func listSection(b *scene.Block, key string) (keyLine int, names []string, lines []int) {
	keyLine = -1
	for i, line := range b.Lines {
		trimmed := strings.TrimLeft(line, " ")
		if keyLine < 0 {
			if strings.HasPrefix(trimmed, key+":") {
				keyLine = i
			}
			continue
		}
		if trimmed != "-" && !strings.HasPrefix(trimmed, "- ") {
			break
		}
		names = append(names, strings.TrimSpace(strings.TrimPrefix(trimmed, "-")))
		lines = append(lines, i)
	}
	return keyLine, names, lines
}

// ReadTags returns the project's custom tag list in file order.
func ReadTags(projectPath string) ([]string, error) {
	_, block, err := open(projectPath, "tags")
	if err != nil {
		return nil, err
	}
	_, names, _ := listSection(block, "tags")
	return names, nil
}

// AddTag appends a tag unless it is already present. Tag names become raw
// text in the file, so the usual embedding rules apply.
func AddTag(projectPath, tag string) error {
	if err := scene.ValidateEmbeddedName("tag", tag); err != nil {
		return err
	}

	doc, block, err := open(projectPath, "tags")
	if err != nil {
		return err
	}
	keyLine, names, lines := listSection(block, "tags")
	if keyLine < 0 {
		return fmt.Errorf("%w: tags section", scene.ErrMalformed)
	}
	for _, name := range names {
		if name == tag {
			return nil
		}
	}

	indent := block.Lines[keyLine][:len(block.Lines[keyLine])-len(strings.TrimLeft(block.Lines[keyLine], " "))]
	item := indent + "- " + tag
	insertAt := keyLine + 1
	if len(lines) > 0 {
		insertAt = lines[len(lines)-1] + 1
	} else if strings.Contains(block.Lines[keyLine], "[]") {
		block.Lines[keyLine] = strings.Replace(block.Lines[keyLine], " []", "", 1)
	}
	block.Lines = append(block.Lines[:insertAt],
		append([]string{item}, block.Lines[insertAt:]...)...)

	if _, err := doc.Save(); err != nil {
		return err
	}
	logging.Settings("added tag %q", tag)
	return nil
}

// RemoveTag deletes a tag; a missing tag is reported as not found.
func RemoveTag(projectPath, tag string) error {
	doc, block, err := open(projectPath, "tags")
	if err != nil {
		return err
	}
	keyLine, names, lines := listSection(block, "tags")
	if keyLine < 0 {
		return fmt.Errorf("%w: tags section", scene.ErrMalformed)
	}

	for i, name := range names {
		if name != tag {
			continue
		}
		block.Lines = append(block.Lines[:lines[i]], block.Lines[lines[i]+1:]...)
		if len(names) == 1 {
			block.Lines[keyLine] = block.Lines[keyLine] + " []"
		}
		if _, err := doc.Save(); err != nil {
			return err
		}
		logging.Settings("removed tag %q", tag)
		return nil
	}
	return fmt.Errorf("%w: tag %q", scene.ErrNotFound, tag)
}
