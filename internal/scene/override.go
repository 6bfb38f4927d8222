package scene

import (
	"fmt"
	"strings"

	"sceneforge/internal/logging"
)

// modItem is one parsed override entry plus the body-line range it spans,
// so replace/remove can edit the list in place.
type modItem struct {
	start, end int
	mod        Modification
}

// modItems parses the instance's override list with line ranges. Items are
// keyed by (target file ID, property path); duplicates may coexist and
// by-key edits touch the first match.
func (d *Document) modItems(instance *Block) (int, []modItem) {
	start := modificationListStart(instance)
	if start < 0 {
		return -1, nil
	}

	var items []modItem
	keyIndent := indentOf(instance.Lines[start])
	open := -1
	var current Modification
	flush := func(end int) {
		if open >= 0 {
			items = append(items, modItem{start: open, end: end, mod: current})
			open = -1
		}
	}

	end := len(instance.Lines)
	for i := start + 1; i < len(instance.Lines); i++ {
		line := instance.Lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		ind := indentOf(line)
		if ind < keyIndent || (ind == keyIndent && !isListItem(line)) {
			end = i
			break
		}
		k, ok := lineKey(line)
		if !ok {
			continue
		}
		if isListItem(line) && k == "target" {
			flush(i)
			open = i
			current = Modification{TargetFileID: parseRef(line)}
			if m := guidRe.FindStringSubmatch(line); m != nil {
				current.TargetGUID = m[1]
			}
			continue
		}
		if open < 0 {
			continue
		}
		switch k {
		case "propertyPath":
			current.PropertyPath = lineValue(line)
		case "value":
			current.Value = lineValue(line)
		case "objectReference":
			current.ObjectRef = lineValue(line)
		}
	}
	flush(end)
	return start, items
}

// UpsertOverride replaces the value (and object reference) of the first
// override entry matching (targetID, path), or appends a new entry. A new
// entry needs a target descriptor; when targetGUID is empty it is copied
// from an existing entry for the same target, falling back to the
// instance's source GUID. objectRef defaults to the zero reference for
// value-typed overrides.
func (d *Document) UpsertOverride(instance *Block, targetID int64, targetGUID, path, value, objectRef string) error {
	if instance.ClassID != ClassPrefabInstance {
		return fmt.Errorf("%w: block %d is not a prefab instance", ErrMalformed, instance.FileID)
	}
	if err := validateName("value", value); err != nil {
		return err
	}
	if objectRef == "" {
		objectRef = "{fileID: 0}"
	}

	listStart, items := d.modItems(instance)
	if listStart < 0 {
		return fmt.Errorf("%w: field m_Modifications", ErrNotFound)
	}

	for _, item := range items {
		if item.mod.TargetFileID != targetID || item.mod.PropertyPath != path {
			continue
		}
		for i := item.start; i < item.end; i++ {
			k, ok := lineKey(instance.Lines[i])
			if !ok {
				continue
			}
			switch k {
			case "value":
				instance.Lines[i] = rewriteValue(instance.Lines[i], value)
			case "objectReference":
				instance.Lines[i] = rewriteValue(instance.Lines[i], objectRef)
			}
		}
		d.markDirty()
		logging.Mutate("override %d.%s replaced on instance %d", targetID, path, instance.FileID)
		return nil
	}

	if targetGUID == "" {
		for _, item := range items {
			if item.mod.TargetFileID == targetID && item.mod.TargetGUID != "" {
				targetGUID = item.mod.TargetGUID
				break
			}
		}
	}
	if targetGUID == "" {
		targetGUID = d.SourceGUID(instance)
	}
	if targetGUID == "" {
		return fmt.Errorf("%w: no target descriptor for new override on %d", ErrMalformed, targetID)
	}

	keyLine := instance.Lines[listStart]
	itemIndent := strings.Repeat(" ", indentOf(keyLine))
	fieldIndent := itemIndent + "  "
	if len(items) > 0 {
		itemIndent = strings.Repeat(" ", indentOf(instance.Lines[items[0].start]))
		fieldIndent = strings.Repeat(" ", indentOf(instance.Lines[items[0].start])+2)
	}

	entry := []string{
		itemIndent + fmt.Sprintf("- target: {fileID: %d, guid: %s, type: 3}", targetID, targetGUID),
		fieldIndent + "propertyPath: " + path,
		fieldIndent + "value: " + value,
		fieldIndent + "objectReference: " + objectRef,
	}

	insertAt := listStart + 1
	if len(items) > 0 {
		insertAt = items[len(items)-1].end
	} else if lineValue(keyLine) == "[]" {
		instance.Lines[listStart] = rewriteValue(keyLine, "")
	}

	instance.Lines = append(instance.Lines[:insertAt],
		append(entry, instance.Lines[insertAt:]...)...)
	d.markDirty()
	logging.Mutate("override %d.%s added on instance %d", targetID, path, instance.FileID)
	return nil
}

// RemoveOverride deletes the first override entry matching (targetID,
// path). A missing entry is reported, not ignored.
func (d *Document) RemoveOverride(instance *Block, targetID int64, path string) error {
	if instance.ClassID != ClassPrefabInstance {
		return fmt.Errorf("%w: block %d is not a prefab instance", ErrMalformed, instance.FileID)
	}

	listStart, items := d.modItems(instance)
	if listStart < 0 {
		return fmt.Errorf("%w: field m_Modifications", ErrNotFound)
	}

	for _, item := range items {
		if item.mod.TargetFileID != targetID || item.mod.PropertyPath != path {
			continue
		}
		instance.Lines = append(instance.Lines[:item.start], instance.Lines[item.end:]...)
		if len(items) == 1 {
			instance.Lines[listStart] = rewriteValue(instance.Lines[listStart], "[]")
		}
		d.markDirty()
		logging.Mutate("override %d.%s removed from instance %d", targetID, path, instance.FileID)
		return nil
	}
	return fmt.Errorf("%w: override %d.%s", ErrNotFound, targetID, path)
}

// removalList operates on the subtraction lists a template instance keeps:
// m_RemovedComponents and m_RemovedGameObjects.
func (d *Document) removalList(instance *Block, field string) (int, error) {
	if instance.ClassID != ClassPrefabInstance {
		return -1, fmt.Errorf("%w: block %d is not a prefab instance", ErrMalformed, instance.FileID)
	}
	for i, line := range instance.Lines {
		if k, ok := lineKey(line); ok && k == field {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: field %s", ErrNotFound, field)
}

// removalEntries returns the referenced IDs and their line indexes.
func (d *Document) removalEntries(instance *Block, keyLine int) (ids []int64, lines []int) {
	keyIndent := indentOf(instance.Lines[keyLine])
	for i := keyLine + 1; i < len(instance.Lines); i++ {
		line := instance.Lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		if indentOf(line) < keyIndent || (indentOf(line) == keyIndent && !isListItem(line)) {
			break
		}
		if isListItem(line) {
			ids = append(ids, parseRef(line))
			lines = append(lines, i)
		}
	}
	return ids, lines
}

// addRemoval appends a subtraction entry unless one for the same target is
// already present. Duplicate adds are not re-added.
func (d *Document) addRemoval(instance *Block, field string, targetID int64, targetGUID string) error {
	keyLine, err := d.removalList(instance, field)
	if err != nil {
		return err
	}
	ids, _ := d.removalEntries(instance, keyLine)
	for _, id := range ids {
		if id == targetID {
			return nil
		}
	}

	if targetGUID == "" {
		targetGUID = d.SourceGUID(instance)
	}
	indent := strings.Repeat(" ", indentOf(instance.Lines[keyLine]))
	entry := indent + fmt.Sprintf("- {fileID: %d, guid: %s, type: 3}", targetID, targetGUID)

	if lineValue(instance.Lines[keyLine]) == "[]" {
		instance.Lines[keyLine] = rewriteValue(instance.Lines[keyLine], "")
	}
	insertAt := keyLine + 1
	_, lines := d.removalEntries(instance, keyLine)
	if len(lines) > 0 {
		insertAt = lines[len(lines)-1] + 1
	}
	instance.Lines = append(instance.Lines[:insertAt],
		append([]string{entry}, instance.Lines[insertAt:]...)...)
	d.markDirty()
	logging.Mutate("%s += %d on instance %d", field, targetID, instance.FileID)
	return nil
}

// removeRemoval deletes the first subtraction entry for a target. Absence
// is an error so callers notice a stale ID.
func (d *Document) removeRemoval(instance *Block, field string, targetID int64) error {
	keyLine, err := d.removalList(instance, field)
	if err != nil {
		return err
	}
	ids, lines := d.removalEntries(instance, keyLine)
	for i, id := range ids {
		if id != targetID {
			continue
		}
		instance.Lines = append(instance.Lines[:lines[i]], instance.Lines[lines[i]+1:]...)
		if len(ids) == 1 {
			instance.Lines[keyLine] = rewriteValue(instance.Lines[keyLine], "[]")
		}
		d.markDirty()
		logging.Mutate("%s -= %d on instance %d", field, targetID, instance.FileID)
		return nil
	}
	return fmt.Errorf("%w: %s entry %d", ErrNotFound, field, targetID)
}

// AddRemovedComponent records that this instance deleted a component the
// template has.
func (d *Document) AddRemovedComponent(instance *Block, targetID int64, targetGUID string) error {
	return d.addRemoval(instance, "m_RemovedComponents", targetID, targetGUID)
}

// RemoveRemovedComponent restores a component subtracted by this instance.
func (d *Document) RemoveRemovedComponent(instance *Block, targetID int64) error {
	return d.removeRemoval(instance, "m_RemovedComponents", targetID)
}

// AddRemovedGameObject records that this instance deleted a child object
// the template has.
func (d *Document) AddRemovedGameObject(instance *Block, targetID int64, targetGUID string) error {
	return d.addRemoval(instance, "m_RemovedGameObjects", targetID, targetGUID)
}

// RemoveRemovedGameObject restores a child object subtracted by this
// instance.
func (d *Document) RemoveRemovedGameObject(instance *Block, targetID int64) error {
	return d.removeRemoval(instance, "m_RemovedGameObjects", targetID)
}

// RemovedComponents lists the component IDs this instance subtracts.
func (d *Document) RemovedComponents(instance *Block) []int64 {
	keyLine, err := d.removalList(instance, "m_RemovedComponents")
	if err != nil {
		return nil
	}
	ids, _ := d.removalEntries(instance, keyLine)
	return ids
}

// RemovedGameObjects lists the child-object IDs this instance subtracts.
func (d *Document) RemovedGameObjects(instance *Block) []int64 {
	keyLine, err := d.removalList(instance, "m_RemovedGameObjects")
	if err != nil {
		return nil
	}
	ids, _ := d.removalEntries(instance, keyLine)
	return ids
}
