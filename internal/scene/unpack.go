package scene

import (
	"fmt"

	"sceneforge/internal/logging"
)

// TemplateSource loads the document a prefab GUID refers to. The guid
// package implements this over a project root; tests implement it over
// fixture documents.
type TemplateSource interface {
	Template(guid string) (*Document, error)
}

// UnpackInstance materializes a template instance into standalone blocks:
// the template's content is copied in with fresh file IDs, the instance's
// override list is applied field by field, its subtraction lists remove
// what the instance deleted, and the instance block itself (plus stripped
// companions) goes away. The unpacked root is attached where the instance
// was.
func (d *Document) UnpackInstance(instanceID int64, source TemplateSource) (*Block, error) {
	instance := d.FindByID(instanceID)
	if instance == nil {
		return nil, fmt.Errorf("%w: block %d", ErrNotFound, instanceID)
	}
	if instance.ClassID != ClassPrefabInstance {
		return nil, fmt.Errorf("%w: block %d is not a prefab instance", ErrMalformed, instanceID)
	}

	guid := d.SourceGUID(instance)
	if guid == "" {
		return nil, fmt.Errorf("%w: instance %d has no source reference", ErrTemplateUnresolved, instanceID)
	}
	if source == nil {
		return nil, fmt.Errorf("%w: no template source for guid %s", ErrTemplateUnresolved, guid)
	}
	template, err := source.Template(guid)
	if err != nil {
		return nil, fmt.Errorf("%w: guid %s: %v", ErrTemplateUnresolved, guid, err)
	}

	// Copy the template's content with fresh IDs.
	mapping := make(map[int64]int64)
	var copies []*Block
	for _, b := range template.Blocks() {
		if b.Stripped || b.ClassID == ClassPrefabInstance || b.ClassID == ClassSceneRoots {
			continue
		}
		mapping[b.FileID] = d.newFileID()
		copies = append(copies, b)
	}
	if len(copies) == 0 {
		return nil, fmt.Errorf("%w: guid %s resolves to an empty template", ErrTemplateUnresolved, guid)
	}

	// Find the template's root before touching the document: a template
	// whose every transform carries a nonzero parent has nothing to hang
	// in the scene, and the instance must survive the failed unpack.
	rootID := int64(0)
	for _, b := range copies {
		if !d.cfg().HierarchyProviders[b.ClassID] {
			continue
		}
		if father, err := d.GetField(b, d.cfg().ParentField); err == nil && parseRef(father) == 0 {
			rootID = mapping[b.FileID]
			break
		}
	}
	if rootID == 0 {
		return nil, fmt.Errorf("%w: template %s has no root object", ErrMalformed, guid)
	}

	var root *Block
	for _, b := range copies {
		dup := b.clone()
		dup.FileID = mapping[b.FileID]
		dup.anchor = newAnchor(dup.ClassID, dup.FileID, false)
		dup.Lines = rewriteRefs(dup.Lines, mapping)
		d.insertBlock(dup)

		if dup.FileID == rootID {
			root = dup
		}
	}

	// Subtraction lists: drop what the instance deleted from the
	// template before applying value overrides.
	for _, removed := range d.RemovedGameObjects(instance) {
		if newID, ok := mapping[removed]; ok {
			_ = d.DeleteBlock(newID, true)
		}
	}
	for _, removed := range d.RemovedComponents(instance) {
		if newID, ok := mapping[removed]; ok {
			_ = d.DeleteBlock(newID, true)
		}
	}

	// Apply the override list. Entries whose target or field no longer
	// exists in the template are skipped: templates evolve under their
	// instances and stale overrides are routine, not fatal.
	for _, mod := range d.Modifications(instance) {
		newID, ok := mapping[mod.TargetFileID]
		if !ok {
			continue
		}
		target := d.FindByID(newID)
		if target == nil {
			continue
		}
		value := mod.Value
		if ref := parseRef(mod.ObjectRef); ref != 0 {
			value = mod.ObjectRef
		}
		if err := d.SetField(target, mod.PropertyPath, value); err != nil {
			logging.Mutate("unpack %d: skipping stale override %s on %d", instanceID, mod.PropertyPath, mod.TargetFileID)
		}
	}

	// Attach the unpacked root where the instance hung.
	hostParentTID := d.TransformParent(instance)
	if d.FindByID(root.FileID) != nil && hostParentTID != 0 {
		if hostParent := d.FindByID(hostParentTID); hostParent != nil {
			if err := d.SetField(root, d.cfg().ParentField, fmt.Sprintf("{fileID: %d}", hostParentTID)); err != nil {
				return nil, err
			}
			if err := d.addChildRef(hostParent, root.FileID); err != nil {
				return nil, err
			}
		}
	}

	if err := d.deletePrefabInstance(instance); err != nil {
		return nil, err
	}

	rootGO := d.GameObjectOf(root)
	if rootGO == nil {
		return nil, fmt.Errorf("%w: unpacked root transform %d has no GameObject", ErrMalformed, root.FileID)
	}
	logging.Mutate("unpacked instance %d: %d blocks from guid %s", instanceID, len(copies), guid)
	return rootGO, nil
}
