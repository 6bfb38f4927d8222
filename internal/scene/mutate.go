package scene

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"sceneforge/internal/logging"
)

// RootTarget is the sentinel parent reference for moving an object to the
// scene root.
const RootTarget = "root"

// ResolveTarget turns a caller-supplied reference into a block. With byID
// the reference is a literal file ID; otherwise it is a display name, which
// must match exactly one block. Multiple matches fail with the candidate
// IDs so the caller can retry by file ID.
func (d *Document) ResolveTarget(ref string, byID bool) (*Block, error) {
	if byID {
		id, err := strconv.ParseInt(ref, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a file ID", ErrValidation, ref)
		}
		b := d.FindByID(id)
		if b == nil {
			return nil, fmt.Errorf("%w: block %d", ErrNotFound, id)
		}
		return b, nil
	}

	matches := d.FindByName(ref, false)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: object %q", ErrNotFound, ref)
	case 1:
		return matches[0].Block, nil
	default:
		e := &AmbiguousMatchError{Name: ref}
		for _, m := range matches {
			e.Candidates = append(e.Candidates, m.Block.FileID)
		}
		return nil, e
	}
}

// AddBlock creates a new block with a freshly minted file ID and a minimal
// valid body. Adding a GameObject also creates its Transform so the object
// is immediately hierarchy-consistent; a parentID of 0 leaves it at the
// root. Component classes with a GameObject parent are attached to that
// object's component list.
func (d *Document) AddBlock(classID int, name string, parentID int64) (*Block, error) {
	if err := validateName("name", name); err != nil {
		return nil, err
	}
	if parentID != 0 && d.FindByID(parentID) == nil {
		return nil, fmt.Errorf("%w: parent %d", ErrNotFound, parentID)
	}

	if classID == d.cfg().GameObjectClass {
		return d.addGameObject(name, parentID)
	}
	return d.addComponent(classID, name, parentID)
}

func (d *Document) addGameObject(name string, parentID int64) (*Block, error) {
	var parentTransform *Block
	if parentID != 0 {
		parentTransform = d.TransformOf(parentID)
		if parentTransform == nil {
			return nil, fmt.Errorf("%w: parent %d is not a spatial object", ErrMalformed, parentID)
		}
	}

	goID := d.newFileID()
	goBlock := &Block{
		FileID:  goID,
		ClassID: ClassGameObject,
		anchor:  newAnchor(ClassGameObject, goID, false),
	}
	d.insertBlock(goBlock)

	tid := d.newFileID()
	goBlock.Lines = []string{
		"GameObject:",
		"  m_ObjectHideFlags: 0",
		"  m_CorrespondingSourceObject: {fileID: 0}",
		"  m_PrefabInstance: {fileID: 0}",
		"  m_PrefabAsset: {fileID: 0}",
		"  serializedVersion: 6",
		"  m_Component:",
		fmt.Sprintf("  - component: {fileID: %d}", tid),
		"  m_Layer: 0",
		"  m_Name: " + name,
		"  m_TagString: Untagged",
		"  m_Icon: {fileID: 0}",
		"  m_NavMeshLayer: 0",
		"  m_StaticEditorFlags: 0",
		"  m_IsActive: 1",
	}

	transform := &Block{
		FileID:  tid,
		ClassID: ClassTransform,
		anchor:  newAnchor(ClassTransform, tid, false),
		Lines: []string{
			"Transform:",
			"  m_ObjectHideFlags: 0",
			"  m_CorrespondingSourceObject: {fileID: 0}",
			"  m_PrefabInstance: {fileID: 0}",
			"  m_PrefabAsset: {fileID: 0}",
			fmt.Sprintf("  m_GameObject: {fileID: %d}", goID),
			"  m_LocalRotation: {x: 0, y: 0, z: 0, w: 1}",
			"  m_LocalPosition: {x: 0, y: 0, z: 0}",
			"  m_LocalScale: {x: 1, y: 1, z: 1}",
			"  m_Children: []",
			"  m_Father: {fileID: 0}",
			"  m_RootOrder: 0",
		},
	}
	d.insertBlock(transform)

	if parentTransform != nil {
		if err := d.SetField(transform, d.cfg().ParentField, fmt.Sprintf("{fileID: %d}", parentTransform.FileID)); err != nil {
			return nil, err
		}
		if err := d.addChildRef(parentTransform, tid); err != nil {
			return nil, err
		}
	}

	logging.Mutate("added GameObject %q (%d) under %d", name, goID, parentID)
	return goBlock, nil
}

func (d *Document) addComponent(classID int, name string, parentID int64) (*Block, error) {
	var goBlock *Block
	if parentID != 0 {
		goBlock = d.FindByID(parentID)
		if goBlock.ClassID != d.cfg().GameObjectClass {
			return nil, fmt.Errorf("%w: parent %d is not a GameObject", ErrMalformed, parentID)
		}
	}

	id := d.newFileID()
	b := &Block{
		FileID:  id,
		ClassID: classID,
		anchor:  newAnchor(classID, id, false),
	}

	b.Lines = []string{
		b.TypeName() + ":",
		"  m_ObjectHideFlags: 0",
		"  m_CorrespondingSourceObject: {fileID: 0}",
		"  m_PrefabInstance: {fileID: 0}",
		"  m_PrefabAsset: {fileID: 0}",
		fmt.Sprintf("  m_GameObject: {fileID: %d}", parentID),
		"  m_Enabled: 1",
	}
	if d.cfg().ScriptContainers[classID] {
		b.Lines = append(b.Lines,
			"  m_EditorHideFlags: 0",
			"  "+d.cfg().ScriptField+": {fileID: 0}",
			"  m_Name: "+name,
		)
	}
	d.insertBlock(b)

	if goBlock != nil {
		if err := d.appendComponentRef(goBlock, id); err != nil {
			return nil, err
		}
	}

	logging.Mutate("added %s (%d) on %d", b.TypeName(), id, parentID)
	return b, nil
}

// appendComponentRef adds an entry to a GameObject's component list.
func (d *Document) appendComponentRef(goBlock *Block, compID int64) error {
	for i, line := range goBlock.Lines {
		k, ok := lineKey(line)
		if !ok || k != "m_Component" {
			continue
		}
		indent := line[:indentOf(line)]
		item := indent + fmt.Sprintf("- component: {fileID: %d}", compID)
		if lineValue(line) == "[]" {
			goBlock.Lines[i] = rewriteValue(line, "")
		}
		insertAt := i + 1
		for insertAt < len(goBlock.Lines) && isListItem(goBlock.Lines[insertAt]) {
			insertAt++
		}
		goBlock.Lines = append(goBlock.Lines[:insertAt],
			append([]string{item}, goBlock.Lines[insertAt:]...)...)
		d.markDirty()
		return nil
	}
	return fmt.Errorf("%w: field m_Component", ErrNotFound)
}

// removeComponentRef deletes a component's entry from its owner's list.
func (d *Document) removeComponentRef(goBlock *Block, compID int64) {
	for i, line := range goBlock.Lines {
		if componentRefRe.MatchString(line) && parseRef(line) == compID {
			goBlock.Lines = append(goBlock.Lines[:i], goBlock.Lines[i+1:]...)
			d.markDirty()
			return
		}
	}
}

// DeleteBlock removes a block. Deleting a GameObject also removes its
// component blocks and detaches it from its parent's child list. With
// cascade, every descendant reachable through the hierarchy goes too, plus
// any stripped companion blocks owned by a deleted prefab instance; without
// cascade, a GameObject that still has children is refused rather than
// silently orphaning them.
func (d *Document) DeleteBlock(id int64, cascade bool) error {
	b := d.FindByID(id)
	if b == nil {
		return fmt.Errorf("%w: block %d", ErrNotFound, id)
	}

	switch b.ClassID {
	case d.cfg().GameObjectClass:
		return d.deleteGameObject(b, cascade)
	case ClassPrefabInstance:
		return d.deletePrefabInstance(b)
	default:
		// Plain component: detach from its owner, then remove.
		for _, goBlock := range d.FindByClass(d.cfg().GameObjectClass) {
			d.removeComponentRef(goBlock, id)
		}
		d.removeBlock(id)
		logging.Mutate("deleted %s (%d)", b.TypeName(), id)
		return nil
	}
}

func (d *Document) deleteGameObject(goBlock *Block, cascade bool) error {
	children := d.ChildrenOf(goBlock.FileID)
	if len(children) > 0 && !cascade {
		return fmt.Errorf("%w: object %d has %d children", ErrHasChildren, goBlock.FileID, len(children))
	}

	// Gather the full delete set before touching anything.
	var goIDs []int64
	frontier := []int64{goBlock.FileID}
	seen := map[int64]bool{goBlock.FileID: true}
	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]
		goIDs = append(goIDs, id)
		for _, child := range d.ChildrenOf(id) {
			if !seen[child] {
				seen[child] = true
				frontier = append(frontier, child)
			}
		}
	}

	doomed := make(map[int64]bool)
	for _, id := range goIDs {
		doomed[id] = true
		if b := d.FindByID(id); b != nil {
			for _, ref := range d.ComponentRefs(b) {
				doomed[ref] = true
			}
		}
	}

	// Detach the root from its parent before its transform disappears.
	if transform := d.TransformOf(goBlock.FileID); transform != nil {
		if fatherValue, err := d.GetField(transform, d.cfg().ParentField); err == nil {
			if fatherTID := parseRef(fatherValue); fatherTID != 0 {
				if father := d.FindByID(fatherTID); father != nil {
					_ = d.removeChildRef(father, transform.FileID)
				}
			}
		}
	}

	for id := range doomed {
		d.removeBlock(id)
	}
	logging.Mutate("deleted GameObject %d (+%d blocks, cascade=%t)", goBlock.FileID, len(doomed)-1, cascade)
	return nil
}

func (d *Document) deletePrefabInstance(instance *Block) error {
	doomed := map[int64]bool{instance.FileID: true}

	// Stripped companions exist only to stand in for this instance's
	// content; they go with it.
	for _, b := range d.blocks {
		if !b.Stripped {
			continue
		}
		if v, err := d.GetField(b, "m_PrefabInstance"); err == nil && parseRef(v) == instance.FileID {
			doomed[b.FileID] = true
		}
	}

	// Drop any child-list references to the doomed stripped transforms.
	providers := d.cfg().HierarchyProviders
	for _, b := range d.blocks {
		if doomed[b.FileID] || !providers[b.ClassID] {
			continue
		}
		for _, tid := range d.childTransformRefs(b) {
			if doomed[tid] {
				_ = d.removeChildRef(b, tid)
			}
		}
	}

	for id := range doomed {
		d.removeBlock(id)
	}
	logging.Mutate("deleted PrefabInstance %d (+%d stripped blocks)", instance.FileID, len(doomed)-1)
	return nil
}

// Reparent moves a GameObject under a new parent, or to the scene root with
// the RootTarget sentinel. References resolve by display name unless byID.
// All preconditions are validated before any field is written, so the three
// rewrites (child's parent field, old parent's child list, new parent's
// child list) apply together or not at all.
func (d *Document) Reparent(childRef, parentRef string, byID bool) error {
	child, err := d.ResolveTarget(childRef, byID)
	if err != nil {
		return err
	}
	if child.ClassID != d.cfg().GameObjectClass {
		return fmt.Errorf("%w: %d is not a GameObject", ErrMalformed, child.FileID)
	}
	childTransform := d.TransformOf(child.FileID)
	if childTransform == nil {
		return fmt.Errorf("%w: object %d has no transform", ErrMalformed, child.FileID)
	}

	var newParentTransform *Block
	if parentRef != RootTarget {
		parent, err := d.ResolveTarget(parentRef, byID)
		if err != nil {
			return err
		}
		if parent.FileID == child.FileID {
			return fmt.Errorf("%w: cannot parent an object to itself", ErrValidation)
		}
		for id := parent.FileID; id != 0; id = d.ParentOf(id) {
			if id == child.FileID {
				return fmt.Errorf("%w: cannot parent %d under its own descendant", ErrValidation, child.FileID)
			}
		}
		newParentTransform = d.TransformOf(parent.FileID)
		if newParentTransform == nil {
			return fmt.Errorf("%w: object %d has no transform", ErrMalformed, parent.FileID)
		}
	}

	fatherValue, err := d.GetField(childTransform, d.cfg().ParentField)
	if err != nil {
		return fmt.Errorf("%w: transform %d has no %s field", ErrMalformed, childTransform.FileID, d.cfg().ParentField)
	}
	var oldParentTransform *Block
	if fatherTID := parseRef(fatherValue); fatherTID != 0 {
		oldParentTransform = d.FindByID(fatherTID)
	}

	// Check every field the rewrite touches before writing any of them,
	// so a malformed transform cannot leave the hierarchy half-updated.
	if newParentTransform != nil && !hasKey(newParentTransform, d.cfg().ChildrenField) {
		return fmt.Errorf("%w: transform %d has no %s field", ErrMalformed, newParentTransform.FileID, d.cfg().ChildrenField)
	}
	if oldParentTransform != nil {
		listed := false
		for _, tid := range d.childTransformRefs(oldParentTransform) {
			if tid == childTransform.FileID {
				listed = true
				break
			}
		}
		if !listed {
			return fmt.Errorf("%w: transform %d not listed in %s of %d",
				ErrMalformed, childTransform.FileID, d.cfg().ChildrenField, oldParentTransform.FileID)
		}
	}

	if oldParentTransform != nil {
		if err := d.removeChildRef(oldParentTransform, childTransform.FileID); err != nil {
			return err
		}
	}
	if newParentTransform != nil {
		if err := d.addChildRef(newParentTransform, childTransform.FileID); err != nil {
			return err
		}
		if err := d.SetField(childTransform, d.cfg().ParentField, fmt.Sprintf("{fileID: %d}", newParentTransform.FileID)); err != nil {
			return err
		}
	} else {
		if err := d.SetField(childTransform, d.cfg().ParentField, "{fileID: 0}"); err != nil {
			return err
		}
	}

	logging.Mutate("reparented %d under %s", child.FileID, parentRef)
	return nil
}

// fileIDTokenRe matches a fileID token for reference rewriting in clones.
var fileIDTokenRe = regexp.MustCompile(`fileID: (-?\d+)`)

// rewriteRefs replaces references among the copied set with their new IDs,
// leaving references to blocks outside the set untouched.
func rewriteRefs(lines []string, mapping map[int64]int64) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = fileIDTokenRe.ReplaceAllStringFunc(line, func(tok string) string {
			id, _ := strconv.ParseInt(strings.TrimPrefix(tok, "fileID: "), 10, 64)
			if newID, ok := mapping[id]; ok {
				return fmt.Sprintf("fileID: %d", newID)
			}
			return tok
		})
	}
	return out
}

// CloneBlock deep-copies a block with freshly minted IDs. For GameObjects
// the whole descendant subtree and every component come along, with
// cross-references inside the copied set rewritten to the new IDs. The
// clone of a parented object is registered in the parent's child list.
func (d *Document) CloneBlock(id int64) (*Block, error) {
	src := d.FindByID(id)
	if src == nil {
		return nil, fmt.Errorf("%w: block %d", ErrNotFound, id)
	}

	var originals []*Block
	switch src.ClassID {
	case d.cfg().GameObjectClass:
		seen := map[int64]bool{}
		frontier := []int64{src.FileID}
		var goIDs []int64
		for len(frontier) > 0 {
			goID := frontier[0]
			frontier = frontier[1:]
			if seen[goID] {
				continue
			}
			seen[goID] = true
			goIDs = append(goIDs, goID)
			frontier = append(frontier, d.ChildrenOf(goID)...)
		}
		ids := map[int64]bool{}
		for _, goID := range goIDs {
			ids[goID] = true
			if b := d.FindByID(goID); b != nil {
				for _, ref := range d.ComponentRefs(b) {
					ids[ref] = true
				}
			}
		}
		// Preserve document order among the copies.
		for _, b := range d.blocks {
			if ids[b.FileID] {
				originals = append(originals, b)
			}
		}
	default:
		originals = []*Block{src}
	}

	mapping := make(map[int64]int64, len(originals))
	for _, b := range originals {
		mapping[b.FileID] = d.newFileID()
	}

	var root *Block
	for _, b := range originals {
		dup := b.clone()
		dup.FileID = mapping[b.FileID]
		dup.anchor = newAnchor(dup.ClassID, dup.FileID, dup.Stripped)
		dup.Lines = rewriteRefs(dup.Lines, mapping)
		d.insertBlock(dup)
		if b.FileID == src.FileID {
			root = dup
		}
	}

	// Hierarchy consistency: a parented clone must appear in the
	// parent's child list exactly like the original does.
	if src.ClassID == d.cfg().GameObjectClass {
		if cloneTransform := d.TransformOf(root.FileID); cloneTransform != nil {
			if fatherValue, err := d.GetField(cloneTransform, d.cfg().ParentField); err == nil {
				if fatherTID := parseRef(fatherValue); fatherTID != 0 {
					if father := d.FindByID(fatherTID); father != nil {
						if err := d.addChildRef(father, cloneTransform.FileID); err != nil {
							return nil, err
						}
					}
				}
			}
		}
	}

	logging.Mutate("cloned %d -> %d (%d blocks)", id, root.FileID, len(originals))
	return root, nil
}
