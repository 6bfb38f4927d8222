package scene

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// refRe matches an embedded object reference inside a field value.
var refRe = regexp.MustCompile(`\{fileID:\s*(-?\d+)`)

// componentRefRe matches one entry of a GameObject's m_Component list.
var componentRefRe = regexp.MustCompile(`component:\s*\{fileID:\s*(-?\d+)\}`)

// parseRef extracts the file ID from a `{fileID: N, ...}` value. Returns 0
// when the value carries no reference.
func parseRef(value string) int64 {
	m := refRe.FindStringSubmatch(value)
	if m == nil {
		return 0
	}
	id, _ := strconv.ParseInt(m[1], 10, 64)
	return id
}

// ClassConfig names the class IDs and field names that carry the hierarchy
// relation. The defaults match stock editors; projects with custom
// transform-like components extend the provider set through configuration.
type ClassConfig struct {
	HierarchyProviders map[int]bool
	ScriptContainers   map[int]bool
	GameObjectClass    int
	ParentField        string
	ChildrenField      string
	ScriptField        string
}

// DefaultClassConfig returns the stock class registry.
func DefaultClassConfig() ClassConfig {
	return ClassConfig{
		HierarchyProviders: map[int]bool{ClassTransform: true, ClassRectTransform: true},
		ScriptContainers:   map[int]bool{ClassMonoBehaviour: true},
		GameObjectClass:    ClassGameObject,
		ParentField:        "m_Father",
		ChildrenField:      "m_Children",
		ScriptField:        "m_Script",
	}
}

// cfg returns the document's class configuration, defaulting lazily so a
// zero-configured document behaves like a stock one.
func (d *Document) cfg() ClassConfig {
	if d.classCfg == nil {
		c := DefaultClassConfig()
		d.classCfg = &c
	}
	return *d.classCfg
}

// SetClassConfig overrides the class registry used for hierarchy walks.
func (d *Document) SetClassConfig(c ClassConfig) {
	d.classCfg = &c
}

// ComponentRefs returns the file IDs listed in a GameObject's component
// list, in list order.
func (d *Document) ComponentRefs(goBlock *Block) []int64 {
	var refs []int64
	for _, line := range goBlock.Lines {
		m := componentRefRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id, _ := strconv.ParseInt(m[1], 10, 64)
		refs = append(refs, id)
	}
	return refs
}

// TransformOf returns the hierarchy-provider block (Transform or
// RectTransform) attached to a GameObject, or nil.
func (d *Document) TransformOf(goID int64) *Block {
	goBlock := d.FindByID(goID)
	if goBlock == nil || goBlock.ClassID != d.cfg().GameObjectClass {
		return nil
	}
	providers := d.cfg().HierarchyProviders
	for _, ref := range d.ComponentRefs(goBlock) {
		if comp := d.FindByID(ref); comp != nil && providers[comp.ClassID] {
			return comp
		}
	}
	return nil
}

// GameObjectOf resolves a hierarchy-provider block back to its owning
// GameObject, or nil.
func (d *Document) GameObjectOf(transform *Block) *Block {
	value, err := d.GetField(transform, "m_GameObject")
	if err != nil {
		return nil
	}
	return d.FindByID(parseRef(value))
}

// ParentOf returns the parent GameObject's file ID, or 0 for a root object.
func (d *Document) ParentOf(goID int64) int64 {
	transform := d.TransformOf(goID)
	if transform == nil {
		return 0
	}
	value, err := d.GetField(transform, d.cfg().ParentField)
	if err != nil {
		return 0
	}
	fatherTID := parseRef(value)
	if fatherTID == 0 {
		return 0
	}
	father := d.FindByID(fatherTID)
	if father == nil {
		return 0
	}
	if owner := d.GameObjectOf(father); owner != nil {
		return owner.FileID
	}
	return 0
}

// ChildrenOf returns the file IDs of a GameObject's child GameObjects in
// child-list order.
func (d *Document) ChildrenOf(goID int64) []int64 {
	transform := d.TransformOf(goID)
	if transform == nil {
		return nil
	}
	var children []int64
	for _, tid := range d.childTransformRefs(transform) {
		child := d.FindByID(tid)
		if child == nil {
			continue
		}
		if owner := d.GameObjectOf(child); owner != nil {
			children = append(children, owner.FileID)
		}
	}
	return children
}

// childTransformRefs reads the raw child-transform IDs from a
// hierarchy-provider block's children list.
func (d *Document) childTransformRefs(transform *Block) []int64 {
	field := d.cfg().ChildrenField
	start := -1
	for i, line := range transform.Lines {
		if k, ok := lineKey(line); ok && k == field {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	var refs []int64
	keyIndent := indentOf(transform.Lines[start])
	for i := start + 1; i < len(transform.Lines); i++ {
		line := transform.Lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		if indentOf(line) < keyIndent || (indentOf(line) == keyIndent && !isListItem(line)) {
			break
		}
		if !isListItem(line) {
			continue
		}
		if id := parseRef(line); id != 0 {
			refs = append(refs, id)
		}
	}
	return refs
}

// hasKey reports whether any line of a block carries the given key.
func hasKey(b *Block, key string) bool {
	for _, line := range b.Lines {
		if k, ok := lineKey(line); ok && k == key {
			return true
		}
	}
	return false
}

// addChildRef appends a child transform reference to a parent transform's
// children list, expanding an inline empty list into block form.
func (d *Document) addChildRef(parent *Block, childTID int64) error {
	field := d.cfg().ChildrenField
	for i, line := range parent.Lines {
		k, ok := lineKey(line)
		if !ok || k != field {
			continue
		}
		indent := line[:indentOf(line)]
		item := indent + fmt.Sprintf("- {fileID: %d}", childTID)

		if lineValue(line) == "[]" {
			parent.Lines[i] = rewriteValue(line, "")
		}
		insertAt := i + 1
		for insertAt < len(parent.Lines) && isListItem(parent.Lines[insertAt]) &&
			indentOf(parent.Lines[insertAt]) == indentOf(line) {
			insertAt++
		}
		parent.Lines = append(parent.Lines[:insertAt],
			append([]string{item}, parent.Lines[insertAt:]...)...)
		d.markDirty()
		return nil
	}
	return fmt.Errorf("%w: field %q", ErrNotFound, field)
}

// removeChildRef deletes a child transform reference from a parent
// transform's children list, collapsing the list back to inline empty form
// when the last entry goes.
func (d *Document) removeChildRef(parent *Block, childTID int64) error {
	field := d.cfg().ChildrenField
	start := -1
	for i, line := range parent.Lines {
		if k, ok := lineKey(line); ok && k == field {
			start = i
			break
		}
	}
	if start < 0 {
		return fmt.Errorf("%w: field %q", ErrNotFound, field)
	}

	keyIndent := indentOf(parent.Lines[start])
	removed := false
	remaining := 0
	for i := start + 1; i < len(parent.Lines); i++ {
		line := parent.Lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		if indentOf(line) < keyIndent || (indentOf(line) == keyIndent && !isListItem(line)) {
			break
		}
		if !isListItem(line) {
			continue
		}
		if !removed && parseRef(line) == childTID {
			parent.Lines = append(parent.Lines[:i], parent.Lines[i+1:]...)
			removed = true
			i--
			continue
		}
		remaining++
	}
	if !removed {
		return fmt.Errorf("%w: child transform %d not in %s", ErrNotFound, childTID, field)
	}
	if remaining == 0 {
		parent.Lines[start] = rewriteValue(parent.Lines[start], "[]")
	}
	d.markDirty()
	return nil
}
