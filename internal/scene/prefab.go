package scene

import (
	"regexp"
	"strings"
)

// guidRe matches the 32-hex-character asset GUID inside a reference value.
var guidRe = regexp.MustCompile(`guid:\s*([0-9a-f]{32})`)

// Modification is one property override carried by a prefab instance:
// a template-local target, the field path to override, and the replacement
// value (or object reference for object-typed fields).
type Modification struct {
	TargetFileID int64
	TargetGUID   string
	PropertyPath string
	Value        string
	ObjectRef    string
}

// PrefabInstances returns every template-instance block in document order.
func (d *Document) PrefabInstances() []*Block {
	return d.FindByClass(ClassPrefabInstance)
}

// SourceGUID extracts the instance's template GUID from its m_SourcePrefab
// reference. Empty when absent.
func (d *Document) SourceGUID(instance *Block) string {
	for _, line := range instance.Lines {
		if k, ok := lineKey(line); ok && k == "m_SourcePrefab" {
			if m := guidRe.FindStringSubmatch(line); m != nil {
				return m[1]
			}
		}
	}
	return ""
}

// InstanceName derives an instance's display name from its m_Name override.
// Instances that never renamed their root report "<unnamed>"; the real name
// lives in the template, which this document cannot see.
func (d *Document) InstanceName(instance *Block) string {
	for _, mod := range d.Modifications(instance) {
		if mod.PropertyPath == "m_Name" && mod.Value != "" {
			return mod.Value
		}
	}
	return "<unnamed>"
}

// Modifications parses the instance's override list in list order.
// Duplicate property paths per target may legally coexist; callers that
// edit by key operate on the first match.
func (d *Document) Modifications(instance *Block) []Modification {
	start := modificationListStart(instance)
	if start < 0 {
		return nil
	}

	var mods []Modification
	keyIndent := indentOf(instance.Lines[start])
	var current *Modification
	for i := start + 1; i < len(instance.Lines); i++ {
		line := instance.Lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Items sit at the key's own indentation in this format;
		// their fields are indented two deeper.
		ind := indentOf(line)
		if ind < keyIndent || (ind == keyIndent && !isListItem(line)) {
			break
		}

		k, ok := lineKey(line)
		if !ok {
			continue
		}
		if isListItem(line) && k == "target" {
			if current != nil {
				mods = append(mods, *current)
			}
			current = &Modification{TargetFileID: parseRef(line)}
			if m := guidRe.FindStringSubmatch(line); m != nil {
				current.TargetGUID = m[1]
			}
			continue
		}
		if current == nil {
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
	if current != nil {
		mods = append(mods, *current)
	}
	return mods
}

// ModificationCount reports the number of override entries, matching the
// count of `- target:` lines in the list.
func (d *Document) ModificationCount(instance *Block) int {
	return len(d.Modifications(instance))
}

// TransformParent returns the host transform the instance is attached
// under, 0 when the instance sits at the scene root.
func (d *Document) TransformParent(instance *Block) int64 {
	value, err := d.GetField(instance, "m_Modification.m_TransformParent")
	if err != nil {
		return 0
	}
	return parseRef(value)
}

// modificationListStart locates the m_Modifications key line, -1 if the
// instance has no override list.
func modificationListStart(instance *Block) int {
	for i, line := range instance.Lines {
		if k, ok := lineKey(line); ok && k == "m_Modifications" {
			return i
		}
	}
	return -1
}
