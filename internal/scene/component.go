package scene

import (
	"path/filepath"
	"strings"
)

// GUIDResolver maps asset GUIDs to project-relative paths. The guid
// package provides the real implementation; tests substitute a map.
type GUIDResolver interface {
	Resolve(guid string) (string, bool)
}

// NopResolver resolves nothing. Used when no project root is known.
type NopResolver struct{}

func (NopResolver) Resolve(string) (string, bool) { return "", false }

// MapResolver resolves from a fixed map. Handy in tests.
type MapResolver map[string]string

func (m MapResolver) Resolve(guid string) (string, bool) {
	path, ok := m[guid]
	return path, ok
}

// Component describes one component attached to a GameObject. Script
// containers additionally carry their script reference, resolved to a path
// and type name when the GUID is known.
type Component struct {
	TypeName   string            `json:"type"`
	ClassID    int               `json:"class_id,omitempty"`
	FileID     int64             `json:"file_id,omitempty"`
	ScriptGUID string            `json:"script_guid,omitempty"`
	ScriptPath string            `json:"script,omitempty"`
	ScriptName string            `json:"script_name,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// ComponentsOf returns the components of a GameObject in list order.
func (d *Document) ComponentsOf(goID int64, resolver GUIDResolver) []Component {
	goBlock := d.FindByID(goID)
	if goBlock == nil || goBlock.ClassID != d.cfg().GameObjectClass {
		return nil
	}
	if resolver == nil {
		resolver = NopResolver{}
	}

	var comps []Component
	for _, ref := range d.ComponentRefs(goBlock) {
		b := d.FindByID(ref)
		if b == nil {
			continue
		}
		comp := Component{
			TypeName: b.TypeName(),
			ClassID:  b.ClassID,
			FileID:   b.FileID,
		}

		if d.cfg().ScriptContainers[b.ClassID] {
			if value, err := d.GetField(b, d.cfg().ScriptField); err == nil {
				if m := guidRe.FindStringSubmatch(value); m != nil {
					comp.ScriptGUID = m[1]
					if path, ok := resolver.Resolve(m[1]); ok {
						comp.ScriptPath = path
						comp.ScriptName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
					}
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// componentProperties collects a component block's top-level fields as raw
// value text, keyed by field name. Nested structures keep their inline
// form; block-nested values are omitted.
func componentProperties(b *Block) map[string]string {
	props := make(map[string]string)
	for i, line := range b.Lines {
		if i == 0 || indentOf(line) != 2 || isListItem(line) {
			continue
		}
		k, ok := lineKey(line)
		if !ok {
			continue
		}
		if v := lineValue(line); v != "" {
			props[k] = v
		}
	}
	if len(props) == 0 {
		return nil
	}
	return props
}
