package scene

import (
	"fmt"
	"strconv"
)

// Pagination bounds, matching the limits the editor tooling expects.
const (
	DefaultPageSize = 200
	MaxPageSize     = 1000
	DefaultMaxDepth = 10
	MaxMaxDepth     = 50
)

// BlockDetail is the tagged inspection result: the variant is chosen by
// the block's class at construction, not sniffed from field presence
// downstream.
type BlockDetail interface {
	DetailKind() string
}

// GameObjectDetail describes a container object with its components and
// hierarchy links.
type GameObjectDetail struct {
	Kind       string      `json:"type"`
	Name       string      `json:"name"`
	FileID     int64       `json:"file_id"`
	Active     bool        `json:"active"`
	Tag        string      `json:"tag,omitempty"`
	Layer      int         `json:"layer,omitempty"`
	Parent     int64       `json:"parent,omitempty"`
	Children   []int64     `json:"children,omitempty"`
	Components []Component `json:"components"`
}

func (GameObjectDetail) DetailKind() string { return "GameObject" }

// PrefabInstanceDetail describes a template instance: its source reference
// and override bookkeeping, not a component list.
type PrefabInstanceDetail struct {
	Kind              string `json:"type"`
	Name              string `json:"name"`
	FileID            int64  `json:"file_id"`
	SourceGUID        string `json:"source_guid"`
	SourcePath        string `json:"source_prefab,omitempty"`
	ModificationCount int    `json:"modifications_count"`
}

func (PrefabInstanceDetail) DetailKind() string { return "PrefabInstance" }

// InspectOptions tunes detail construction and pagination.
type InspectOptions struct {
	IncludeProperties bool
	Verbose           bool
	PageSize          int
	Cursor            int
	MaxDepth          int
	Resolver          GUIDResolver
}

func (o *InspectOptions) normalize() {
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.PageSize > MaxPageSize {
		o.PageSize = MaxPageSize
	}
	if o.Cursor < 0 {
		o.Cursor = 0
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxDepth > MaxMaxDepth {
		o.MaxDepth = MaxMaxDepth
	}
	if o.Resolver == nil {
		o.Resolver = NopResolver{}
	}
}

// PaginatedInspection is one page of a whole-document inspection.
type PaginatedInspection struct {
	File       string        `json:"file"`
	Total      int           `json:"total"`
	Cursor     int           `json:"cursor"`
	NextCursor *int          `json:"next_cursor,omitempty"`
	Truncated  bool          `json:"truncated"`
	PageSize   int           `json:"page_size"`
	Objects    []BlockDetail `json:"gameobjects"`
	Instances  []BlockDetail `json:"prefab_instances,omitempty"`
}

// detailFor builds the tagged variant for one block.
func (d *Document) detailFor(b *Block, opts InspectOptions) BlockDetail {
	switch b.ClassID {
	case ClassPrefabInstance:
		detail := PrefabInstanceDetail{
			Kind:              "PrefabInstance",
			Name:              d.InstanceName(b),
			FileID:            b.FileID,
			SourceGUID:        d.SourceGUID(b),
			ModificationCount: d.ModificationCount(b),
		}
		if path, ok := opts.Resolver.Resolve(detail.SourceGUID); ok {
			detail.SourcePath = path
		}
		return detail
	default:
		detail := GameObjectDetail{
			Kind:       "GameObject",
			Name:       d.DisplayName(b),
			FileID:     b.FileID,
			Components: d.ComponentsOf(b.FileID, opts.Resolver),
		}
		if active, err := d.GetField(b, "m_IsActive"); err == nil {
			detail.Active = active == "1"
		}
		if opts.Verbose {
			if tag, err := d.GetField(b, "m_TagString"); err == nil {
				detail.Tag = tag
			}
			if layer, err := d.GetField(b, "m_Layer"); err == nil {
				detail.Layer, _ = strconv.Atoi(layer)
			}
			detail.Parent = d.ParentOf(b.FileID)
			detail.Children = d.ChildrenOf(b.FileID)
		}
		if opts.IncludeProperties {
			for i := range detail.Components {
				if comp := d.FindByID(detail.Components[i].FileID); comp != nil {
					detail.Components[i].Properties = componentProperties(comp)
				}
			}
		}
		if !opts.Verbose {
			for i := range detail.Components {
				detail.Components[i].ClassID = 0
				detail.Components[i].FileID = 0
				detail.Components[i].ScriptGUID = ""
			}
		}
		return detail
	}
}

// hierarchyDepth counts parent links from an object to its root.
func (d *Document) hierarchyDepth(goID int64) int {
	depth := 0
	for id := d.ParentOf(goID); id != 0; id = d.ParentOf(id) {
		depth++
		if depth > MaxMaxDepth {
			break
		}
	}
	return depth
}

// Inspect builds the detail for one block. A numeric identifier is a
// literal file ID; anything else resolves by fuzzy name match over
// GameObjects first, then prefab instances.
func (d *Document) Inspect(identifier string, opts InspectOptions) (BlockDetail, error) {
	opts.normalize()

	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		b := d.FindByID(id)
		if b == nil {
			return nil, fmt.Errorf("%w: block %s", ErrNotFound, identifier)
		}
		return d.detailFor(b, opts), nil
	}

	matches := d.FindByName(identifier, true)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: object %q", ErrNotFound, identifier)
	}
	return d.detailFor(matches[0].Block, opts), nil
}

// InspectAll inspects every GameObject and prefab instance, one page per
// call. Instances are reported only on the first page so repeated cursors
// do not duplicate them. Objects deeper than MaxDepth are filtered out
// before pagination, so page unions still cover every reported object
// exactly once in document order.
func (d *Document) InspectAll(opts InspectOptions) PaginatedInspection {
	opts.normalize()

	var details []BlockDetail
	for _, b := range d.blocks {
		if b.ClassID != d.cfg().GameObjectClass || b.Stripped {
			continue
		}
		if d.hierarchyDepth(b.FileID) > opts.MaxDepth {
			continue
		}
		details = append(details, d.detailFor(b, opts))
	}

	page := PaginatedInspection{
		File:     d.path,
		Total:    len(details),
		Cursor:   opts.Cursor,
		PageSize: opts.PageSize,
	}

	if opts.Cursor == 0 {
		for _, inst := range d.PrefabInstances() {
			page.Instances = append(page.Instances, d.detailFor(inst, opts))
		}
	}

	start := opts.Cursor
	if start > len(details) {
		start = len(details)
	}
	end := start + opts.PageSize
	if end > len(details) {
		end = len(details)
	}
	page.Objects = details[start:end]
	if end < len(details) {
		page.Truncated = true
		next := end
		page.NextCursor = &next
	}
	return page
}
