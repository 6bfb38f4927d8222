package scene

import (
	"fmt"
	"strconv"
)

// Direction selects which way the reference tracer walks.
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
	DirectionBoth     Direction = "both"
)

// ParseDirection validates a caller-supplied direction string.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionOutgoing, DirectionIncoming, DirectionBoth:
		return Direction(s), nil
	}
	return "", fmt.Errorf("%w: direction %q (want outgoing, incoming, or both)", ErrValidation, s)
}

// Edge is one dependency link found by the tracer, tagged with the BFS
// depth at which it was first seen.
type Edge struct {
	Source int64 `json:"source"`
	Target int64 `json:"target"`
	Depth  int   `json:"depth"`
}

// outgoingRefs collects every identifier-shaped reference in a block's
// field values, excluding the null reference and self-references.
func (d *Document) outgoingRefs(b *Block) []int64 {
	var refs []int64
	seen := map[int64]bool{}
	for _, line := range b.Lines {
		for _, m := range refRe.FindAllStringSubmatch(line, -1) {
			id, _ := strconv.ParseInt(m[1], 10, 64)
			if id == 0 || id == b.FileID || seen[id] {
				continue
			}
			// Only count references that resolve inside this
			// document; cross-file GUID references have no block
			// here to link to.
			if d.FindByID(id) == nil {
				continue
			}
			seen[id] = true
			refs = append(refs, id)
		}
	}
	return refs
}

// Trace walks identifier references breadth-first from startID and returns
// the dependency slice as edges. Outgoing follows references embedded in
// the frontier blocks' own fields; incoming scans the whole document for
// blocks referencing the frontier; both unions the two per depth level. A
// visited set guarantees termination on reference cycles.
func (d *Document) Trace(startID int64, dir Direction, maxDepth int) ([]Edge, error) {
	if d.FindByID(startID) == nil {
		return nil, fmt.Errorf("%w: block %d", ErrNotFound, startID)
	}
	if maxDepth < 0 {
		return nil, fmt.Errorf("%w: depth must be non-negative", ErrValidation)
	}

	visited := map[int64]bool{startID: true}
	frontier := []int64{startID}
	var edges []Edge

	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		var next []int64
		discovered := map[int64]bool{}

		for _, id := range frontier {
			b := d.FindByID(id)
			if b == nil {
				continue
			}

			if dir == DirectionOutgoing || dir == DirectionBoth {
				for _, target := range d.outgoingRefs(b) {
					edges = append(edges, Edge{Source: id, Target: target, Depth: depth})
					if !visited[target] && !discovered[target] {
						discovered[target] = true
						next = append(next, target)
					}
				}
			}

			if dir == DirectionIncoming || dir == DirectionBoth {
				for _, other := range d.blocks {
					if other.FileID == id {
						continue
					}
					for _, target := range d.outgoingRefs(other) {
						if target != id {
							continue
						}
						edges = append(edges, Edge{Source: other.FileID, Target: id, Depth: depth})
						if !visited[other.FileID] && !discovered[other.FileID] {
							discovered[other.FileID] = true
							next = append(next, other.FileID)
						}
						break
					}
				}
			}
		}

		for id := range discovered {
			visited[id] = true
		}
		frontier = next
	}

	return dedupeEdges(edges), nil
}

// dedupeEdges drops repeated (source, target) pairs, keeping the depth of
// first visit.
func dedupeEdges(edges []Edge) []Edge {
	type key struct{ s, t int64 }
	seen := map[key]bool{}
	out := edges[:0]
	for _, e := range edges {
		k := key{e.Source, e.Target}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}
