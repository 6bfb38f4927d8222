package scene

import (
	"sort"
	"strings"
)

// Match is one FindByName hit with its relevance score. Fuzzy scores are
// tiered: 100 exact, 85 prefix, 70 substring, otherwise the fraction of
// pattern characters present scaled to 50. Exact mode always scores 100.
type Match struct {
	Block *Block
	Name  string
	Score float64
}

// DisplayName returns the block's human-facing name: m_Name for
// GameObjects, the m_Name override for prefab instances, empty for plain
// component blocks.
func (d *Document) DisplayName(b *Block) string {
	switch b.ClassID {
	case d.cfg().GameObjectClass:
		name, err := d.GetField(b, "m_Name")
		if err != nil {
			return ""
		}
		return name
	case ClassPrefabInstance:
		return d.InstanceName(b)
	}
	return ""
}

// FindByName matches GameObjects and prefab instances by display name.
// Exact mode requires case-sensitive equality. Fuzzy mode lowercases both
// sides and keeps substring hits, sorted by descending score with ties
// broken by document order.
func (d *Document) FindByName(pattern string, fuzzy bool) []Match {
	var matches []Match
	order := make(map[*Block]int)

	for i, b := range d.blocks {
		if b.Stripped {
			continue
		}
		if b.ClassID != d.cfg().GameObjectClass && b.ClassID != ClassPrefabInstance {
			continue
		}
		name := d.DisplayName(b)
		if name == "" {
			continue
		}

		if fuzzy {
			lowerName := strings.ToLower(name)
			lowerPattern := strings.ToLower(pattern)
			if !strings.Contains(lowerName, lowerPattern) {
				continue
			}
			order[b] = i
			matches = append(matches, Match{Block: b, Name: name, Score: fuzzyScore(lowerPattern, lowerName)})
		} else if name == pattern {
			order[b] = i
			matches = append(matches, Match{Block: b, Name: name, Score: 100})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].Score != matches[b].Score {
			return matches[a].Score > matches[b].Score
		}
		return order[matches[a].Block] < order[matches[b].Block]
	})
	return matches
}

// fuzzyScore rates how well a lowercased pattern matches a lowercased name.
func fuzzyScore(pattern, name string) float64 {
	if pattern == name {
		return 100
	}
	if strings.HasPrefix(name, pattern) {
		return 85
	}
	if strings.Contains(name, pattern) {
		return 70
	}
	if pattern == "" {
		return 0
	}
	common := 0
	for _, r := range pattern {
		if strings.ContainsRune(name, r) {
			common++
		}
	}
	return float64(common) / float64(len(pattern)) * 50
}
