package settings

import (
	"fmt"
	"strconv"
	"strings"

	"sceneforge/internal/logging"
	"sceneforge/internal/scene"
)

// QualityTier is one entry of the m_QualitySettings list.
type QualityTier struct {
	Index  int               `json:"index"`
	Name   string            `json:"name"`
	Fields map[string]string `json:"fields"`
}

// readTiers parses the m_QualitySettings list into ordered tiers. Items
// start with `- ` at the list indentation, continuation fields sit two
// spaces deeper.
func readTiers(block *scene.Block) []QualityTier {
	var tiers []QualityTier
	inList := false
	itemIndent := -1
	for _, line := range block.Lines {
		trimmed := strings.TrimLeft(line, " ")
		ind := len(line) - len(trimmed)
		if !inList {
			if strings.HasPrefix(trimmed, "m_QualitySettings:") {
				inList = true
			}
			continue
		}
		isItem := strings.HasPrefix(trimmed, "- ")
		if isItem && itemIndent < 0 {
			itemIndent = ind
		}
		if ind < itemIndent || (ind == itemIndent && !isItem) {
			break
		}
		if isItem && ind == itemIndent {
			tiers = append(tiers, QualityTier{Index: len(tiers), Fields: map[string]string{}})
			trimmed = strings.TrimPrefix(trimmed, "- ")
		}
		if len(tiers) == 0 {
			continue
		}
		colon := strings.Index(trimmed, ":")
		if colon < 0 {
			continue
		}
		tier := &tiers[len(tiers)-1]
		key, value := trimmed[:colon], strings.TrimSpace(trimmed[colon+1:])
		tier.Fields[key] = value
		if key == "name" {
			tier.Name = value
		}
	}
	return tiers
}

// ReadQuality returns the quality tiers with their field maps.
func ReadQuality(projectPath string) ([]QualityTier, error) {
	_, block, err := open(projectPath, "quality")
	if err != nil {
		return nil, err
	}
	return readTiers(block), nil
}

// SetQuality rewrites a quality field. The property is either a top-level
// field name (m_CurrentQuality) or tier.field where the tier is a list
// index or a tier name (e.g. High.pixelLightCount).
func SetQuality(projectPath, property, value string) error {
	doc, block, err := open(projectPath, "quality")
	if err != nil {
		return err
	}

	path := property
	if tier, field, ok := strings.Cut(property, "."); ok {
		idx, err := tierIndex(block, tier)
		if err != nil {
			return err
		}
		path = fmt.Sprintf("m_QualitySettings[%d].%s", idx, field)
	}
	if err := doc.SetField(block, path, value); err != nil {
		return err
	}
	if _, err := doc.Save(); err != nil {
		return err
	}
	logging.Settings("quality %s set to %s", property, value)
	return nil
}

// tierIndex resolves a tier selector, accepting a numeric index or a tier
// name. Name matching is case-insensitive since tier names are usually
// typed by hand.
func tierIndex(block *scene.Block, tier string) (int, error) {
	tiers := readTiers(block)
	if idx, err := strconv.Atoi(tier); err == nil {
		if idx < 0 || idx >= len(tiers) {
			return 0, fmt.Errorf("%w: quality tier %d (have %d tiers)", scene.ErrValidation, idx, len(tiers))
		}
		return idx, nil
	}
	for _, t := range tiers {
		if strings.EqualFold(t.Name, tier) {
			return t.Index, nil
		}
	}
	return 0, fmt.Errorf("%w: quality tier %q", scene.ErrNotFound, tier)
}
