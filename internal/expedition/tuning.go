package expedition

import (
	"github.com/Keildelaman/realms-arpg-sub000/internal/content"
	"github.com/Keildelaman/realms-arpg-sub000/internal/mapgen"
)

// paramsFromTuning projects the zone+tier tuning table onto the generator
// parameters, keeping the generator free of content-table knowledge.
func paramsFromTuning(tier int, t content.Tuning) mapgen.Params {
	p := mapgen.DefaultParams(tier)
	if t.MapSizeScale > 0 {
		p.SizeScale = t.MapSizeScale
	}
	if t.EncounterDensity > 0 {
		p.EncounterDensity = t.EncounterDensity
	}
	if t.EncounterMinDistance > 0 {
		p.EncounterMinDistance = t.EncounterMinDistance
	}
	return p
}
