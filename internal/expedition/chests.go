package expedition

import (
	"fmt"

	"github.com/Keildelaman/realms-arpg-sub000/internal/content"
	"github.com/Keildelaman/realms-arpg-sub000/internal/geometry"
	"github.com/Keildelaman/realms-arpg-sub000/internal/mapgen"
	"github.com/Keildelaman/realms-arpg-sub000/internal/protocol"
)

const (
	chestMinSpawnDistance = 25.0
	chestMinSpacing       = 30.0
	chestChanceDecay      = 0.5
)

// placeMapChests scatters pre-placed chests over the encounter points at
// launch. Each placement halves the chance of the next one, so most maps
// carry one or two chests and the occasional map carries none.
func (d *Director) placeMapChests(run *Run, tuning content.Tuning) {
	points := make([]mapgen.EncounterPoint, len(run.Map.EncounterPoints))
	copy(points, run.Map.EncounterPoints)
	d.rng.Shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})

	spawn := run.Map.SpawnPosition()
	chance := tuning.ChestChance

	for _, p := range points {
		if chance <= 0 || d.rng.Float64() >= chance {
			continue
		}
		if p.Position.DistanceTo(spawn) < chestMinSpawnDistance {
			continue
		}
		tooClose := false
		for _, existing := range run.Chests {
			if existing.Position.DistanceTo(p.Position) < chestMinSpacing {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}

		chest := d.newChest(run, p.Position, tuning, content.ChestSourceMap)
		run.Chests = append(run.Chests, chest)
		chance *= chestChanceDecay
	}
}

// spawnCompletionChest drops the guaranteed reward chest next to the player
// when the objective completes. Completion chests roll on boosted rarity
// weights so they read as the run's payoff.
func (d *Director) spawnCompletionChest(run *Run, tuning content.Tuning) {
	pos := d.wallSafeOffset(run, run.PlayerPos, 3.0)
	chest := d.newChest(run, pos, tuning, content.ChestSourceCompletion)
	run.Chests = append(run.Chests, chest)
}

func (d *Director) newChest(run *Run, pos geometry.Vec2, tuning content.Tuning, source content.ChestSource) *Chest {
	rarity := d.rollRarity(tuning.ChestRarityWeights, source)
	d.nextChestID++
	chest := &Chest{
		ID:        fmt.Sprintf("chest_%d", d.nextChestID),
		Position:  pos,
		Rarity:    rarity,
		Source:    source,
		DropCount: d.rollDropCount(tuning.ChestDropRanges, rarity),
	}
	d.broadcaster.BroadcastEvent(protocol.EventChestSpawned, protocol.ChestSpawned{
		RunID:   run.ID,
		ChestID: chest.ID,
		X:       pos.X,
		Y:       pos.Y,
		Rarity:  string(rarity),
		Source:  string(source),
	})
	return chest
}

// rollRarity draws from the tuning weight table. Completion chests shift
// weight toward the higher bands by squashing the common weight.
func (d *Director) rollRarity(weights map[content.Rarity]float64, source content.ChestSource) content.Rarity {
	order := []content.Rarity{content.RarityCommon, content.RarityMagic, content.RarityRare, content.RarityLegendary}

	total := 0.0
	adjusted := make([]float64, len(order))
	for i, r := range order {
		w := weights[r]
		if source == content.ChestSourceCompletion && r == content.RarityCommon {
			w *= 0.25
		}
		adjusted[i] = w
		total += w
	}
	if total <= 0 {
		return content.RarityCommon
	}

	roll := d.rng.Float64() * total
	for i, r := range order {
		roll -= adjusted[i]
		if roll <= 0 {
			return r
		}
	}
	return order[len(order)-1]
}

func (d *Director) rollDropCount(ranges map[content.Rarity]content.DropRange, rarity content.Rarity) int {
	r, ok := ranges[rarity]
	if !ok || r.Max < r.Min || r.Min < 0 {
		return 1
	}
	if r.Max == r.Min {
		return r.Min
	}
	return r.Min + d.rng.Intn(r.Max-r.Min+1)
}
