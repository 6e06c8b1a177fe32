package mapgen

import (
	"math/rand"

	"github.com/Keildelaman/realms-arpg-sub000/internal/geometry"
)

// interiorCells collects centers of walkable cells whose four neighbors are
// also walkable, keeping samples off the walls.
func interiorCells(grid *geometry.Grid) []geometry.Vec2 {
	var cells []geometry.Vec2
	for cy := 0; cy < grid.Height; cy++ {
		for cx := 0; cx < grid.Width; cx++ {
			if !grid.IsWalkable(cx, cy) {
				continue
			}
			if grid.IsWalkable(cx+1, cy) && grid.IsWalkable(cx-1, cy) &&
				grid.IsWalkable(cx, cy+1) && grid.IsWalkable(cx, cy-1) {
				cells = append(cells, grid.CellCenter(cx, cy))
			}
		}
	}
	return cells
}

// sampleEncounterPoints rejection-samples interior walkable cells under a
// minimum-distance constraint. The target count is the largest of the
// area-derived target, the tier floor and the size-scale target. Pack weight
// grows with distance from the spawn so far packs run larger.
func sampleEncounterPoints(rng *rand.Rand, grid *geometry.Grid, spawn geometry.Vec2, p Params) []EncounterPoint {
	candidates := interiorCells(grid)
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	target := int(float64(grid.WalkableCount()) * p.EncounterDensity)
	if p.EncounterMinCount > target {
		target = p.EncounterMinCount
	}
	if p.EncounterTargetCount > target {
		target = p.EncounterTargetCount
	}

	maxSpawnDist := 1.0
	for _, c := range candidates {
		if d := c.DistanceTo(spawn); d > maxSpawnDist {
			maxSpawnDist = d
		}
	}

	var points []EncounterPoint
	for _, c := range candidates {
		if len(points) >= target {
			break
		}
		ok := true
		for _, accepted := range points {
			if c.DistanceTo(accepted.Position) < p.EncounterMinDistance {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		distFactor := c.DistanceTo(spawn) / maxSpawnDist
		points = append(points, EncounterPoint{
			Position:   c,
			PackWeight: 0.8 + 0.4*distFactor + rng.Float64()*0.2,
		})
	}
	return points
}

// sampleDecorationPoints picks visual-variety positions. Constraints are
// deliberately looser than the encounter sampler: any walkable cell
// qualifies and spacing is halved.
func sampleDecorationPoints(rng *rand.Rand, grid *geometry.Grid, p Params) []geometry.Vec2 {
	var candidates []geometry.Vec2
	for cy := 0; cy < grid.Height; cy++ {
		for cx := 0; cx < grid.Width; cx++ {
			if grid.IsWalkable(cx, cy) {
				candidates = append(candidates, grid.CellCenter(cx, cy))
			}
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	target := p.EncounterTargetCount * 3 / 2
	minDist := p.EncounterMinDistance / 2

	var points []geometry.Vec2
	for _, c := range candidates {
		if len(points) >= target {
			break
		}
		ok := true
		for _, accepted := range points {
			if c.DistanceTo(accepted) < minDist {
				ok = false
				break
			}
		}
		if ok {
			points = append(points, c)
		}
	}
	return points
}
