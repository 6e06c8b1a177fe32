package expedition

import (
	"math/rand"
	"testing"

	"github.com/Keildelaman/realms-arpg-sub000/internal/content"
	"github.com/Keildelaman/realms-arpg-sub000/internal/geometry"
	"github.com/Keildelaman/realms-arpg-sub000/internal/mapgen"
)

func TestOrderEncounterPointsExcludesSafeRadius(t *testing.T) {
	center := geometry.Vec2{X: 0, Y: 0}
	points := []mapgen.EncounterPoint{
		{Position: geometry.Vec2{X: 2, Y: 0}}, // inside the safe radius
		{Position: geometry.Vec2{X: 20, Y: 0}},
		{Position: geometry.Vec2{X: -20, Y: 0}},
		{Position: geometry.Vec2{X: 0, Y: 40}},
	}

	ordered := orderEncounterPoints(points, center, 14, 1)

	if len(ordered) != 3 {
		t.Fatalf("Expected 3 points outside the safe radius, got %d", len(ordered))
	}
	for _, p := range ordered {
		if p.Position.DistanceTo(center) < 14 {
			t.Errorf("Expected no point within the safe radius, got %+v", p.Position)
		}
	}
}

func TestOrderEncounterPointsRingsNearFirst(t *testing.T) {
	center := geometry.Vec2{X: 0, Y: 0}
	points := []mapgen.EncounterPoint{
		{Position: geometry.Vec2{X: 50, Y: 0}},
		{Position: geometry.Vec2{X: 16, Y: 0}},
		{Position: geometry.Vec2{X: 0, Y: 52}},
		{Position: geometry.Vec2{X: 0, Y: 18}},
	}

	ordered := orderEncounterPoints(points, center, 14, 3)

	if len(ordered) != 4 {
		t.Fatalf("Expected all 4 points ordered, got %d", len(ordered))
	}
	// The two near-ring points must both come before the far-ring points.
	for i := 0; i < 2; i++ {
		if d := ordered[i].Position.DistanceTo(center); d > 30 {
			t.Errorf("Expected a near-ring point at position %d, got distance %f", i, d)
		}
	}
}

func TestTutorialPoolFiltersToMelee(t *testing.T) {
	d, _ := newTestDirector()

	if _, err := d.Launch("blighted_hollows", 1, mapgen.ObjectiveExtermination, 42); err != nil {
		t.Fatalf("launch failed: %v", err)
	}

	for _, m := range d.Monsters() {
		if m.Archetype != "melee" {
			t.Errorf("Expected only melee monsters on the tutorial map, got %s (%s)", m.DefID, m.Archetype)
		}
	}
}

func TestHigherTierSpawnsMixedArchetypes(t *testing.T) {
	d, _ := newTestDirector()
	d.unlocked["blighted_hollows"] = 2

	if _, err := d.Launch("blighted_hollows", 2, mapgen.ObjectiveExtermination, 42); err != nil {
		t.Fatalf("launch failed: %v", err)
	}

	archetypes := make(map[string]bool)
	for _, m := range d.Monsters() {
		archetypes[m.Archetype] = true
	}
	if len(archetypes) < 2 {
		t.Errorf("Expected a mixed pool above tier 1, got %v", archetypes)
	}
}

func TestSpawnedMonstersAreWalkable(t *testing.T) {
	d, _ := newTestDirector()

	run, err := d.Launch("blighted_hollows", 1, mapgen.ObjectiveExtermination, 42)
	if err != nil {
		t.Fatalf("launch failed: %v", err)
	}

	for _, m := range d.Monsters() {
		if !run.Map.Grid.IsAreaWalkable(m.Position, m.CollisionRadius) {
			t.Errorf("Expected monster %s placed on walkable ground at %+v", m.ID, m.Position)
		}
		if m.Health != m.MaxHealth {
			t.Errorf("Expected monster %s at full health", m.ID)
		}
	}
}

func TestWeightedPickFallsBackToFirst(t *testing.T) {
	d, _ := newTestDirector()
	d.rng = rand.New(rand.NewSource(1))
	pool := []*content.MonsterDefinition{
		{ID: "a", SpawnWeight: 0},
		{ID: "b", SpawnWeight: 0},
	}

	if got := d.weightedPick(pool); got.ID != "a" {
		t.Errorf("Expected fallback to the first entry, got %s", got.ID)
	}
}

func TestRollDropCountBounds(t *testing.T) {
	d, _ := newTestDirector()
	d.rng = rand.New(rand.NewSource(1))
	ranges := map[content.Rarity]content.DropRange{
		content.RarityCommon: {Min: 2, Max: 4},
		content.RarityMagic:  {Min: 3, Max: 3},
	}

	for i := 0; i < 50; i++ {
		n := d.rollDropCount(ranges, content.RarityCommon)
		if n < 2 || n > 4 {
			t.Fatalf("Expected drop count in [2,4], got %d", n)
		}
	}
	if n := d.rollDropCount(ranges, content.RarityMagic); n != 3 {
		t.Errorf("Expected fixed drop count 3, got %d", n)
	}
	if n := d.rollDropCount(ranges, content.RarityLegendary); n != 1 {
		t.Errorf("Expected default drop count 1 for a missing range, got %d", n)
	}
}

func TestRollRarityZeroWeights(t *testing.T) {
	d, _ := newTestDirector()
	d.rng = rand.New(rand.NewSource(1))

	got := d.rollRarity(map[content.Rarity]float64{}, content.ChestSourceMap)
	if got != content.RarityCommon {
		t.Errorf("Expected common for empty weights, got %s", got)
	}
}

func TestMapChestsKeepTheirDistance(t *testing.T) {
	d, _ := newTestDirector()

	run, err := d.Launch("blighted_hollows", 1, mapgen.ObjectiveExtermination, 42)
	if err != nil {
		t.Fatalf("launch failed: %v", err)
	}

	spawn := run.Map.SpawnPosition()
	var mapChests []*Chest
	for _, c := range run.Chests {
		if c.Source == content.ChestSourceMap {
			mapChests = append(mapChests, c)
		}
	}
	for i, a := range mapChests {
		if a.Position.DistanceTo(spawn) < chestMinSpawnDistance {
			t.Errorf("Expected chest %s at least %g from spawn", a.ID, chestMinSpawnDistance)
		}
		if a.DropCount < 1 {
			t.Errorf("Expected chest %s to hold at least one drop", a.ID)
		}
		for _, b := range mapChests[i+1:] {
			if a.Position.DistanceTo(b.Position) < chestMinSpacing {
				t.Errorf("Expected chests %s and %s at least %g apart", a.ID, b.ID, chestMinSpacing)
			}
		}
	}
}
