package expedition

import (
	"fmt"
	"math"
	"sort"

	"github.com/Keildelaman/realms-arpg-sub000/internal/content"
	"github.com/Keildelaman/realms-arpg-sub000/internal/geometry"
	"github.com/Keildelaman/realms-arpg-sub000/internal/mapgen"
	"github.com/Keildelaman/realms-arpg-sub000/internal/protocol"
)

const (
	spawnRingWidth      = 12.0
	spawnFailureCap     = 8
	spawnOffsetRadius   = 2.5
	spawnPlacementTries = 6
	packSizeMin         = 3
	packSizeMax         = 12
)

// initialSpawn populates the map at launch. Encounter points are walked in
// ring-interleaved order around the checkpoint so early packs spread in all
// directions; packs are spawned point-by-point until the budget runs out or
// failures exceed the cap. Boss hunts reserve one budget slot for the boss
// at the most distant point.
func (d *Director) initialSpawn(run *Run, zone *content.ZoneDefinition, tuning content.Tuning) {
	points := orderEncounterPoints(run.Map.EncounterPoints, run.Checkpoint, d.cfg.SafeRadius, d.rng.Intn(7)+1)

	bossReserved := false
	if run.Objective == mapgen.ObjectiveBossHunt && d.spawnBudget > 0 {
		d.spawnBudget-- // reserved for the boss
		bossReserved = true
	}

	failures := 0
	for _, p := range points {
		if d.spawnBudget <= 0 || failures > spawnFailureCap {
			break
		}
		if d.spawnPackAt(run, zone, tuning, p.Position, p.PackWeight) == 0 {
			failures++
		}
	}

	if bossReserved {
		d.spawnBoss(run, zone, points)
	}
}

// triggerRoomSpawns fires a room's pre-rolled spawn points on first entry,
// spending whatever budget the initial spawn left over.
func (d *Director) triggerRoomSpawns(run *Run, room *mapgen.Room) {
	if d.spawnBudget <= 0 {
		return
	}
	zone, ok := d.catalog.Zone(run.ZoneID)
	if !ok {
		return
	}
	tuning := d.catalog.TuningFor(run.ZoneID, run.Tier)
	for _, p := range room.SpawnPoints {
		if d.spawnBudget <= 0 {
			break
		}
		d.spawnPackAt(run, zone, tuning, p, 1.0)
	}
}

// spawnPackAt spawns one pack at an encounter point and returns how many
// monsters were placed. Soft failures (empty pool, unwalkable offsets)
// reduce content instead of erroring.
func (d *Director) spawnPackAt(run *Run, zone *content.ZoneDefinition, tuning content.Tuning, point geometry.Vec2, packWeight float64) int {
	pool := d.eligibleMonsters(run, zone)
	if len(pool) == 0 {
		return 0
	}

	base := float64(packSizeMin + run.Tier/2)
	size := int(math.Round(base * packWeight * tuning.PackSizeMultiplier * d.cfg.GlobalPackSizeMultiplier))
	jitter := d.rng.Intn(2) + 1
	if d.rng.Intn(2) == 0 {
		jitter = -jitter
	}
	size += jitter
	if size < packSizeMin {
		size = packSizeMin
	} else if size > packSizeMax {
		size = packSizeMax
	}
	if size > d.spawnBudget {
		size = d.spawnBudget
	}

	spawned := 0
	for i := 0; i < size; i++ {
		def := d.weightedPick(pool)
		pos, ok := d.placementNear(run, point, def.CollisionRadius)
		if !ok {
			continue
		}
		d.spawnMonster(run, def, pos, false)
		spawned++
	}
	return spawned
}

// spawnBoss places the zone boss at the most distant encounter point from
// the checkpoint, using the slot reserved by initialSpawn.
func (d *Director) spawnBoss(run *Run, zone *content.ZoneDefinition, points []mapgen.EncounterPoint) {
	def, ok := d.catalog.Monster(zone.BossID)
	if !ok {
		d.logger.Printf("WARN: zone %s boss %q missing, boss hunt degrades to empty", zone.ID, zone.BossID)
		return
	}

	var at geometry.Vec2
	best := -1.0
	for _, p := range points {
		if dist := p.Position.DistanceTo(run.Checkpoint); dist > best {
			best = dist
			at = p.Position
		}
	}
	if best < 0 {
		at = run.Map.Rooms[run.Map.ExitRoomID].Center
	}
	if pos, ok := d.placementNear(run, at, def.CollisionRadius); ok {
		at = pos
	}

	d.spawnBudget++ // hand the reserved slot back so spawnMonster's decrement balances
	boss := d.spawnMonster(run, def, at, true)
	run.BossMonsterID = boss.ID
}

// eligibleMonsters resolves the zone's monster pool. The tutorial map (the
// first zone at tier 1) filters to the melee archetype.
func (d *Director) eligibleMonsters(run *Run, zone *content.ZoneDefinition) []*content.MonsterDefinition {
	tutorial := false
	if first := d.catalog.FirstZone(); first != nil {
		tutorial = zone.ID == first.ID && run.Tier == 1
	}

	var pool []*content.MonsterDefinition
	for _, id := range zone.MonsterIDs {
		def, ok := d.catalog.Monster(id)
		if !ok || def.SpawnWeight <= 0 {
			continue
		}
		if tutorial && def.Archetype != "melee" {
			continue
		}
		pool = append(pool, def)
	}
	return pool
}

// weightedPick selects by spawn weight. If the roll falls through (all
// weights zero), the first entry is used; kept from the source behavior and
// logged so it stays visible.
func (d *Director) weightedPick(pool []*content.MonsterDefinition) *content.MonsterDefinition {
	total := 0.0
	for _, def := range pool {
		total += def.SpawnWeight
	}
	roll := d.rng.Float64() * total
	for _, def := range pool {
		roll -= def.SpawnWeight
		if roll <= 0 {
			return def
		}
	}
	d.logger.Printf("WARN: weighted monster pick fell through, defaulting to %s", pool[0].ID)
	return pool[0]
}

// placementNear offsets a spawn randomly around the point, rejecting
// positions not walkable at the candidate's collision radius.
func (d *Director) placementNear(run *Run, point geometry.Vec2, radius float64) (geometry.Vec2, bool) {
	for i := 0; i < spawnPlacementTries; i++ {
		angle := d.rng.Float64() * 2 * math.Pi
		dist := d.rng.Float64() * spawnOffsetRadius
		pos := point.Add(geometry.FromAngle(angle).Scale(dist))
		if run.Map.Grid.IsAreaWalkable(pos, radius) {
			return pos, true
		}
	}
	return geometry.Vec2{}, false
}

func (d *Director) spawnMonster(run *Run, def *content.MonsterDefinition, pos geometry.Vec2, isBoss bool) *Monster {
	d.nextMonsterID++
	monster := &Monster{
		ID:              fmt.Sprintf("monster_%d", d.nextMonsterID),
		DefID:           def.ID,
		Name:            def.Name,
		Archetype:       def.Archetype,
		Position:        pos,
		RoomID:          -1,
		Health:          def.MaxHealth,
		MaxHealth:       def.MaxHealth,
		Damage:          def.Damage,
		CollisionRadius: def.CollisionRadius,
		Rarity:          string(content.RarityCommon),
		IsBoss:          isBoss,
	}
	if room := run.Map.RoomAt(pos); room != nil {
		monster.RoomID = room.ID
	}
	d.upgrader.Upgrade(monster, run.Tier, d.rng)

	d.monsters[monster.ID] = monster
	d.spawnBudget--
	d.spawnedTotal++

	d.broadcaster.BroadcastEvent(protocol.EventMonsterSpawned, protocol.MonsterSpawned{
		RunID:     run.ID,
		MonsterID: monster.ID,
		DefID:     monster.DefID,
		Name:      monster.Name,
		Rarity:    monster.Rarity,
		X:         pos.X,
		Y:         pos.Y,
		RoomID:    monster.RoomID,
	})
	return monster
}

// orderEncounterPoints sorts points by distance from the center into rings
// and rotates each ring's angular order, so consecutive spawns sweep around
// the player instead of clustering on one side. Points inside the safe
// radius are excluded entirely.
func orderEncounterPoints(points []mapgen.EncounterPoint, center geometry.Vec2, safeRadius float64, rotation int) []mapgen.EncounterPoint {
	type ringPoint struct {
		point mapgen.EncounterPoint
		ring  int
		angle float64
	}

	var candidates []ringPoint
	for _, p := range points {
		dist := p.Position.DistanceTo(center)
		if dist < safeRadius {
			continue
		}
		candidates = append(candidates, ringPoint{
			point: p,
			ring:  int(dist / spawnRingWidth),
			angle: center.AngleTo(p.Position),
		})
	}

	rings := make(map[int][]ringPoint)
	maxRing := 0
	for _, c := range candidates {
		rings[c.ring] = append(rings[c.ring], c)
		if c.ring > maxRing {
			maxRing = c.ring
		}
	}

	ordered := make([]mapgen.EncounterPoint, 0, len(candidates))
	for ring := 0; ring <= maxRing; ring++ {
		members := rings[ring]
		if len(members) == 0 {
			continue
		}
		sort.Slice(members, func(i, j int) bool { return members[i].angle < members[j].angle })
		offset := (rotation * (ring + 1)) % len(members)
		for i := range members {
			ordered = append(ordered, members[(i+offset)%len(members)].point)
		}
	}
	return ordered
}
