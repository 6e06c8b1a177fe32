package content

import (
	"fmt"
	"sort"
)

// Catalog is the read-only registry of zones, monsters and tuning tables.
// The director and generator treat it as external data: missing entries
// degrade to defaults or empty results, never to a crash.
type Catalog struct {
	zones    map[string]*ZoneDefinition
	monsters map[string]*MonsterDefinition
	tuning   map[string]Tuning // keyed "zone:tier"
}

func NewCatalog() *Catalog {
	c := &Catalog{
		zones:    make(map[string]*ZoneDefinition),
		monsters: make(map[string]*MonsterDefinition),
		tuning:   make(map[string]Tuning),
	}
	c.initializeDefaults()
	return c
}

// Zone returns the zone definition by id.
func (c *Catalog) Zone(id string) (*ZoneDefinition, bool) {
	z, ok := c.zones[id]
	return z, ok
}

// Monster returns the monster definition by id.
func (c *Catalog) Monster(id string) (*MonsterDefinition, bool) {
	m, ok := c.monsters[id]
	return m, ok
}

// ZonesInOrder returns all zones sorted by unlock order.
func (c *Catalog) ZonesInOrder() []*ZoneDefinition {
	zones := make([]*ZoneDefinition, 0, len(c.zones))
	for _, z := range c.zones {
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i].Order < zones[j].Order })
	return zones
}

// FirstZone returns the tutorial zone (lowest order).
func (c *Catalog) FirstZone() *ZoneDefinition {
	zones := c.ZonesInOrder()
	if len(zones) == 0 {
		return nil
	}
	return zones[0]
}

// NextZone returns the zone after the given one in unlock order, or nil.
func (c *Catalog) NextZone(id string) *ZoneDefinition {
	zones := c.ZonesInOrder()
	for i, z := range zones {
		if z.ID == id && i+1 < len(zones) {
			return zones[i+1]
		}
	}
	return nil
}

// TuningFor looks up the zone+tier tuning entry. Tiers are clamped to 1..7;
// a missing entry falls back to the tier-scaled default table.
func (c *Catalog) TuningFor(zoneID string, tier int) Tuning {
	if tier < 1 {
		tier = 1
	} else if tier > 7 {
		tier = 7
	}
	if t, ok := c.tuning[tuningKey(zoneID, tier)]; ok {
		return t
	}
	return defaultTuning(tier)
}

// SetTuning registers a tuning override for a zone+tier.
func (c *Catalog) SetTuning(zoneID string, tier int, t Tuning) {
	c.tuning[tuningKey(zoneID, tier)] = t
}

// AddZone registers a zone definition.
func (c *Catalog) AddZone(z *ZoneDefinition) {
	c.zones[z.ID] = z
}

// AddMonster registers a monster definition.
func (c *Catalog) AddMonster(m *MonsterDefinition) {
	c.monsters[m.ID] = m
}

func tuningKey(zoneID string, tier int) string {
	return fmt.Sprintf("%s:%d", zoneID, tier)
}

// defaultTuning is the documented default-on-miss policy: a playable table
// scaled by tier.
func defaultTuning(tier int) Tuning {
	return Tuning{
		MapSizeScale:         1.0 + 0.08*float64(tier-1),
		EncounterDensity:     0.012,
		EncounterMinDistance: 9.0,
		SpawnBudget:          60 + 15*tier,
		PackSizeMultiplier:   1.0,
		KillQuotaRatio:       0.75,
		CheckpointInterval:   8 + 2*tier,
		CompletionXP:         250 * tier,
		CompletionGold:       120 * tier,
		ChestChance:          0.55,
		ChestRarityWeights: map[Rarity]float64{
			RarityCommon:    60 - 4*float64(tier),
			RarityMagic:     28,
			RarityRare:      10 + 2*float64(tier),
			RarityLegendary: 2 + 2*float64(tier),
		},
		ChestDropRanges: map[Rarity]DropRange{
			RarityCommon:    {Min: 1, Max: 2},
			RarityMagic:     {Min: 2, Max: 3},
			RarityRare:      {Min: 2, Max: 4},
			RarityLegendary: {Min: 3, Max: 5},
		},
	}
}

// initializeDefaults registers the built-in zones and monster roster.
func (c *Catalog) initializeDefaults() {
	c.AddMonster(&MonsterDefinition{
		ID: "husk_shambler", Name: "Husk Shambler", Archetype: "melee",
		SpawnWeight: 10, MaxHealth: 40, Damage: 6, MoveSpeed: 3.2, CollisionRadius: 0.5,
	})
	c.AddMonster(&MonsterDefinition{
		ID: "husk_brute", Name: "Husk Brute", Archetype: "melee",
		SpawnWeight: 4, MaxHealth: 110, Damage: 14, MoveSpeed: 2.4, CollisionRadius: 0.8,
		Abilities: []string{"slam"},
	})
	c.AddMonster(&MonsterDefinition{
		ID: "bile_spitter", Name: "Bile Spitter", Archetype: "ranged",
		SpawnWeight: 6, MaxHealth: 30, Damage: 9, MoveSpeed: 2.8, CollisionRadius: 0.5,
		Abilities: []string{"bile_bolt"},
	})
	c.AddMonster(&MonsterDefinition{
		ID: "grave_caller", Name: "Grave Caller", Archetype: "caster",
		SpawnWeight: 3, MaxHealth: 55, Damage: 11, MoveSpeed: 2.6, CollisionRadius: 0.6,
		Abilities: []string{"raise_husk", "hex"},
	})
	c.AddMonster(&MonsterDefinition{
		ID: "ashborn_reaver", Name: "Ashborn Reaver", Archetype: "melee",
		SpawnWeight: 7, MaxHealth: 75, Damage: 12, MoveSpeed: 3.6, CollisionRadius: 0.6,
	})
	c.AddMonster(&MonsterDefinition{
		ID: "cinder_wisp", Name: "Cinder Wisp", Archetype: "ranged",
		SpawnWeight: 5, MaxHealth: 25, Damage: 8, MoveSpeed: 4.0, CollisionRadius: 0.4,
		Abilities: []string{"ember_burst"},
	})
	c.AddMonster(&MonsterDefinition{
		ID: "boss_rotking", Name: "The Rot King", Archetype: "boss",
		SpawnWeight: 0, MaxHealth: 1200, Damage: 28, MoveSpeed: 2.2, CollisionRadius: 1.4,
		Abilities: []string{"slam", "raise_husk", "rot_nova"},
	})
	c.AddMonster(&MonsterDefinition{
		ID: "boss_ashen_tyrant", Name: "Ashen Tyrant", Archetype: "boss",
		SpawnWeight: 0, MaxHealth: 1800, Damage: 36, MoveSpeed: 2.6, CollisionRadius: 1.5,
		Abilities: []string{"ember_burst", "flame_wall"},
	})

	c.AddZone(&ZoneDefinition{
		ID: "blighted_hollows", Name: "Blighted Hollows", Order: 0, GateTier: 3,
		MonsterIDs: []string{"husk_shambler", "husk_brute", "bile_spitter", "grave_caller"},
		BossID:     "boss_rotking",
	})
	c.AddZone(&ZoneDefinition{
		ID: "ember_reach", Name: "Ember Reach", Order: 1, GateTier: 5,
		MonsterIDs: []string{"ashborn_reaver", "cinder_wisp", "husk_brute", "grave_caller"},
		BossID:     "boss_ashen_tyrant",
	})
}
