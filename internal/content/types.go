package content

// Rarity bands for chest loot and upgraded monsters.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityMagic     Rarity = "magic"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// ChestSource distinguishes pre-placed map chests from completion rewards.
type ChestSource string

const (
	ChestSourceMap        ChestSource = "map"
	ChestSourceCompletion ChestSource = "completion"
)

// ZoneDefinition describes one explorable zone. Zones unlock in Order;
// clearing a boss hunt at GateTier opens the next zone.
type ZoneDefinition struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Order      int      `json:"order"`
	GateTier   int      `json:"gateTier"`
	MonsterIDs []string `json:"monsterIds"`
	BossID     string   `json:"bossId"`
}

// MonsterDefinition is the static template for a spawnable monster.
type MonsterDefinition struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Archetype       string  `json:"archetype"`
	SpawnWeight     float64 `json:"spawnWeight"`
	MaxHealth       int     `json:"maxHealth"`
	Damage          int     `json:"damage"`
	MoveSpeed       float64 `json:"moveSpeed"`
	CollisionRadius float64  `json:"collisionRadius"`
	Abilities       []string `json:"abilities,omitempty"`
}

// DropRange bounds a chest's rolled drop count.
type DropRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Tuning is the zone+tier progression table consumed by the generator and
// the director. Lookups that miss fall back to defaults (see Catalog).
type Tuning struct {
	MapSizeScale         float64 `json:"mapSizeScale"`
	EncounterDensity     float64 `json:"encounterDensity"`
	EncounterMinDistance float64 `json:"encounterMinDistance"`

	SpawnBudget        int     `json:"spawnBudget"`
	PackSizeMultiplier float64 `json:"packSizeMultiplier"`
	KillQuotaRatio     float64 `json:"killQuotaRatio"`
	CheckpointInterval int     `json:"checkpointInterval"`

	CompletionXP   int `json:"completionXp"`
	CompletionGold int `json:"completionGold"`

	ChestChance        float64              `json:"chestChance"`
	ChestRarityWeights map[Rarity]float64   `json:"chestRarityWeights"`
	ChestDropRanges    map[Rarity]DropRange `json:"chestDropRanges"`
}
