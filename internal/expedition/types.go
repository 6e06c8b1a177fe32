package expedition

import (
	"github.com/Keildelaman/realms-arpg-sub000/internal/content"
	"github.com/Keildelaman/realms-arpg-sub000/internal/geometry"
	"github.com/Keildelaman/realms-arpg-sub000/internal/mapgen"
)

// RunStatus is the lifecycle state of an expedition run.
type RunStatus string

const (
	RunActive             RunStatus = "active"
	RunAwaitingExtraction RunStatus = "awaiting_extraction"
	RunCompleted          RunStatus = "completed"
	RunFailed             RunStatus = "failed"
	RunAbandoned          RunStatus = "abandoned"
)

// Terminal reports whether the run has ended. Active and awaiting_extraction
// runs are live; a new launch is refused while one exists.
func (s RunStatus) Terminal() bool {
	return s == RunCompleted || s == RunFailed || s == RunAbandoned
}

// Failure reasons carried by the expedition:failed event.
const (
	FailReasonNoPortals = "no_portals"
	FailReasonAbandoned = "abandoned"
)

// Progress tracks the kill quota. CurrentKills never exceeds RequiredKills;
// reaching equality is the completion trigger for extermination runs.
type Progress struct {
	CurrentKills  int `json:"currentKills"`
	RequiredKills int `json:"requiredKills"`
}

// RewardBreakdown is the pending reward granted on completion.
type RewardBreakdown struct {
	XP         int  `json:"xp"`
	Gold       int  `json:"gold"`
	FirstClear bool `json:"firstClear"`
}

// Chest is a lootable container, either pre-placed on the map or spawned as
// a completion reward.
type Chest struct {
	ID        string              `json:"id"`
	Position  geometry.Vec2       `json:"position"`
	Rarity    content.Rarity      `json:"rarity"`
	Source    content.ChestSource `json:"source"`
	DropCount int                 `json:"dropCount"`
	Opened    bool                `json:"opened"`
}

// Monster is a live spawned instance. Combat math belongs to an external
// collaborator; the director only tracks the population for budget,
// progress and cleanup.
type Monster struct {
	ID              string        `json:"id"`
	DefID           string        `json:"defId"`
	Name            string        `json:"name"`
	Archetype       string        `json:"archetype"`
	Position        geometry.Vec2 `json:"position"`
	RoomID          int           `json:"roomId"`
	Health          int           `json:"health"`
	MaxHealth       int           `json:"maxHealth"`
	Damage          int           `json:"damage"`
	CollisionRadius float64       `json:"collisionRadius"`
	Rarity          string        `json:"rarity"`
	IsBoss          bool          `json:"isBoss"`
}

// Run is the live expedition state. Owned exclusively by the director:
// created at launch, mutated through director operations only, discarded
// when the run ends.
type Run struct {
	ID        string           `json:"id"`
	Seed      int64            `json:"seed"`
	ZoneID    string           `json:"zoneId"`
	Tier      int              `json:"tier"`
	Objective mapgen.Objective `json:"objective"`
	Status    RunStatus        `json:"status"`

	Map *mapgen.Map `json:"-"`

	PortalsRemaining int              `json:"portalsRemaining"`
	Checkpoint       geometry.Vec2    `json:"checkpoint"`
	Progress         Progress         `json:"progress"`
	Reward           *RewardBreakdown `json:"reward,omitempty"`
	ExtractionPortal *geometry.Vec2   `json:"extractionPortal,omitempty"`
	Chests           []*Chest         `json:"chests"`
	LaunchedAt       float64          `json:"launchedAt"`

	BossMonsterID        string        `json:"bossMonsterId,omitempty"`
	PlayerPos            geometry.Vec2 `json:"playerPos"`
	InvulnerableFor      float64       `json:"invulnerableFor"`
	KillsSinceCheckpoint int           `json:"killsSinceCheckpoint"`
}

// Config is the director's global tuning, applied on top of the per-zone
// tables.
type Config struct {
	MaxPortals               int
	GlobalSpawnMultiplier    float64
	GlobalPackSizeMultiplier float64
	SafeRadius               float64 // no initial spawns this close to the checkpoint
	DespawnRadius            float64 // monsters cleared near the checkpoint on death
	InteractRadius           float64 // chest and portal interaction range
	RespawnInvulnerability   float64 // seconds of protection after respawn
	FirstClearMultiplier     float64
}

// DefaultConfig returns the baseline director configuration.
func DefaultConfig() Config {
	return Config{
		MaxPortals:               3,
		GlobalSpawnMultiplier:    1.0,
		GlobalPackSizeMultiplier: 1.0,
		SafeRadius:               14.0,
		DespawnRadius:            12.0,
		InteractRadius:           3.0,
		RespawnInvulnerability:   2.5,
		FirstClearMultiplier:     2.0,
	}
}
