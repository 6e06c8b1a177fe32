package protocol

// PatchEnvelope wraps every broadcast event with a monotonic sequence so
// clients can detect gaps. Delivery is fire-and-forget; there is no replay.
type PatchEnvelope struct {
	Sequence uint64 `json:"seq"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

// Event type constants emitted by the encounter director.
const (
	EventExpeditionLaunched  = "expedition:launched"
	EventRoomEntered         = "expedition:roomEntered"
	EventRoomCleared         = "expedition:roomCleared"
	EventProgress            = "expedition:progress"
	EventCheckpointUpdated   = "expedition:checkpointUpdated"
	EventPortalUsed          = "expedition:portalUsed"
	EventExpeditionCompleted = "expedition:completed"
	EventReadyToExtract      = "expedition:readyToExtract"
	EventChestSpawned        = "expedition:chestSpawned"
	EventChestOpened         = "expedition:chestOpened"
	EventExpeditionFailed    = "expedition:failed"
	EventReturnHub           = "expedition:returnHub"
	EventMonsterSpawned      = "expedition:monsterSpawned"
	EventMonstersCleared     = "expedition:monstersCleared"
	EventPlayerRespawned     = "expedition:playerRespawned"
)

type ExpeditionLaunched struct {
	RunID     string `json:"runId"`
	ZoneID    string `json:"zoneId"`
	Tier      int    `json:"tier"`
	Objective string `json:"objective"`
	Seed      int64  `json:"seed"`
	Portals   int    `json:"portals"`
}

type RoomEntered struct {
	RunID    string `json:"runId"`
	RoomID   int    `json:"roomId"`
	RoomType string `json:"roomType"`
}

type RoomCleared struct {
	RunID  string `json:"runId"`
	RoomID int    `json:"roomId"`
}

type Progress struct {
	RunID         string `json:"runId"`
	CurrentKills  int    `json:"currentKills"`
	RequiredKills int    `json:"requiredKills"`
}

type CheckpointUpdated struct {
	RunID string  `json:"runId"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type PortalUsed struct {
	RunID            string `json:"runId"`
	PortalsRemaining int    `json:"portalsRemaining"`
}

type ExpeditionCompleted struct {
	RunID      string `json:"runId"`
	XP         int    `json:"xp"`
	Gold       int    `json:"gold"`
	FirstClear bool   `json:"firstClear"`
}

type ReadyToExtract struct {
	RunID   string  `json:"runId"`
	PortalX float64 `json:"portalX"`
	PortalY float64 `json:"portalY"`
}

type ChestSpawned struct {
	RunID   string  `json:"runId"`
	ChestID string  `json:"chestId"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Rarity  string  `json:"rarity"`
	Source  string  `json:"source"`
}

type ChestOpened struct {
	RunID   string `json:"runId"`
	ChestID string `json:"chestId"`
	Drops   int    `json:"drops"`
}

type ExpeditionFailed struct {
	RunID  string `json:"runId"`
	Reason string `json:"reason"`
}

type ReturnHub struct {
	RunID   string `json:"runId"`
	Outcome string `json:"outcome"`
}

type MonsterSpawned struct {
	RunID     string  `json:"runId"`
	MonsterID string  `json:"monsterId"`
	DefID     string  `json:"defId"`
	Name      string  `json:"name"`
	Rarity    string  `json:"rarity"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	RoomID    int     `json:"roomId"`
}

type MonstersCleared struct {
	RunID string   `json:"runId"`
	IDs   []string `json:"ids"`
}

type PlayerRespawned struct {
	RunID            string  `json:"runId"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	InvulnerableFor  float64 `json:"invulnerableFor"`
	PortalsRemaining int     `json:"portalsRemaining"`
}
