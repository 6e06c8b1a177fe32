package protocol

import "encoding/json"

// IntentEnvelope is the client-to-server message wrapper.
type IntentEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type RequestLaunchExpedition struct {
	ZoneID    string `json:"zoneId"`
	Tier      int    `json:"tier"`
	Objective string `json:"objective"`
	Seed      int64  `json:"seed"`
}

type RequestOpenChest struct {
	ChestID string `json:"chestId"`
}

type RequestUseExtractionPortal struct{}

type RequestAbandonExpedition struct{}

type NotifyMonsterKilled struct {
	MonsterID string `json:"monsterId"`
}

type NotifyPlayerDied struct{}

type NotifyPlayerMoved struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
