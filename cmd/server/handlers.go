package main

import (
	"encoding/json"
	"fmt"

	"github.com/Keildelaman/realms-arpg-sub000/internal/expedition"
	"github.com/Keildelaman/realms-arpg-sub000/internal/mapgen"
	"github.com/Keildelaman/realms-arpg-sub000/internal/protocol"
)

// IntentHandlers routes decoded client intents to the director.
type IntentHandlers struct {
	director *expedition.Director
	logger   Logger
}

func NewIntentHandlers(director *expedition.Director, logger Logger) *IntentHandlers {
	return &IntentHandlers{director: director, logger: logger}
}

// HandleMessage decodes one intent envelope and dispatches it. Malformed
// payloads are errors; unknown types are logged and dropped so old clients
// do not kill the connection.
func (h *IntentHandlers) HandleMessage(data []byte) error {
	var env protocol.IntentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode intent envelope: %w", err)
	}

	switch env.Type {
	case "RequestLaunchExpedition":
		var req protocol.RequestLaunchExpedition
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		objective := mapgen.Objective(req.Objective)
		if objective != mapgen.ObjectiveExtermination && objective != mapgen.ObjectiveBossHunt {
			h.logger.Printf("launch rejected: unknown objective %q", req.Objective)
			return nil
		}
		if _, err := h.director.Launch(req.ZoneID, req.Tier, objective, req.Seed); err != nil {
			h.logger.Printf("launch rejected: %v", err)
		}
		return nil

	case "RequestOpenChest":
		var req protocol.RequestOpenChest
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		h.director.OpenChest(req.ChestID)
		return nil

	case "RequestUseExtractionPortal":
		h.director.UseExtractionPortal()
		return nil

	case "RequestAbandonExpedition":
		h.director.Abandon()
		return nil

	case "NotifyMonsterKilled":
		var req protocol.NotifyMonsterKilled
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		h.director.MonsterKilled(req.MonsterID)
		return nil

	case "NotifyPlayerDied":
		h.director.PlayerDied()
		return nil

	case "NotifyPlayerMoved":
		var req protocol.NotifyPlayerMoved
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return fmt.Errorf("decode %s: %w", env.Type, err)
		}
		h.director.PlayerMoved(req.X, req.Y)
		return nil

	default:
		h.logger.Printf("unknown intent type: %s", env.Type)
		return nil
	}
}
