package expedition

import (
	"fmt"

	"github.com/Keildelaman/realms-arpg-sub000/internal/content"
	"github.com/Keildelaman/realms-arpg-sub000/internal/mapgen"
)

const maxTier = 7

// grantRewards computes the completion payout. The first clear of each
// zone+tier+objective combination pays the multiplied amount exactly once;
// repeats pay the base amount.
func (d *Director) grantRewards(run *Run, tuning content.Tuning) *RewardBreakdown {
	key := fmt.Sprintf("%s:%d:%s", run.ZoneID, run.Tier, run.Objective)
	firstClear := !d.firstClears[key]
	if firstClear {
		d.firstClears[key] = true
	}

	xp := tuning.CompletionXP
	gold := tuning.CompletionGold
	if firstClear {
		xp = int(float64(xp) * d.cfg.FirstClearMultiplier)
		gold = int(float64(gold) * d.cfg.FirstClearMultiplier)
	}
	return &RewardBreakdown{XP: xp, Gold: gold, FirstClear: firstClear}
}

// applyUnlocks advances progression after a completed objective: the next
// tier of the cleared zone always opens, and a boss hunt at or above the
// zone's gate tier opens the next zone at tier 1.
func (d *Director) applyUnlocks(run *Run) {
	next := run.Tier + 1
	if next > maxTier {
		next = maxTier
	}
	if next > d.unlocked[run.ZoneID] {
		d.unlocked[run.ZoneID] = next
		d.logger.Printf("zone %s tier %d unlocked", run.ZoneID, next)
	}

	zone, ok := d.catalog.Zone(run.ZoneID)
	if !ok {
		return
	}
	if run.Objective == mapgen.ObjectiveBossHunt && run.Tier >= zone.GateTier {
		if nextZone := d.catalog.NextZone(run.ZoneID); nextZone != nil && d.unlocked[nextZone.ID] < 1 {
			d.unlocked[nextZone.ID] = 1
			d.logger.Printf("zone %s unlocked by %s boss hunt", nextZone.ID, run.ZoneID)
		}
	}
}
