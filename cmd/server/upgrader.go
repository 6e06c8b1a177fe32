package main

import (
	"math/rand"

	"github.com/Keildelaman/realms-arpg-sub000/internal/expedition"
)

// RarityUpgrader promotes a fraction of spawned monsters to higher rarity
// bands with scaled health and damage. Bosses are left alone; their stats
// come from the definition.
type RarityUpgrader struct{}

func NewRarityUpgrader() *RarityUpgrader {
	return &RarityUpgrader{}
}

func (u *RarityUpgrader) Upgrade(m *expedition.Monster, tier int, rng *rand.Rand) {
	if m.IsBoss {
		return
	}

	roll := rng.Float64()
	magicChance := 0.10 + 0.02*float64(tier)
	rareChance := 0.02 + 0.01*float64(tier)

	switch {
	case roll < rareChance:
		m.Rarity = "rare"
		m.Name = "Dreadful " + m.Name
		m.MaxHealth = m.MaxHealth * 3
		m.Health = m.MaxHealth
		m.Damage = m.Damage * 2
	case roll < rareChance+magicChance:
		m.Rarity = "magic"
		m.MaxHealth = m.MaxHealth * 3 / 2
		m.Health = m.MaxHealth
		m.Damage = m.Damage * 5 / 4
	}
}
