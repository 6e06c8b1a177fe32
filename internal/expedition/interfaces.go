package expedition

import "math/rand"

// Broadcaster delivers director events to the outside world. Emission is
// fire-and-forget; subscribers must never mutate director-owned state.
type Broadcaster interface {
	BroadcastEvent(eventType string, payload any)
}

// Logger is the logging abstraction shared by the director systems.
type Logger interface {
	Printf(format string, v ...any)
}

// MonsterUpgrader is the opaque rarity/affix subsystem invoked once per
// spawned monster. Implementations may rename the instance and scale its
// health and damage.
type MonsterUpgrader interface {
	Upgrade(m *Monster, tier int, rng *rand.Rand)
}

// NopUpgrader leaves every spawn untouched.
type NopUpgrader struct{}

func (NopUpgrader) Upgrade(*Monster, int, *rand.Rand) {}
