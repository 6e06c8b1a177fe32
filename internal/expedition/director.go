package expedition

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/Keildelaman/realms-arpg-sub000/internal/content"
	"github.com/Keildelaman/realms-arpg-sub000/internal/geometry"
	"github.com/Keildelaman/realms-arpg-sub000/internal/mapgen"
	"github.com/Keildelaman/realms-arpg-sub000/internal/protocol"
)

const playerCollisionRadius = 0.5

// Director owns the live run: spawn budget, population, objective progress,
// checkpoints, chests, rewards and extraction. Exactly one run is live at a
// time and all mutation goes through director operations.
type Director struct {
	catalog     *content.Catalog
	generator   *mapgen.Generator
	broadcaster Broadcaster
	logger      Logger
	upgrader    MonsterUpgrader
	cfg         Config

	run      *Run
	monsters map[string]*Monster

	unlocked    map[string]int  // zone id -> highest unlocked tier
	firstClears map[string]bool // "zone:tier:objective" -> granted

	spawnBudget  int
	spawnedTotal int

	rng           *rand.Rand
	nextRunID     int
	nextMonsterID int
	nextChestID   int
	gameTime      float64

	mutex sync.Mutex
}

func NewDirector(catalog *content.Catalog, generator *mapgen.Generator, broadcaster Broadcaster, logger Logger, upgrader MonsterUpgrader, cfg Config) *Director {
	d := &Director{
		catalog:     catalog,
		generator:   generator,
		broadcaster: broadcaster,
		logger:      logger,
		upgrader:    upgrader,
		cfg:         cfg,
		monsters:    make(map[string]*Monster),
		unlocked:    make(map[string]int),
		firstClears: make(map[string]bool),
	}
	if first := catalog.FirstZone(); first != nil {
		d.unlocked[first.ID] = 1
	}
	return d
}

// Launch validates the zone/tier, generates the map and performs the
// initial spawn. Generation exhaustion is fatal to the launch; everything
// downstream of a valid map is soft.
func (d *Director) Launch(zoneID string, tier int, objective mapgen.Objective, seed int64) (*Run, error) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.run != nil && !d.run.Status.Terminal() {
		return nil, fmt.Errorf("an expedition is already live (status %s)", d.run.Status)
	}
	zone, ok := d.catalog.Zone(zoneID)
	if !ok {
		return nil, fmt.Errorf("unknown zone %q", zoneID)
	}
	if tier < 1 || tier > 7 {
		return nil, fmt.Errorf("tier %d out of range", tier)
	}
	if d.unlocked[zoneID] < tier {
		return nil, fmt.Errorf("zone %s tier %d is locked", zoneID, tier)
	}

	tuning := d.catalog.TuningFor(zoneID, tier)
	params := paramsFromTuning(tier, tuning)
	m, err := d.generator.Generate(zoneID, tier, seed, objective, params)
	if err != nil {
		return nil, fmt.Errorf("launch %s tier %d: %w", zoneID, tier, err)
	}

	d.nextRunID++
	run := &Run{
		ID:               fmt.Sprintf("run_%d", d.nextRunID),
		Seed:             seed,
		ZoneID:           zoneID,
		Tier:             tier,
		Objective:        objective,
		Status:           RunActive,
		Map:              m,
		PortalsRemaining: d.cfg.MaxPortals,
		Checkpoint:       m.SpawnPosition(),
		PlayerPos:        m.SpawnPosition(),
		LaunchedAt:       d.gameTime,
	}
	d.run = run
	d.monsters = make(map[string]*Monster)
	d.rng = rand.New(rand.NewSource(seed))
	d.spawnBudget = int(float64(tuning.SpawnBudget) * d.cfg.GlobalSpawnMultiplier)
	d.spawnedTotal = 0

	// Announce the run before any content events so subscribers never see
	// spawns for an unknown run id.
	d.broadcaster.BroadcastEvent(protocol.EventExpeditionLaunched, protocol.ExpeditionLaunched{
		RunID:     run.ID,
		ZoneID:    zoneID,
		Tier:      tier,
		Objective: string(objective),
		Seed:      seed,
		Portals:   run.PortalsRemaining,
	})
	d.broadcaster.BroadcastEvent(protocol.EventCheckpointUpdated, protocol.CheckpointUpdated{
		RunID: run.ID, X: run.Checkpoint.X, Y: run.Checkpoint.Y,
	})

	d.placeMapChests(run, tuning)
	d.initialSpawn(run, zone, tuning)

	// The kill quota derives from the launch population so every run stays
	// completable even when spawn failures shrink the population.
	if objective == mapgen.ObjectiveBossHunt {
		run.Progress.RequiredKills = 1
	} else {
		required := int(float64(d.spawnedTotal) * tuning.KillQuotaRatio)
		if required < 1 {
			required = 1
		}
		run.Progress.RequiredKills = required
	}
	d.emitProgress(run)

	d.logger.Printf("expedition %s launched: zone=%s tier=%d objective=%s seed=%d monsters=%d chests=%d",
		run.ID, zoneID, tier, objective, seed, d.spawnedTotal, len(run.Chests))
	return run, nil
}

// MonsterKilled records a monster death reported by the combat collaborator.
// Unknown ids and inactive runs are ignored.
func (d *Director) MonsterKilled(monsterID string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	run := d.run
	if run == nil || run.Status != RunActive {
		return
	}
	monster, ok := d.monsters[monsterID]
	if !ok {
		return
	}
	delete(d.monsters, monsterID)

	d.checkRoomCleared(run, monster.RoomID)

	run.KillsSinceCheckpoint++
	tuning := d.catalog.TuningFor(run.ZoneID, run.Tier)
	if run.KillsSinceCheckpoint >= tuning.CheckpointInterval {
		d.updateCheckpoint(run)
	}

	switch run.Objective {
	case mapgen.ObjectiveBossHunt:
		if monster.IsBoss && monsterID == run.BossMonsterID {
			run.Progress.CurrentKills = run.Progress.RequiredKills
			d.emitProgress(run)
			d.completeObjective(run)
			return
		}
	default:
		if run.Progress.CurrentKills < run.Progress.RequiredKills {
			run.Progress.CurrentKills++
			d.emitProgress(run)
			if run.Progress.CurrentKills == run.Progress.RequiredKills {
				d.completeObjective(run)
			}
		}
	}
}

// PlayerMoved records the player position, marks rooms entered, and fires
// any pending room spawn triggers.
func (d *Director) PlayerMoved(x, y float64) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	run := d.run
	if run == nil || (run.Status != RunActive && run.Status != RunAwaitingExtraction) {
		return
	}
	run.PlayerPos = geometry.Vec2{X: x, Y: y}

	room := run.Map.RoomAt(run.PlayerPos)
	if room == nil {
		return
	}
	if !room.Visited {
		room.Visited = true
		d.broadcaster.BroadcastEvent(protocol.EventRoomEntered, protocol.RoomEntered{
			RunID: run.ID, RoomID: room.ID, RoomType: string(room.Type),
		})
	}
	if run.Status == RunActive && !room.SpawnTriggered && room.Type != mapgen.RoomSpawn {
		room.SpawnTriggered = true
		d.triggerRoomSpawns(run, room)
	}
}

// PlayerDied consumes one portal. With none left the run fails immediately;
// otherwise the player respawns at the checkpoint with brief protection and
// nearby monsters are despawned to avoid spawn-camping.
func (d *Director) PlayerDied() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	run := d.run
	if run == nil || run.Status != RunActive {
		return
	}

	run.PortalsRemaining--
	d.broadcaster.BroadcastEvent(protocol.EventPortalUsed, protocol.PortalUsed{
		RunID: run.ID, PortalsRemaining: run.PortalsRemaining,
	})

	if run.PortalsRemaining <= 0 {
		d.endRun(run, RunFailed, FailReasonNoPortals)
		return
	}

	respawn := run.Checkpoint
	if !run.Map.Grid.IsAreaWalkable(respawn, playerCollisionRadius) {
		if snapped, ok := run.Map.Grid.NearestWalkable(respawn, 20); ok {
			respawn = snapped
		}
	}
	run.PlayerPos = respawn
	run.InvulnerableFor = d.cfg.RespawnInvulnerability

	var cleared []string
	for id, m := range d.monsters {
		if m.Position.DistanceTo(respawn) <= d.cfg.DespawnRadius && !m.IsBoss {
			delete(d.monsters, id)
			cleared = append(cleared, id)
		}
	}
	if len(cleared) > 0 {
		d.broadcaster.BroadcastEvent(protocol.EventMonstersCleared, protocol.MonstersCleared{
			RunID: run.ID, IDs: cleared,
		})
	}

	d.broadcaster.BroadcastEvent(protocol.EventPlayerRespawned, protocol.PlayerRespawned{
		RunID: run.ID, X: respawn.X, Y: respawn.Y,
		InvulnerableFor:  run.InvulnerableFor,
		PortalsRemaining: run.PortalsRemaining,
	})
}

// OpenChest opens a chest within interact range. Returns false for unknown
// ids, chests already opened, or out-of-range requests.
func (d *Director) OpenChest(chestID string) bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	run := d.run
	if run == nil || (run.Status != RunActive && run.Status != RunAwaitingExtraction) {
		return false
	}
	for _, chest := range run.Chests {
		if chest.ID != chestID {
			continue
		}
		if chest.Opened {
			return false
		}
		if run.PlayerPos.DistanceTo(chest.Position) > d.cfg.InteractRadius {
			return false
		}
		chest.Opened = true
		d.broadcaster.BroadcastEvent(protocol.EventChestOpened, protocol.ChestOpened{
			RunID: run.ID, ChestID: chest.ID, Drops: chest.DropCount,
		})
		return true
	}
	return false
}

// UseExtractionPortal finishes a run awaiting extraction. It refuses while
// any completion-source chest is unopened so rewards cannot be lost.
func (d *Director) UseExtractionPortal() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	run := d.run
	if run == nil || run.Status != RunAwaitingExtraction || run.ExtractionPortal == nil {
		return false
	}
	if run.PlayerPos.DistanceTo(*run.ExtractionPortal) > d.cfg.InteractRadius {
		return false
	}
	for _, chest := range run.Chests {
		if chest.Source == content.ChestSourceCompletion && !chest.Opened {
			return false
		}
	}
	d.endRun(run, RunCompleted, "")
	return true
}

// Abandon force-ends a live run with no further rewards. Allowed while
// awaiting extraction too, forfeiting unopened chests, so an unreachable
// portal can never trap the player in a run.
func (d *Director) Abandon() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	run := d.run
	if run == nil || run.Status.Terminal() {
		return false
	}
	d.endRun(run, RunAbandoned, FailReasonAbandoned)
	return true
}

// Update advances the per-frame timers. All substantial state changes happen
// synchronously in the discrete operations.
func (d *Director) Update(dt float64) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.gameTime += dt
	if d.run != nil && d.run.InvulnerableFor > 0 {
		d.run.InvulnerableFor -= dt
		if d.run.InvulnerableFor < 0 {
			d.run.InvulnerableFor = 0
		}
	}
}

// Run returns the current run, or nil when none is live.
func (d *Director) Run() *Run {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.run
}

// Monsters returns a snapshot of the live monster ids.
func (d *Director) Monsters() []*Monster {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	out := make([]*Monster, 0, len(d.monsters))
	for _, m := range d.monsters {
		out = append(out, m)
	}
	return out
}

// UnlockedTier returns the highest unlocked tier for a zone (0 = locked).
func (d *Director) UnlockedTier(zoneID string) int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.unlocked[zoneID]
}

// --- internal ---

func (d *Director) emitProgress(run *Run) {
	d.broadcaster.BroadcastEvent(protocol.EventProgress, protocol.Progress{
		RunID:         run.ID,
		CurrentKills:  run.Progress.CurrentKills,
		RequiredKills: run.Progress.RequiredKills,
	})
}

func (d *Director) updateCheckpoint(run *Run) {
	run.KillsSinceCheckpoint = 0
	pos := run.PlayerPos
	if !run.Map.Grid.IsAreaWalkable(pos, playerCollisionRadius) {
		snapped, ok := run.Map.Grid.NearestWalkable(pos, 15)
		if !ok {
			return
		}
		pos = snapped
	}
	run.Checkpoint = pos
	d.broadcaster.BroadcastEvent(protocol.EventCheckpointUpdated, protocol.CheckpointUpdated{
		RunID: run.ID, X: pos.X, Y: pos.Y,
	})
}

func (d *Director) checkRoomCleared(run *Run, roomID int) {
	room := run.Map.Room(roomID)
	if room == nil || room.Cleared {
		return
	}
	for _, m := range d.monsters {
		if m.RoomID == roomID {
			return
		}
	}
	room.Cleared = true
	d.broadcaster.BroadcastEvent(protocol.EventRoomCleared, protocol.RoomCleared{
		RunID: run.ID, RoomID: roomID,
	})
}

// completeObjective transitions to awaiting_extraction: grants rewards and
// unlocks, clears remaining monsters, spawns the completion chest and opens
// the extraction portal. The run only completes when the portal is used.
func (d *Director) completeObjective(run *Run) {
	run.Status = RunAwaitingExtraction
	tuning := d.catalog.TuningFor(run.ZoneID, run.Tier)

	run.Reward = d.grantRewards(run, tuning)
	d.applyUnlocks(run)

	if len(d.monsters) > 0 {
		ids := make([]string, 0, len(d.monsters))
		for id := range d.monsters {
			ids = append(ids, id)
		}
		d.monsters = make(map[string]*Monster)
		d.broadcaster.BroadcastEvent(protocol.EventMonstersCleared, protocol.MonstersCleared{
			RunID: run.ID, IDs: ids,
		})
	}

	d.broadcaster.BroadcastEvent(protocol.EventExpeditionCompleted, protocol.ExpeditionCompleted{
		RunID: run.ID, XP: run.Reward.XP, Gold: run.Reward.Gold, FirstClear: run.Reward.FirstClear,
	})

	d.spawnCompletionChest(run, tuning)

	portal := d.wallSafeOffset(run, run.PlayerPos, 6.0)
	run.ExtractionPortal = &portal
	d.broadcaster.BroadcastEvent(protocol.EventReadyToExtract, protocol.ReadyToExtract{
		RunID: run.ID, PortalX: portal.X, PortalY: portal.Y,
	})

	d.logger.Printf("expedition %s objective met: awaiting extraction (xp=%d gold=%d firstClear=%v)",
		run.ID, run.Reward.XP, run.Reward.Gold, run.Reward.FirstClear)
}

// wallSafeOffset finds a walkable position roughly dist away from origin,
// trying eight headings before falling back to the nearest walkable cell.
func (d *Director) wallSafeOffset(run *Run, origin geometry.Vec2, dist float64) geometry.Vec2 {
	startAngle := d.rng.Float64() * 2 * math.Pi
	for i := 0; i < 8; i++ {
		angle := startAngle + float64(i)*(2*math.Pi/8)
		candidate := origin.Add(geometry.FromAngle(angle).Scale(dist))
		if run.Map.Grid.IsAreaWalkable(candidate, 1.0) {
			return candidate
		}
	}
	if snapped, ok := run.Map.Grid.NearestWalkable(origin.Add(geometry.Vec2{X: dist}), dist*2); ok {
		return snapped
	}
	return origin
}

// endRun finalizes a run in a terminal state, clears all content, emits the
// closing events and hands control back to the hub.
func (d *Director) endRun(run *Run, status RunStatus, failReason string) {
	run.Status = status

	if len(d.monsters) > 0 {
		ids := make([]string, 0, len(d.monsters))
		for id := range d.monsters {
			ids = append(ids, id)
		}
		d.monsters = make(map[string]*Monster)
		d.broadcaster.BroadcastEvent(protocol.EventMonstersCleared, protocol.MonstersCleared{
			RunID: run.ID, IDs: ids,
		})
	}

	outcome := "completed"
	switch status {
	case RunCompleted:
	case RunFailed, RunAbandoned:
		outcome = string(status)
		d.broadcaster.BroadcastEvent(protocol.EventExpeditionFailed, protocol.ExpeditionFailed{
			RunID: run.ID, Reason: failReason,
		})
	}

	d.broadcaster.BroadcastEvent(protocol.EventReturnHub, protocol.ReturnHub{
		RunID: run.ID, Outcome: outcome,
	})
	d.logger.Printf("expedition %s ended: status=%s", run.ID, status)
}
