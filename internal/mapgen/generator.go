package mapgen

import (
	"errors"
	"fmt"
	"math/rand"
)

// Logger is the narrow logging dependency for generation diagnostics.
type Logger interface {
	Printf(format string, v ...any)
}

// ErrExhausted is returned when every retry attempt, including the
// unconstrained fallback, fails to produce a layout.
var ErrExhausted = errors.New("map generation exhausted all attempts")

// attemptSeedSalt decorrelates per-attempt RNG streams from the same seed.
// Mixing stays in uint64; the salt does not fit in int64.
const attemptSeedSalt uint64 = 0x9E3779B97F4A7C15

// Generator produces expedition maps. It holds no per-map state; every
// Generate call derives all randomness from the seed so output is
// deterministic and bit-identical for equal inputs.
type Generator struct {
	logger Logger
}

func NewGenerator(logger Logger) *Generator {
	return &Generator{logger: logger}
}

// Generate builds a validated map for the zone and tier. Each attempt
// reseeds deterministically from (seed, attempt); after the retry ceiling a
// final unconstrained attempt is accepted as-is, and only if that also fails
// to build does generation report a hard failure.
func (g *Generator) Generate(zoneID string, tier int, seed int64, objective Objective, p Params) (*Map, error) {
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		m, err := g.buildAttempt(zoneID, tier, seed, attempt, objective, p)
		if err != nil {
			g.logger.Printf("mapgen attempt %d failed: %v", attempt, err)
			continue
		}
		if err := validateLayout(m, p); err != nil {
			g.logger.Printf("mapgen attempt %d rejected: %v", attempt, err)
			continue
		}
		return m, nil
	}

	// Last resort: accept whatever builds without validation. Flagged at
	// warn level so a data problem does not hide behind the fallback.
	m, err := g.buildAttempt(zoneID, tier, seed, p.MaxAttempts, objective, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExhausted, err)
	}
	g.logger.Printf("WARN: mapgen used unconstrained fallback for zone=%s tier=%d seed=%d", zoneID, tier, seed)
	return m, nil
}

func (g *Generator) buildAttempt(zoneID string, tier int, seed int64, attempt int, objective Objective, p Params) (*Map, error) {
	rng := rand.New(rand.NewSource(int64(uint64(seed) ^ uint64(attempt+1)*attemptSeedSalt)))

	nodes, err := placeNodes(rng, p)
	if err != nil {
		return nil, err
	}

	edges, err := buildGraph(rng, nodes, p)
	if err != nil {
		return nil, err
	}

	start, end, mainPath := selectEndpoints(nodes, edges)
	rooms := deriveRooms(rng, nodes, start, end, mainPath, tier)
	corridors := deriveCorridors(rng, nodes, edges)

	bounds := computeBounds(rooms, corridors)
	grid := rasterize(rng, rooms, corridors, start, bounds)

	m := &Map{
		Seed:        seed,
		ZoneID:      zoneID,
		Tier:        tier,
		Objective:   objective,
		Rooms:       rooms,
		Corridors:   corridors,
		Edges:       edges,
		SpawnRoomID: start,
		ExitRoomID:  end,
		MainPath:    mainPath,
		Bounds:      bounds,
		Grid:        grid,
		Walls:       extractWalls(grid),
		Metrics:     layoutMetrics(len(nodes), edges, mainPath),
	}
	normalize(m)

	m.EncounterPoints = sampleEncounterPoints(rng, m.Grid, m.SpawnPosition(), p)
	m.DecorationPoints = sampleDecorationPoints(rng, m.Grid, p)
	return m, nil
}
