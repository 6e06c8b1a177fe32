package mapgen

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Keildelaman/realms-arpg-sub000/internal/geometry"
)

const (
	walkerLocalRetries = 14
	walkerDriftRange   = 1.1 // radians of heading drift per step
	minSeparationScale = 1.08
	stepStretchMin     = 1.15
	stepStretchMax     = 1.55
)

// placeNodes runs a biased random walk that drops NodeCount circular field
// nodes. The heading persists between steps with random drift, which keeps
// the layout elongated instead of clumping around the origin. Every
// candidate is checked against all prior nodes for minimum separation; after
// walkerLocalRetries failed candidates the whole attempt fails.
func placeNodes(rng *rand.Rand, p Params) ([]FieldNode, error) {
	nodes := make([]FieldNode, 0, p.NodeCount)
	heading := rng.Float64() * 2 * math.Pi
	pos := geometry.Vec2{}

	for i := 0; i < p.NodeCount; i++ {
		radius := (p.RoomRadiusBase + rng.Float64()*p.RoomRadiusJitter) * p.SizeScale
		if i == 0 {
			nodes = append(nodes, FieldNode{Index: 0, Center: pos, Radius: radius})
			continue
		}

		placed := false
		for attempt := 0; attempt < walkerLocalRetries; attempt++ {
			heading += (rng.Float64() - 0.5) * walkerDriftRange
			prev := nodes[len(nodes)-1]
			stretch := stepStretchMin + rng.Float64()*(stepStretchMax-stepStretchMin)
			step := (prev.Radius + radius) * stretch
			candidate := prev.Center.Add(geometry.FromAngle(heading).Scale(step))

			if separated(candidate, radius, nodes) {
				pos = candidate
				nodes = append(nodes, FieldNode{Index: i, Center: pos, Radius: radius})
				placed = true
				break
			}
			// Failed candidates kick the heading harder so the walk escapes
			// crowded pockets instead of retrying the same direction.
			heading += (rng.Float64() - 0.5) * math.Pi
		}
		if !placed {
			return nil, fmt.Errorf("node placement stuck after %d nodes", len(nodes))
		}
	}
	return nodes, nil
}

func separated(candidate geometry.Vec2, radius float64, nodes []FieldNode) bool {
	for _, n := range nodes {
		minDist := (n.Radius + radius) * minSeparationScale
		if candidate.DistanceTo(n.Center) < minDist {
			return false
		}
	}
	return true
}
