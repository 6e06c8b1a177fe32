package mapgen

import (
	"math"
	"math/rand"

	"github.com/Keildelaman/realms-arpg-sub000/internal/geometry"
)

// deriveRooms turns field nodes into typed rooms. The start node becomes the
// spawn room; nodes in the final third of the main path lean elite; rooms off
// the main path are weighted-random combat/elite/treasure.
func deriveRooms(rng *rand.Rand, nodes []FieldNode, start, end int, mainPath []int, tier int) []Room {
	onMainPath := make(map[int]int) // node index -> position on path
	for i, id := range mainPath {
		onMainPath[id] = i
	}

	rooms := make([]Room, len(nodes))
	for i, n := range nodes {
		room := Room{
			ID:     i,
			Center: n.Center,
			Radius: n.Radius,
			Bounds: geometry.RectAround(n.Center, n.Radius),
		}

		switch {
		case i == start:
			room.Type = RoomSpawn
		case i == end:
			room.Type = RoomElite
		default:
			room.Type = rollRoomType(rng, onMainPath, i, len(mainPath))
		}

		room.SpawnPoints = rollSpawnPoints(rng, n, room.Type, tier)
		rooms[i] = room
	}
	return rooms
}

func rollRoomType(rng *rand.Rand, onMainPath map[int]int, node, pathLen int) RoomType {
	if pos, ok := onMainPath[node]; ok && pathLen > 2 && pos >= pathLen*2/3 {
		// Near the end of the main path: elite-heavy.
		if rng.Float64() < 0.55 {
			return RoomElite
		}
		return RoomCombat
	}
	roll := rng.Float64()
	switch {
	case roll < 0.60:
		return RoomCombat
	case roll < 0.80:
		return RoomElite
	default:
		return RoomTreasure
	}
}

// rollSpawnPoints samples interior positions for room-entry packs. Counts
// follow room type and tier; spawn rooms get none.
func rollSpawnPoints(rng *rand.Rand, node FieldNode, t RoomType, tier int) []geometry.Vec2 {
	var count int
	switch t {
	case RoomSpawn:
		return nil
	case RoomCombat:
		count = 2 + tier/2
	case RoomElite:
		count = 3 + tier/2
	case RoomTreasure:
		count = 1
	}

	points := make([]geometry.Vec2, 0, count)
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		// sqrt keeps the disk sampling uniform; 0.7 keeps points off the rim.
		dist := math.Sqrt(rng.Float64()) * node.Radius * 0.7
		points = append(points, node.Center.Add(geometry.FromAngle(angle).Scale(dist)))
	}
	return points
}

// deriveCorridors turns every graph edge into a jittered L-shaped poly-line
// between the two room centers.
func deriveCorridors(rng *rand.Rand, nodes []FieldNode, edges []GraphEdge) []Corridor {
	corridors := make([]Corridor, 0, len(edges))
	for _, e := range edges {
		a := nodes[e.A].Center
		b := nodes[e.B].Center

		var points []geometry.Vec2
		dx := math.Abs(a.X - b.X)
		dy := math.Abs(a.Y - b.Y)
		if dx < 2 || dy < 2 {
			// Nearly aligned: a straight shot is enough.
			points = []geometry.Vec2{a, b}
		} else {
			jx := (rng.Float64() - 0.5) * 3
			jy := (rng.Float64() - 0.5) * 3
			if rng.Intn(2) == 0 {
				elbow := geometry.Vec2{X: b.X + jx, Y: a.Y + jy}
				points = []geometry.Vec2{a, elbow, b}
			} else {
				elbow := geometry.Vec2{X: a.X + jx, Y: b.Y + jy}
				points = []geometry.Vec2{a, elbow, b}
			}
			// Long spans occasionally get a second elbow for variety.
			if e.Distance > 40 && rng.Float64() < 0.4 {
				mid := points[1]
				shift := geometry.Vec2{X: (rng.Float64() - 0.5) * 6, Y: (rng.Float64() - 0.5) * 6}
				points = []geometry.Vec2{a, mid, mid.Add(shift), b}
			}
		}

		corridors = append(corridors, Corridor{
			From:   e.A,
			To:     e.B,
			Points: points,
			Width:  e.Width,
		})
	}
	return corridors
}
