package mapgen

import (
	"github.com/Keildelaman/realms-arpg-sub000/internal/geometry"
)

// Objective is the win condition of an expedition.
type Objective string

const (
	ObjectiveExtermination Objective = "extermination"
	ObjectiveBossHunt      Objective = "boss_hunt"
)

// RoomType classifies a derived room.
type RoomType string

const (
	RoomSpawn    RoomType = "spawn"
	RoomCombat   RoomType = "combat"
	RoomElite    RoomType = "elite"
	RoomTreasure RoomType = "treasure"
)

// FieldNode is a circular room footprint placed by the random walk, before
// graph and room derivation.
type FieldNode struct {
	Index  int           `json:"index"`
	Center geometry.Vec2 `json:"center"`
	Radius float64       `json:"radius"`
}

// GraphEdge is an undirected connection between two field nodes. Loop marks
// edges added after the spanning tree to create cycles.
type GraphEdge struct {
	A        int     `json:"a"`
	B        int     `json:"b"`
	Width    float64 `json:"width"`
	Distance float64 `json:"distance"`
	Loop     bool    `json:"loop"`
}

// Room is derived 1:1 from a field node. The Visited/Cleared/SpawnTriggered
// flags are owned by the encounter director at runtime; generation always
// leaves them false.
type Room struct {
	ID          int             `json:"id"`
	Type        RoomType        `json:"type"`
	Center      geometry.Vec2   `json:"center"`
	Radius      float64         `json:"radius"`
	Bounds      geometry.Rect   `json:"bounds"`
	SpawnPoints []geometry.Vec2 `json:"spawnPoints"`

	Visited        bool `json:"visited"`
	Cleared        bool `json:"cleared"`
	SpawnTriggered bool `json:"spawnTriggered"`
}

// Corridor is an elbow poly-line between two room centers, consumed only by
// rasterization.
type Corridor struct {
	From   int             `json:"from"`
	To     int             `json:"to"`
	Points []geometry.Vec2 `json:"points"`
	Width  float64         `json:"width"`
}

// EncounterPoint is a sampled walkable location. PackWeight scales the size
// of the monster pack spawned there.
type EncounterPoint struct {
	Position   geometry.Vec2 `json:"position"`
	PackWeight float64       `json:"packWeight"`
}

// Metrics are the layout-quality measurements checked by the validator.
type Metrics struct {
	Loops         int     `json:"loops"`
	DeadEnds      int     `json:"deadEnds"`
	DeadEndRatio  float64 `json:"deadEndRatio"`
	MainPathRooms int     `json:"mainPathRooms"`
}

// Map is the immutable output of generation. The director places content on
// it but never mutates its geometry.
type Map struct {
	Seed      int64     `json:"seed"`
	ZoneID    string    `json:"zoneId"`
	Tier      int       `json:"tier"`
	Objective Objective `json:"objective"`

	Rooms       []Room          `json:"rooms"`
	Corridors   []Corridor      `json:"corridors"`
	Edges       []GraphEdge     `json:"edges"`
	SpawnRoomID int             `json:"spawnRoomId"`
	ExitRoomID  int             `json:"exitRoomId"`
	MainPath    []int           `json:"mainPath"`
	Bounds      geometry.Rect   `json:"bounds"`
	Grid        *geometry.Grid  `json:"grid"`
	Walls       []geometry.Rect `json:"walls"`
	Metrics     Metrics         `json:"metrics"`

	EncounterPoints  []EncounterPoint `json:"encounterPoints"`
	DecorationPoints []geometry.Vec2  `json:"decorationPoints"`
}

// Room returns the room with the given id, or nil.
func (m *Map) Room(id int) *Room {
	if id < 0 || id >= len(m.Rooms) {
		return nil
	}
	return &m.Rooms[id]
}

// SpawnPosition is the center of the spawn room.
func (m *Map) SpawnPosition() geometry.Vec2 {
	return m.Rooms[m.SpawnRoomID].Center
}

// IsWalkable reports whether the point lies on a walkable cell.
func (m *Map) IsWalkable(p geometry.Vec2) bool {
	return m.Grid.IsWalkableAt(p)
}

// RoomAt returns the room whose footprint circle contains p, or nil.
func (m *Map) RoomAt(p geometry.Vec2) *Room {
	for i := range m.Rooms {
		r := &m.Rooms[i]
		if p.DistanceTo(r.Center) <= r.Radius {
			return r
		}
	}
	return nil
}

// ResolveMove resolves a desired move against the map: the target is
// returned if walkable at the given collision radius, otherwise axis-aligned
// slides are tried, otherwise the agent stays put.
func (m *Map) ResolveMove(from, to geometry.Vec2, radius float64) geometry.Vec2 {
	if m.Grid.IsAreaWalkable(to, radius) {
		return to
	}
	slideX := geometry.Vec2{X: to.X, Y: from.Y}
	if m.Grid.IsAreaWalkable(slideX, radius) {
		return slideX
	}
	slideY := geometry.Vec2{X: from.X, Y: to.Y}
	if m.Grid.IsAreaWalkable(slideY, radius) {
		return slideY
	}
	return from
}
