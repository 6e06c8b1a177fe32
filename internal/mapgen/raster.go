package mapgen

import (
	"math"
	"math/rand"

	"github.com/Keildelaman/realms-arpg-sub000/internal/geometry"
)

const (
	gridCellSize  = 1.0
	gridMargin    = 6.0
	minCanvasSize = 80.0
)

// computeBounds returns the world rectangle covering all rooms and corridors
// plus margin.
func computeBounds(rooms []Room, corridors []Corridor) geometry.Rect {
	bounds := rooms[0].Bounds
	for _, r := range rooms[1:] {
		bounds = bounds.Union(r.Bounds)
	}
	for _, c := range corridors {
		for _, p := range c.Points {
			bounds = bounds.Union(geometry.RectAround(p, c.Width))
		}
	}
	return bounds.Expand(gridMargin)
}

// rasterize carves the walkable grid: room circles, corridor capsules,
// organic rim carves and blocked obstacle islands, then prunes everything
// unreachable from the spawn room. The flood fill is the authoritative
// connectivity guarantee; nothing later may relax it.
func rasterize(rng *rand.Rand, rooms []Room, corridors []Corridor, spawnRoom int, bounds geometry.Rect) *geometry.Grid {
	width := int(math.Ceil(bounds.W / gridCellSize))
	height := int(math.Ceil(bounds.H / gridCellSize))
	grid := geometry.NewGrid(bounds.X, bounds.Y, width, height, gridCellSize)

	for _, r := range rooms {
		grid.CarveCircle(r.Center, r.Radius)
	}
	for _, c := range corridors {
		for i := 0; i+1 < len(c.Points); i++ {
			grid.CarveCapsule(c.Points[i], c.Points[i+1], c.Width/2)
		}
	}

	addOrganicCarves(rng, grid, rooms)
	addObstacleIslands(rng, grid, rooms, spawnRoom)

	cx, cy := grid.CellAt(rooms[spawnRoom].Center)
	grid.PruneUnreachable(cx, cy)
	return grid
}

// addOrganicCarves bulges room rims with small extra circles so rooms read
// as caverns instead of perfect disks.
func addOrganicCarves(rng *rand.Rand, grid *geometry.Grid, rooms []Room) {
	for _, r := range rooms {
		carves := 2 + rng.Intn(3)
		for i := 0; i < carves; i++ {
			angle := rng.Float64() * 2 * math.Pi
			dist := r.Radius * (0.55 + rng.Float64()*0.35)
			center := r.Center.Add(geometry.FromAngle(angle).Scale(dist))
			radius := r.Radius * (0.25 + rng.Float64()*0.25)
			grid.CarveCircle(center, radius)
		}
	}
}

// addObstacleIslands drops small blocked circles inside large rooms. Islands
// never cover the room center, and the later flood fill removes any walkable
// pocket they might seal off.
func addObstacleIslands(rng *rand.Rand, grid *geometry.Grid, rooms []Room, spawnRoom int) {
	for _, r := range rooms {
		if r.ID == spawnRoom || r.Radius < 6.5 || rng.Float64() > 0.5 {
			continue
		}
		islands := 1 + rng.Intn(2)
		for i := 0; i < islands; i++ {
			angle := rng.Float64() * 2 * math.Pi
			dist := r.Radius * (0.35 + rng.Float64()*0.3)
			center := r.Center.Add(geometry.FromAngle(angle).Scale(dist))
			radius := r.Radius * (0.12 + rng.Float64()*0.12)
			grid.BlockCircle(center, radius)
		}
	}
}

// extractWalls builds the minimal collision geometry: blocked cells adjacent
// to walkable cells are marked, contiguous horizontal runs are collected per
// row, and identical runs on consecutive rows are merged into maximal
// rectangles (a sweep-line merge).
func extractWalls(grid *geometry.Grid) []geometry.Rect {
	boundary := make([]bool, grid.Width*grid.Height)
	for cy := 0; cy < grid.Height; cy++ {
		for cx := 0; cx < grid.Width; cx++ {
			if grid.IsWalkable(cx, cy) {
				continue
			}
			if grid.IsWalkable(cx+1, cy) || grid.IsWalkable(cx-1, cy) ||
				grid.IsWalkable(cx, cy+1) || grid.IsWalkable(cx, cy-1) {
				boundary[cy*grid.Width+cx] = true
			}
		}
	}

	type run struct{ x0, x1 int } // [x0, x1) in cells
	type openRect struct {
		run
		y0 int
	}

	var walls []geometry.Rect
	emit := func(r openRect, y1 int) {
		walls = append(walls, geometry.Rect{
			X: grid.OriginX + float64(r.x0)*grid.CellSize,
			Y: grid.OriginY + float64(r.y0)*grid.CellSize,
			W: float64(r.x1-r.x0) * grid.CellSize,
			H: float64(y1-r.y0) * grid.CellSize,
		})
	}

	var open []openRect
	for cy := 0; cy < grid.Height; cy++ {
		var rowRuns []run
		x := 0
		for x < grid.Width {
			if !boundary[cy*grid.Width+x] {
				x++
				continue
			}
			start := x
			for x < grid.Width && boundary[cy*grid.Width+x] {
				x++
			}
			rowRuns = append(rowRuns, run{x0: start, x1: x})
		}

		var next []openRect
		matched := make([]bool, len(rowRuns))
		for _, o := range open {
			extended := false
			for i, r := range rowRuns {
				if !matched[i] && r == o.run {
					next = append(next, o)
					matched[i] = true
					extended = true
					break
				}
			}
			if !extended {
				emit(o, cy)
			}
		}
		for i, r := range rowRuns {
			if !matched[i] {
				next = append(next, openRect{run: r, y0: cy})
			}
		}
		open = next
	}
	for _, o := range open {
		emit(o, grid.Height)
	}
	return walls
}

// normalize translates the whole layout so bounds start at the origin,
// padding up to the minimum canvas so small maps never expose void around
// the play area.
func normalize(m *Map) {
	bounds := m.Bounds
	padX, padY := 0.0, 0.0
	if bounds.W < minCanvasSize {
		padX = (minCanvasSize - bounds.W) / 2
	}
	if bounds.H < minCanvasSize {
		padY = (minCanvasSize - bounds.H) / 2
	}
	offset := geometry.Vec2{X: -bounds.X + padX, Y: -bounds.Y + padY}

	for i := range m.Rooms {
		r := &m.Rooms[i]
		r.Center = r.Center.Add(offset)
		r.Bounds = r.Bounds.Translate(offset)
		for j := range r.SpawnPoints {
			r.SpawnPoints[j] = r.SpawnPoints[j].Add(offset)
		}
	}
	for i := range m.Corridors {
		for j := range m.Corridors[i].Points {
			m.Corridors[i].Points[j] = m.Corridors[i].Points[j].Add(offset)
		}
	}
	for i := range m.Walls {
		m.Walls[i] = m.Walls[i].Translate(offset)
	}
	m.Grid.OriginX += offset.X
	m.Grid.OriginY += offset.Y
	m.Bounds = geometry.Rect{
		X: 0,
		Y: 0,
		W: math.Max(bounds.W+2*padX, minCanvasSize),
		H: math.Max(bounds.H+2*padY, minCanvasSize),
	}
}
