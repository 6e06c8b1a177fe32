package geometry

import "math"

// Cell states for the walkability grid.
const (
	CellBlocked  uint8 = 0
	CellWalkable uint8 = 1
)

// Grid is a uniform-cell walkability bitmap over a region of world space.
// Cells are addressed by (cx, cy); cell (0,0) covers the square starting at
// (OriginX, OriginY).
type Grid struct {
	OriginX  float64 `json:"originX"`
	OriginY  float64 `json:"originY"`
	CellSize float64 `json:"cellSize"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Cells    []uint8 `json:"cells"`
}

func NewGrid(originX, originY float64, width, height int, cellSize float64) *Grid {
	return &Grid{
		OriginX:  originX,
		OriginY:  originY,
		CellSize: cellSize,
		Width:    width,
		Height:   height,
		Cells:    make([]uint8, width*height),
	}
}

func (g *Grid) InBounds(cx, cy int) bool {
	return cx >= 0 && cy >= 0 && cx < g.Width && cy < g.Height
}

func (g *Grid) index(cx, cy int) int {
	return cy*g.Width + cx
}

// CellAt maps a world position to cell coordinates. The result may be out of
// bounds; callers check with InBounds.
func (g *Grid) CellAt(p Vec2) (int, int) {
	cx := int(math.Floor((p.X - g.OriginX) / g.CellSize))
	cy := int(math.Floor((p.Y - g.OriginY) / g.CellSize))
	return cx, cy
}

// CellCenter returns the world position of the center of cell (cx, cy).
func (g *Grid) CellCenter(cx, cy int) Vec2 {
	return Vec2{
		X: g.OriginX + (float64(cx)+0.5)*g.CellSize,
		Y: g.OriginY + (float64(cy)+0.5)*g.CellSize,
	}
}

func (g *Grid) IsWalkable(cx, cy int) bool {
	return g.InBounds(cx, cy) && g.Cells[g.index(cx, cy)] == CellWalkable
}

// IsWalkableAt reports whether the cell under a world position is walkable.
func (g *Grid) IsWalkableAt(p Vec2) bool {
	cx, cy := g.CellAt(p)
	return g.IsWalkable(cx, cy)
}

func (g *Grid) Set(cx, cy int, v uint8) {
	if g.InBounds(cx, cy) {
		g.Cells[g.index(cx, cy)] = v
	}
}

// IsAreaWalkable reports whether every cell overlapped by a circle of the
// given radius is walkable. Used to place agents with a collision radius.
func (g *Grid) IsAreaWalkable(center Vec2, radius float64) bool {
	minX, minY := g.CellAt(Vec2{X: center.X - radius, Y: center.Y - radius})
	maxX, maxY := g.CellAt(Vec2{X: center.X + radius, Y: center.Y + radius})
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			if g.CellCenter(cx, cy).DistanceTo(center) > radius+g.CellSize*0.5 {
				continue
			}
			if !g.IsWalkable(cx, cy) {
				return false
			}
		}
	}
	return true
}

// CarveCircle marks every cell whose center lies inside the circle walkable.
func (g *Grid) CarveCircle(center Vec2, radius float64) {
	minX, minY := g.CellAt(Vec2{X: center.X - radius, Y: center.Y - radius})
	maxX, maxY := g.CellAt(Vec2{X: center.X + radius, Y: center.Y + radius})
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			if !g.InBounds(cx, cy) {
				continue
			}
			if g.CellCenter(cx, cy).DistanceTo(center) <= radius {
				g.Cells[g.index(cx, cy)] = CellWalkable
			}
		}
	}
}

// CarveCapsule marks walkable every cell whose center lies within radius of
// the segment a-b (a capsule sweep, used for corridors).
func (g *Grid) CarveCapsule(a, b Vec2, radius float64) {
	minX, minY := g.CellAt(Vec2{X: math.Min(a.X, b.X) - radius, Y: math.Min(a.Y, b.Y) - radius})
	maxX, maxY := g.CellAt(Vec2{X: math.Max(a.X, b.X) + radius, Y: math.Max(a.Y, b.Y) + radius})
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			if !g.InBounds(cx, cy) {
				continue
			}
			if DistancePointSegment(g.CellCenter(cx, cy), a, b) <= radius {
				g.Cells[g.index(cx, cy)] = CellWalkable
			}
		}
	}
}

// BlockCircle marks every cell whose center lies inside the circle blocked.
func (g *Grid) BlockCircle(center Vec2, radius float64) {
	minX, minY := g.CellAt(Vec2{X: center.X - radius, Y: center.Y - radius})
	maxX, maxY := g.CellAt(Vec2{X: center.X + radius, Y: center.Y + radius})
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			if !g.InBounds(cx, cy) {
				continue
			}
			if g.CellCenter(cx, cy).DistanceTo(center) <= radius {
				g.Cells[g.index(cx, cy)] = CellBlocked
			}
		}
	}
}

// FloodFrom returns a reachability mask computed by a 4-neighbor BFS over
// walkable cells starting at (cx, cy).
func (g *Grid) FloodFrom(cx, cy int) []bool {
	reached := make([]bool, len(g.Cells))
	if !g.IsWalkable(cx, cy) {
		return reached
	}
	queue := make([]int, 0, len(g.Cells)/4)
	start := g.index(cx, cy)
	reached[start] = true
	queue = append(queue, start)
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		x := idx % g.Width
		y := idx / g.Width
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := x+d[0], y+d[1]
			if !g.IsWalkable(nx, ny) {
				continue
			}
			ni := g.index(nx, ny)
			if !reached[ni] {
				reached[ni] = true
				queue = append(queue, ni)
			}
		}
	}
	return reached
}

// PruneUnreachable blocks every walkable cell not reachable from (cx, cy)
// and returns the number of cells removed.
func (g *Grid) PruneUnreachable(cx, cy int) int {
	reached := g.FloodFrom(cx, cy)
	removed := 0
	for i, c := range g.Cells {
		if c == CellWalkable && !reached[i] {
			g.Cells[i] = CellBlocked
			removed++
		}
	}
	return removed
}

// WalkableCount returns the number of walkable cells.
func (g *Grid) WalkableCount() int {
	n := 0
	for _, c := range g.Cells {
		if c == CellWalkable {
			n++
		}
	}
	return n
}

// NearestWalkable searches outward in rings of cells for the walkable cell
// center closest to p, up to maxRadius world units away.
func (g *Grid) NearestWalkable(p Vec2, maxRadius float64) (Vec2, bool) {
	if g.IsWalkableAt(p) {
		return p, true
	}
	cx, cy := g.CellAt(p)
	maxRing := int(math.Ceil(maxRadius / g.CellSize))
	best := Vec2{}
	bestDist := math.Inf(1)
	for ring := 1; ring <= maxRing; ring++ {
		for dy := -ring; dy <= ring; dy++ {
			for dx := -ring; dx <= ring; dx++ {
				if dx > -ring && dx < ring && dy > -ring && dy < ring {
					continue // interior already visited on a smaller ring
				}
				if !g.IsWalkable(cx+dx, cy+dy) {
					continue
				}
				c := g.CellCenter(cx+dx, cy+dy)
				if d := c.DistanceTo(p); d < bestDist {
					bestDist = d
					best = c
				}
			}
		}
		if !math.IsInf(bestDist, 1) {
			return best, true
		}
	}
	return Vec2{}, false
}
