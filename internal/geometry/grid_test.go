package geometry

import (
	"testing"
)

func TestNewGridStartsBlocked(t *testing.T) {
	g := NewGrid(0, 0, 10, 8, 1.0)

	if g.Width != 10 || g.Height != 8 {
		t.Errorf("Expected 10x8 grid, got %dx%d", g.Width, g.Height)
	}
	if got := g.WalkableCount(); got != 0 {
		t.Errorf("Expected 0 walkable cells in a new grid, got %d", got)
	}
	if g.IsWalkable(3, 3) {
		t.Error("Expected cell (3,3) to start blocked")
	}
}

func TestCellAtRespectsOrigin(t *testing.T) {
	g := NewGrid(-5, -5, 10, 10, 1.0)

	cx, cy := g.CellAt(Vec2{X: -5, Y: -5})
	if cx != 0 || cy != 0 {
		t.Errorf("Expected origin point in cell (0,0), got (%d,%d)", cx, cy)
	}

	cx, cy = g.CellAt(Vec2{X: 0, Y: 0})
	if cx != 5 || cy != 5 {
		t.Errorf("Expected world origin in cell (5,5), got (%d,%d)", cx, cy)
	}
}

func TestCellCenterRoundTrip(t *testing.T) {
	g := NewGrid(2, 3, 10, 10, 1.0)

	center := g.CellCenter(4, 6)
	cx, cy := g.CellAt(center)
	if cx != 4 || cy != 6 {
		t.Errorf("Expected center of (4,6) to map back to (4,6), got (%d,%d)", cx, cy)
	}
}

func TestCarveCircleMarksWalkable(t *testing.T) {
	g := NewGrid(0, 0, 20, 20, 1.0)

	g.CarveCircle(Vec2{X: 10, Y: 10}, 4)

	if !g.IsWalkableAt(Vec2{X: 10, Y: 10}) {
		t.Error("Expected circle center to be walkable")
	}
	if g.IsWalkableAt(Vec2{X: 1, Y: 1}) {
		t.Error("Expected far corner to stay blocked")
	}
	if got := g.WalkableCount(); got == 0 {
		t.Error("Expected carve to mark cells walkable")
	}
}

func TestCarveCapsuleConnectsEndpoints(t *testing.T) {
	g := NewGrid(0, 0, 30, 30, 1.0)
	a := Vec2{X: 5, Y: 15}
	b := Vec2{X: 25, Y: 15}

	g.CarveCapsule(a, b, 2)

	if !g.IsWalkableAt(a) || !g.IsWalkableAt(b) {
		t.Error("Expected both capsule endpoints to be walkable")
	}
	if !g.IsWalkableAt(Vec2{X: 15, Y: 15}) {
		t.Error("Expected capsule midpoint to be walkable")
	}

	ax, ay := g.CellAt(a)
	reached := g.FloodFrom(ax, ay)
	bx, by := g.CellAt(b)
	if !reached[by*g.Width+bx] {
		t.Error("Expected flood fill from one endpoint to reach the other")
	}
}

func TestBlockCircleOverridesCarve(t *testing.T) {
	g := NewGrid(0, 0, 20, 20, 1.0)
	center := Vec2{X: 10, Y: 10}

	g.CarveCircle(center, 6)
	g.BlockCircle(center, 2)

	if g.IsWalkableAt(center) {
		t.Error("Expected blocked center after BlockCircle")
	}
	if !g.IsWalkableAt(Vec2{X: 14, Y: 10}) {
		t.Error("Expected carved rim to stay walkable")
	}
}

func TestPruneUnreachableRemovesIslands(t *testing.T) {
	g := NewGrid(0, 0, 40, 20, 1.0)
	g.CarveCircle(Vec2{X: 8, Y: 10}, 4)
	g.CarveCircle(Vec2{X: 32, Y: 10}, 4) // disconnected island

	before := g.WalkableCount()
	cx, cy := g.CellAt(Vec2{X: 8, Y: 10})
	removed := g.PruneUnreachable(cx, cy)

	if removed == 0 {
		t.Error("Expected prune to remove the disconnected island")
	}
	if g.IsWalkableAt(Vec2{X: 32, Y: 10}) {
		t.Error("Expected island center to be blocked after prune")
	}
	if !g.IsWalkableAt(Vec2{X: 8, Y: 10}) {
		t.Error("Expected seed region to survive prune")
	}
	if got := g.WalkableCount(); got != before-removed {
		t.Errorf("Expected walkable count %d after prune, got %d", before-removed, got)
	}
}

func TestIsAreaWalkableRejectsNearWalls(t *testing.T) {
	g := NewGrid(0, 0, 20, 20, 1.0)
	g.CarveCircle(Vec2{X: 10, Y: 10}, 5)

	if !g.IsAreaWalkable(Vec2{X: 10, Y: 10}, 1.0) {
		t.Error("Expected area at circle center to be walkable")
	}
	// A point right at the carved rim cannot fit a radius-2 agent.
	if g.IsAreaWalkable(Vec2{X: 14.5, Y: 10}, 2.0) {
		t.Error("Expected area at the rim to be rejected for a wide agent")
	}
}

func TestNearestWalkableSnapsToGrid(t *testing.T) {
	g := NewGrid(0, 0, 20, 20, 1.0)
	g.CarveCircle(Vec2{X: 10, Y: 10}, 3)

	// Already walkable: returned unchanged.
	p := Vec2{X: 10, Y: 10}
	got, ok := g.NearestWalkable(p, 5)
	if !ok || got != p {
		t.Errorf("Expected walkable point returned unchanged, got %+v ok=%v", got, ok)
	}

	// Blocked point near the circle snaps to a walkable cell center.
	snapped, ok := g.NearestWalkable(Vec2{X: 15, Y: 10}, 6)
	if !ok {
		t.Fatal("Expected a walkable cell within range")
	}
	if !g.IsWalkableAt(snapped) {
		t.Errorf("Expected snapped position %+v to be walkable", snapped)
	}

	// Far outside any carve with a small search radius: not found.
	if _, ok := g.NearestWalkable(Vec2{X: 0.5, Y: 0.5}, 2); ok {
		t.Error("Expected no walkable cell within small radius of the corner")
	}
}

func TestDistancePointSegment(t *testing.T) {
	a := Vec2{X: 0, Y: 0}
	b := Vec2{X: 10, Y: 0}

	if d := DistancePointSegment(Vec2{X: 5, Y: 3}, a, b); d != 3 {
		t.Errorf("Expected distance 3 above the middle, got %f", d)
	}
	if d := DistancePointSegment(Vec2{X: -4, Y: 0}, a, b); d != 4 {
		t.Errorf("Expected distance 4 past endpoint a, got %f", d)
	}
	if d := DistancePointSegment(Vec2{X: 3, Y: 0}, a, a); d != 3 {
		t.Errorf("Expected degenerate segment to measure to the point, got %f", d)
	}
}
