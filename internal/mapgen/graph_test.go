package mapgen

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Keildelaman/realms-arpg-sub000/internal/geometry"
)

func testNodes(centers ...geometry.Vec2) []FieldNode {
	nodes := make([]FieldNode, len(centers))
	for i, c := range centers {
		nodes[i] = FieldNode{Index: i, Center: c, Radius: 6}
	}
	return nodes
}

func TestUnionFind(t *testing.T) {
	uf := newUnionFind(5)

	if !uf.union(0, 1) {
		t.Error("Expected first union of 0 and 1 to merge")
	}
	if uf.union(1, 0) {
		t.Error("Expected repeated union to report no merge")
	}
	if !uf.union(1, 2) {
		t.Error("Expected union of 1 and 2 to merge")
	}
	if uf.find(0) != uf.find(2) {
		t.Error("Expected 0 and 2 in the same set after chained unions")
	}
	if uf.find(3) == uf.find(0) {
		t.Error("Expected 3 to stay in its own set")
	}
}

func TestBuildCandidateEdgesDeduplicates(t *testing.T) {
	nodes := testNodes(
		geometry.Vec2{X: 0, Y: 0},
		geometry.Vec2{X: 10, Y: 0},
		geometry.Vec2{X: 20, Y: 0},
	)

	edges := buildCandidateEdges(nodes, 2)

	seen := make(map[[2]int]bool)
	for _, e := range edges {
		key := [2]int{e.a, e.b}
		if seen[key] {
			t.Errorf("Expected no duplicate edge, got %d-%d twice", e.a, e.b)
		}
		seen[key] = true
		if e.a >= e.b {
			t.Errorf("Expected normalized pair ordering, got %d-%d", e.a, e.b)
		}
	}
	for i := 1; i < len(edges); i++ {
		if edges[i].distance < edges[i-1].distance {
			t.Error("Expected candidate edges sorted by distance")
		}
	}
}

func TestBuildGraphSpansAllNodes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	nodes := testNodes(
		geometry.Vec2{X: 0, Y: 0},
		geometry.Vec2{X: 12, Y: 3},
		geometry.Vec2{X: 24, Y: -2},
		geometry.Vec2{X: 30, Y: 10},
		geometry.Vec2{X: 15, Y: 15},
		geometry.Vec2{X: 5, Y: 12},
	)
	p := DefaultParams(1)

	edges, err := buildGraph(rng, nodes, p)
	if err != nil {
		t.Fatalf("buildGraph failed: %v", err)
	}
	if len(edges) < len(nodes)-1 {
		t.Fatalf("Expected at least %d edges, got %d", len(nodes)-1, len(edges))
	}

	uf := newUnionFind(len(nodes))
	for _, e := range edges {
		uf.union(e.A, e.B)
	}
	root := uf.find(0)
	for i := 1; i < len(nodes); i++ {
		if uf.find(i) != root {
			t.Errorf("Expected node %d connected to node 0", i)
		}
	}

	treeEdges := 0
	for _, e := range edges {
		if !e.Loop {
			treeEdges++
		}
	}
	if treeEdges != len(nodes)-1 {
		t.Errorf("Expected %d tree edges, got %d", len(nodes)-1, treeEdges)
	}
}

func TestBuildGraphFailsOnDisconnectedCandidates(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// Two tight clusters far apart; k=1 keeps the candidates inside clusters.
	nodes := testNodes(
		geometry.Vec2{X: 0, Y: 0},
		geometry.Vec2{X: 1, Y: 0},
		geometry.Vec2{X: 1000, Y: 0},
		geometry.Vec2{X: 1001, Y: 0},
	)
	p := DefaultParams(1)
	p.KNearest = 1

	if _, err := buildGraph(rng, nodes, p); err == nil {
		t.Error("Expected error when candidates cannot span the nodes")
	}
}

func TestDijkstraShortestPath(t *testing.T) {
	// 0 -1- 1 -1- 2, plus a long direct 0-2 edge.
	edges := []GraphEdge{
		{A: 0, B: 1, Distance: 1},
		{A: 1, B: 2, Distance: 1},
		{A: 0, B: 2, Distance: 5},
	}

	dist, prev := dijkstra(3, edges, 0)

	if dist[2] != 2 {
		t.Errorf("Expected distance 2 to node 2, got %f", dist[2])
	}
	if prev[2] != 1 {
		t.Errorf("Expected node 2 reached via node 1, got %d", prev[2])
	}
	if dist[0] != 0 {
		t.Errorf("Expected zero distance to the start, got %f", dist[0])
	}
}

func TestDijkstraUnreachableNode(t *testing.T) {
	edges := []GraphEdge{{A: 0, B: 1, Distance: 1}}

	dist, prev := dijkstra(3, edges, 0)

	if !math.IsInf(dist[2], 1) {
		t.Errorf("Expected infinite distance to disconnected node, got %f", dist[2])
	}
	if prev[2] != -1 {
		t.Errorf("Expected no predecessor for disconnected node, got %d", prev[2])
	}
}

func TestSelectEndpoints(t *testing.T) {
	nodes := testNodes(
		geometry.Vec2{X: 50, Y: 0},
		geometry.Vec2{X: 0, Y: 0}, // leftmost: start
		geometry.Vec2{X: 25, Y: 0},
	)
	edges := []GraphEdge{
		{A: 1, B: 2, Distance: 25},
		{A: 2, B: 0, Distance: 25},
	}

	start, end, mainPath := selectEndpoints(nodes, edges)

	if start != 1 {
		t.Errorf("Expected leftmost node 1 as start, got %d", start)
	}
	if end != 0 {
		t.Errorf("Expected farthest node 0 as end, got %d", end)
	}
	if len(mainPath) != 3 || mainPath[0] != start || mainPath[2] != end {
		t.Errorf("Expected main path from start to end, got %v", mainPath)
	}
}

func TestLayoutMetrics(t *testing.T) {
	// A 4-node path: two dead ends, no loops.
	edges := []GraphEdge{
		{A: 0, B: 1},
		{A: 1, B: 2},
		{A: 2, B: 3},
	}

	m := layoutMetrics(4, edges, []int{0, 1, 2, 3})

	if m.Loops != 0 {
		t.Errorf("Expected 0 loops for a path, got %d", m.Loops)
	}
	if m.DeadEnds != 2 {
		t.Errorf("Expected 2 dead ends for a path, got %d", m.DeadEnds)
	}
	if m.DeadEndRatio != 0.5 {
		t.Errorf("Expected dead end ratio 0.5, got %f", m.DeadEndRatio)
	}
	if m.MainPathRooms != 4 {
		t.Errorf("Expected main path length 4, got %d", m.MainPathRooms)
	}

	// Closing the cycle adds a loop and removes the dead ends.
	edges = append(edges, GraphEdge{A: 3, B: 0, Loop: true})
	m = layoutMetrics(4, edges, []int{0, 1, 2, 3})
	if m.Loops != 1 {
		t.Errorf("Expected 1 loop after closing the cycle, got %d", m.Loops)
	}
	if m.DeadEnds != 0 {
		t.Errorf("Expected 0 dead ends after closing the cycle, got %d", m.DeadEnds)
	}
}
