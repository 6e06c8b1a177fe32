package mapgen

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// candidateEdge is a potential connection before MST selection.
type candidateEdge struct {
	a, b     int
	distance float64
}

// buildCandidateEdges collects the k nearest neighbors of every node,
// de-duplicated as undirected pairs and sorted by distance.
func buildCandidateEdges(nodes []FieldNode, k int) []candidateEdge {
	type pair struct{ a, b int }
	seen := make(map[pair]bool)
	var edges []candidateEdge

	for i := range nodes {
		type neighbor struct {
			idx  int
			dist float64
		}
		neighbors := make([]neighbor, 0, len(nodes)-1)
		for j := range nodes {
			if i == j {
				continue
			}
			neighbors = append(neighbors, neighbor{idx: j, dist: nodes[i].Center.DistanceTo(nodes[j].Center)})
		}
		sort.Slice(neighbors, func(x, y int) bool { return neighbors[x].dist < neighbors[y].dist })

		limit := k
		if limit > len(neighbors) {
			limit = len(neighbors)
		}
		for _, n := range neighbors[:limit] {
			key := pair{a: i, b: n.idx}
			if key.a > key.b {
				key.a, key.b = key.b, key.a
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, candidateEdge{a: key.a, b: key.b, distance: n.dist})
		}
	}

	sort.Slice(edges, func(x, y int) bool { return edges[x].distance < edges[y].distance })
	return edges
}

// unionFind is the disjoint-set structure for Kruskal MST selection.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]] // path halving
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) bool {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return false
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
	return true
}

// buildGraph selects a minimum spanning tree over the candidate edges and
// then injects extra edges from the spares until the loop target is met.
// Fails when the candidates cannot form a spanning tree.
func buildGraph(rng *rand.Rand, nodes []FieldNode, p Params) ([]GraphEdge, error) {
	candidates := buildCandidateEdges(nodes, p.KNearest)
	uf := newUnionFind(len(nodes))

	var edges []GraphEdge
	var spares []candidateEdge
	for _, c := range candidates {
		if uf.union(c.a, c.b) {
			edges = append(edges, newEdge(rng, c, p, false))
		} else {
			spares = append(spares, c)
		}
	}
	if len(edges) < len(nodes)-1 {
		return nil, fmt.Errorf("candidate edges cannot span %d nodes (got %d tree edges)", len(nodes), len(edges))
	}

	loops := 0
	for _, c := range spares {
		if loops >= p.LoopTarget {
			break
		}
		if rng.Float64() > p.LoopChance {
			continue
		}
		edges = append(edges, newEdge(rng, c, p, true))
		loops++
	}

	return edges, nil
}

func newEdge(rng *rand.Rand, c candidateEdge, p Params, loop bool) GraphEdge {
	return GraphEdge{
		A:        c.a,
		B:        c.b,
		Width:    (p.CorridorWidthBase + rng.Float64()*p.CorridorWidthJitter) * p.SizeScale,
		Distance: c.distance,
		Loop:     loop,
	}
}

// adjacencyList builds neighbor lists with edge distances.
func adjacencyList(n int, edges []GraphEdge) [][]candidateEdge {
	adj := make([][]candidateEdge, n)
	for _, e := range edges {
		adj[e.A] = append(adj[e.A], candidateEdge{a: e.A, b: e.B, distance: e.Distance})
		adj[e.B] = append(adj[e.B], candidateEdge{a: e.B, b: e.A, distance: e.Distance})
	}
	return adj
}

// dijkstra computes shortest-path distances and predecessors from start.
// Node counts here are tiny, so the simple O(n^2) scan is used.
func dijkstra(n int, edges []GraphEdge, start int) ([]float64, []int) {
	adj := adjacencyList(n, edges)
	dist := make([]float64, n)
	prev := make([]int, n)
	done := make([]bool, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[start] = 0

	for {
		u := -1
		best := math.Inf(1)
		for i := 0; i < n; i++ {
			if !done[i] && dist[i] < best {
				best = dist[i]
				u = i
			}
		}
		if u == -1 {
			break
		}
		done[u] = true
		for _, e := range adj[u] {
			if alt := dist[u] + e.distance; alt < dist[e.b] {
				dist[e.b] = alt
				prev[e.b] = u
			}
		}
	}
	return dist, prev
}

// selectEndpoints picks the start node (leftmost) and end node (farthest by
// shortest-path distance from the start), and returns the main path between
// them.
func selectEndpoints(nodes []FieldNode, edges []GraphEdge) (start, end int, mainPath []int) {
	start = 0
	for i := range nodes {
		if nodes[i].Center.X < nodes[start].Center.X {
			start = i
		}
	}

	dist, prev := dijkstra(len(nodes), edges, start)
	end = start
	for i := range nodes {
		if !math.IsInf(dist[i], 1) && dist[i] > dist[end] {
			end = i
		}
	}

	for at := end; at != -1; at = prev[at] {
		mainPath = append(mainPath, at)
	}
	// Reverse so the path reads start -> end.
	for i, j := 0, len(mainPath)-1; i < j; i, j = i+1, j-1 {
		mainPath[i], mainPath[j] = mainPath[j], mainPath[i]
	}
	return start, end, mainPath
}

// layoutMetrics derives the validator inputs from the final edge set.
func layoutMetrics(n int, edges []GraphEdge, mainPath []int) Metrics {
	degree := make([]int, n)
	for _, e := range edges {
		degree[e.A]++
		degree[e.B]++
	}
	deadEnds := 0
	for _, d := range degree {
		if d == 1 {
			deadEnds++
		}
	}
	return Metrics{
		Loops:         len(edges) - (n - 1),
		DeadEnds:      deadEnds,
		DeadEndRatio:  float64(deadEnds) / float64(n),
		MainPathRooms: len(mainPath),
	}
}
