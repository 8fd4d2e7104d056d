package mesh

import "sort"

// Topology holds the adjacency derived from one mesh. It is rebuilt for
// every subdivision level and never mutated after Analyze returns.
type Topology struct {
	// Edges lists every distinct edge in order of first appearance while
	// scanning triangles. Use it instead of ranging over EdgeTriangles
	// wherever output order matters.
	Edges []Edge

	// EdgeIndex maps an edge to its position in Edges.
	EdgeIndex map[Edge]int

	// EdgeTriangles maps an edge to the triangles referencing it, in
	// ascending triangle order.
	EdgeTriangles map[Edge][]int

	// Neighbors holds the sorted set of vertices directly connected to
	// each vertex. Isolated vertices have an empty set.
	Neighbors [][]int

	// VertexTriangles lists the triangles touching each vertex.
	VertexTriangles [][]int

	boundaryVertex []bool
}

// Analyze builds the topology of m in a single pass over its triangles.
// The mesh is not modified.
func Analyze(m *Mesh) *Topology {
	nv := len(m.Vertices)
	nt := m.TriangleCount()

	t := &Topology{
		Edges:           make([]Edge, 0, nt*3/2+1),
		EdgeIndex:       make(map[Edge]int, nt*3/2+1),
		EdgeTriangles:   make(map[Edge][]int, nt*3/2+1),
		Neighbors:       make([][]int, nv),
		VertexTriangles: make([][]int, nv),
		boundaryVertex:  make([]bool, nv),
	}

	for tri := 0; tri < nt; tri++ {
		v := m.Triangle(tri)
		for k := 0; k < 3; k++ {
			a, b := v[k], v[(k+1)%3]
			e := NewEdge(a, b)
			if _, ok := t.EdgeIndex[e]; !ok {
				t.EdgeIndex[e] = len(t.Edges)
				t.Edges = append(t.Edges, e)
			}
			t.EdgeTriangles[e] = append(t.EdgeTriangles[e], tri)
			t.addNeighbor(a, b)
			t.addNeighbor(b, a)
			t.VertexTriangles[a] = appendUnique(t.VertexTriangles[a], tri)
		}
	}

	for _, n := range t.Neighbors {
		sort.Ints(n)
	}

	for _, e := range t.Edges {
		if len(t.EdgeTriangles[e]) == 1 {
			t.boundaryVertex[e.A] = true
			t.boundaryVertex[e.B] = true
		}
	}

	return t
}

func (t *Topology) addNeighbor(v, n int) {
	if v == n {
		return
	}
	t.Neighbors[v] = appendUnique(t.Neighbors[v], n)
}

func appendUnique(list []int, v int) []int {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

// Valence returns the number of distinct neighbors of v.
func (t *Topology) Valence(v int) int {
	return len(t.Neighbors[v])
}

// IsBoundary reports whether exactly one triangle references e.
func (t *Topology) IsBoundary(e Edge) bool {
	return len(t.EdgeTriangles[e]) == 1
}

// IsManifold reports whether exactly two triangles reference e.
func (t *Topology) IsManifold(e Edge) bool {
	return len(t.EdgeTriangles[e]) == 2
}

// IsBoundaryVertex reports whether v is an endpoint of a boundary edge.
func (t *Topology) IsBoundaryVertex(v int) bool {
	return t.boundaryVertex[v]
}

// BoundaryEdges returns the boundary edges in first-appearance order.
func (t *Topology) BoundaryEdges() []Edge {
	var out []Edge
	for _, e := range t.Edges {
		if t.IsBoundary(e) {
			out = append(out, e)
		}
	}
	return out
}

// BoundaryVertices returns the boundary vertices in ascending order.
func (t *Topology) BoundaryVertices() []int {
	var out []int
	for v, b := range t.boundaryVertex {
		if b {
			out = append(out, v)
		}
	}
	return out
}

// BoundaryNeighbors returns the neighbors of v joined to it by a boundary
// edge, in ascending order.
func (t *Topology) BoundaryNeighbors(v int) []int {
	var out []int
	for _, n := range t.Neighbors[v] {
		if t.IsBoundary(NewEdge(v, n)) {
			out = append(out, n)
		}
	}
	return out
}

// VertexEdges returns the edges incident to v, ordered by neighbor index.
func (t *Topology) VertexEdges(v int) []Edge {
	out := make([]Edge, 0, len(t.Neighbors[v]))
	for _, n := range t.Neighbors[v] {
		out = append(out, NewEdge(v, n))
	}
	return out
}
