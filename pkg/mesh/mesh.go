// Package mesh provides the indexed triangle mesh used by the subdivision
// schemes, together with topology analysis, welding and orientation repair.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Input contract errors.
var (
	ErrEmptyMesh       = errors.New("mesh has no vertices or no triangles")
	ErrTriangleCount   = errors.New("triangle index count is not a multiple of 3")
	ErrIndexOutOfRange = errors.New("triangle index out of range")
	ErrNonFiniteVertex = errors.New("vertex position is not finite")
)

// Mesh is an indexed triangle mesh. Triangles is a flat list of vertex
// index triples; the winding of each triple defines its face normal.
type Mesh struct {
	Vertices  []r3.Vec
	Triangles []int
}

// New creates a mesh from copies of the given slices.
func New(vertices []r3.Vec, triangles []int) *Mesh {
	m := &Mesh{
		Vertices:  make([]r3.Vec, len(vertices)),
		Triangles: make([]int, len(triangles)),
	}
	copy(m.Vertices, vertices)
	copy(m.Triangles, triangles)
	return m
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return New(m.Vertices, m.Triangles)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// Triangle returns the three vertex indices of triangle t.
func (m *Mesh) Triangle(t int) [3]int {
	i := t * 3
	return [3]int{m.Triangles[i], m.Triangles[i+1], m.Triangles[i+2]}
}

// Opposite returns the vertex of triangle t that is not on edge e,
// or -1 if t does not contain e.
func (m *Mesh) Opposite(t int, e Edge) int {
	tri := m.Triangle(t)
	hasA, hasB := false, false
	opp := -1
	for _, v := range tri {
		switch v {
		case e.A:
			hasA = true
		case e.B:
			hasB = true
		default:
			opp = v
		}
	}
	if !hasA || !hasB {
		return -1
	}
	return opp
}

// Traverses reports whether triangle t walks from vertex a directly to
// vertex b in its winding order.
func (m *Mesh) Traverses(t, a, b int) bool {
	return hasDirectedEdge(m.Triangle(t), a, b)
}

// Centroid returns the average position of triangle t's vertices.
func (m *Mesh) Centroid(t int) r3.Vec {
	tri := m.Triangle(t)
	sum := r3.Add(r3.Add(m.Vertices[tri[0]], m.Vertices[tri[1]]), m.Vertices[tri[2]])
	return r3.Scale(1.0/3.0, sum)
}

// Validate checks the input contract: non-empty arrays, whole triangles,
// in-range indices and finite positions.
func (m *Mesh) Validate() error {
	if m == nil || len(m.Vertices) == 0 || len(m.Triangles) == 0 {
		return ErrEmptyMesh
	}
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrTriangleCount, len(m.Triangles))
	}
	for i, v := range m.Vertices {
		if !finite(v.X) || !finite(v.Y) || !finite(v.Z) {
			return fmt.Errorf("%w: vertex %d", ErrNonFiniteVertex, i)
		}
	}
	for i, idx := range m.Triangles {
		if idx < 0 || idx >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d at position %d (triangle %d), %d vertices",
				ErrIndexOutOfRange, idx, i, i/3, len(m.Vertices))
		}
	}
	return nil
}

// Equal reports whether both meshes have bit-identical positions and
// identical connectivity.
func (m *Mesh) Equal(other *Mesh) bool {
	if len(m.Vertices) != len(other.Vertices) || len(m.Triangles) != len(other.Triangles) {
		return false
	}
	for i := range m.Vertices {
		if m.Vertices[i] != other.Vertices[i] {
			return false
		}
	}
	for i := range m.Triangles {
		if m.Triangles[i] != other.Triangles[i] {
			return false
		}
	}
	return true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
