package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// VertexNormals returns area-weighted unit normals, one per vertex.
// Vertices not touched by any non-degenerate triangle get a zero normal.
func (m *Mesh) VertexNormals() []r3.Vec {
	normals := make([]r3.Vec, len(m.Vertices))
	for t := 0; t < m.TriangleCount(); t++ {
		tri := m.Triangle(t)
		n := faceCross(m, tri)
		for _, v := range tri {
			normals[v] = r3.Add(normals[v], n)
		}
	}
	for i, n := range normals {
		l := r3.Norm(n)
		if l == 0 {
			continue
		}
		normals[i] = r3.Scale(1/l, n)
	}
	return normals
}

// FaceNormal returns the unit normal of triangle t, or a zero vector when
// the triangle is degenerate.
func (m *Mesh) FaceNormal(t int) r3.Vec {
	n := faceCross(m, m.Triangle(t))
	l := r3.Norm(n)
	if l == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/l, n)
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m *Mesh) Bounds() r3.Box {
	if len(m.Vertices) == 0 {
		return r3.Box{}
	}
	b := r3.Box{
		Min: r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for _, p := range m.Vertices {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Min.Z = math.Min(b.Min.Z, p.Z)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
		b.Max.Z = math.Max(b.Max.Z, p.Z)
	}
	return b
}
