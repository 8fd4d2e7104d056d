package mesh

import "gonum.org/v1/gonum/spatial/r3"

// Report summarizes the topology of a mesh.
type Report struct {
	Vertices            int  `yaml:"vertices"`
	Triangles           int  `yaml:"triangles"`
	Edges               int  `yaml:"edges"`
	BoundaryEdges       int  `yaml:"boundary_edges"`
	ManifoldEdges       int  `yaml:"manifold_edges"`
	NonManifoldEdges    int  `yaml:"non_manifold_edges"`
	BoundaryVertices    int  `yaml:"boundary_vertices"`
	IsolatedVertices    int  `yaml:"isolated_vertices"`
	DegenerateTriangles int  `yaml:"degenerate_triangles"`
	EulerCharacteristic int  `yaml:"euler_characteristic"`
	Closed              bool `yaml:"closed"`
	Consistent          bool `yaml:"consistent"`
}

// DefaultDegenerateEpsilon is the cross-product magnitude below which a
// triangle counts as degenerate.
const DefaultDegenerateEpsilon = 1e-6

// Inspect computes a Report for m.
func Inspect(m *Mesh) Report {
	topo := Analyze(m)
	r := Report{
		Vertices:  len(m.Vertices),
		Triangles: m.TriangleCount(),
		Edges:     len(topo.Edges),
	}

	for _, e := range topo.Edges {
		switch n := len(topo.EdgeTriangles[e]); {
		case n == 1:
			r.BoundaryEdges++
		case n == 2:
			r.ManifoldEdges++
		default:
			r.NonManifoldEdges++
		}
	}
	for v := range m.Vertices {
		if topo.IsBoundaryVertex(v) {
			r.BoundaryVertices++
		}
		if len(topo.Neighbors[v]) == 0 {
			r.IsolatedVertices++
		}
	}
	for t := 0; t < r.Triangles; t++ {
		if isDegenerate(m, t, DefaultDegenerateEpsilon) {
			r.DegenerateTriangles++
		}
	}

	r.EulerCharacteristic = r.Vertices - r.IsolatedVertices - r.Edges + r.Triangles
	r.Closed = r.BoundaryEdges == 0 && r.NonManifoldEdges == 0
	r.Consistent = IsConsistentlyOriented(m)
	return r
}

// RemoveDegenerate drops triangles with repeated indices or with a
// cross-product magnitude below eps. It returns the cleaned mesh and the
// number of removed triangles. Vertices are left untouched.
func RemoveDegenerate(m *Mesh, eps float64) (*Mesh, int) {
	out := &Mesh{
		Vertices:  append([]r3.Vec(nil), m.Vertices...),
		Triangles: make([]int, 0, len(m.Triangles)),
	}
	removed := 0
	for t := 0; t < m.TriangleCount(); t++ {
		if isDegenerate(m, t, eps) {
			removed++
			continue
		}
		tri := m.Triangle(t)
		out.Triangles = append(out.Triangles, tri[0], tri[1], tri[2])
	}
	return out, removed
}

func isDegenerate(m *Mesh, t int, eps float64) bool {
	tri := m.Triangle(t)
	if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
		return true
	}
	return r3.Norm(faceCross(m, tri)) < eps
}

func faceCross(m *Mesh, tri [3]int) r3.Vec {
	p0 := m.Vertices[tri[0]]
	e1 := r3.Sub(m.Vertices[tri[1]], p0)
	e2 := r3.Sub(m.Vertices[tri[2]], p0)
	return r3.Cross(e1, e2)
}
