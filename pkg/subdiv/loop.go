package subdiv

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/subdivision/pkg/mesh"
)

// nonManifoldMidWeight blends the edge midpoint with the averaged opposite
// vertices on edges shared by more than two triangles. It extends the
// interior Loop weights (3/4 midpoint, 1/4 opposites) to any fan size.
const nonManifoldMidWeight = 0.75

// LoopAlpha returns the Loop neighbor weight for an interior vertex of
// valence n.
func LoopAlpha(n int) float64 {
	if n == 3 {
		return 3.0 / 16.0
	}
	c := 3.0/8.0 + 0.25*math.Cos(2*math.Pi/float64(n))
	return (5.0/8.0 - c*c) / float64(n)
}

func refineLoop(m *mesh.Mesh, p *pass) *mesh.Mesh {
	topo := mesh.Analyze(m)
	nv := m.VertexCount()

	out := &mesh.Mesh{
		Vertices:  make([]r3.Vec, nv, nv+len(topo.Edges)),
		Triangles: make([]int, 0, len(m.Triangles)*4),
	}
	for v := 0; v < nv; v++ {
		out.Vertices[v] = loopVertexPoint(m, topo, v)
	}
	for _, e := range topo.Edges {
		out.Vertices = append(out.Vertices, loopEdgePoint(m, topo, e, p))
	}

	splitFour(m, topo, out, nv, p)
	return out
}

func loopEdgePoint(m *mesh.Mesh, topo *mesh.Topology, e mesh.Edge, p *pass) r3.Vec {
	a, b := m.Vertices[e.A], m.Vertices[e.B]
	mid := r3.Scale(0.5, r3.Add(a, b))
	tris := topo.EdgeTriangles[e]

	switch {
	case len(tris) == 1:
		return mid
	case len(tris) == 2:
		l := m.Opposite(tris[0], e)
		r := m.Opposite(tris[1], e)
		if l < 0 || r < 0 {
			p.log.Warn("edge has no opposite vertex, using midpoint", zap.Stringer("edge", e))
			return mid
		}
		return r3.Add(
			r3.Scale(3.0/8.0, r3.Add(a, b)),
			r3.Scale(1.0/8.0, r3.Add(m.Vertices[l], m.Vertices[r])),
		)
	default:
		p.log.Warn("non-manifold edge, using fallback weights",
			zap.Stringer("edge", e), zap.Int("triangles", len(tris)))
		opp, ok := averageOpposite(m, tris, e)
		if !ok {
			return mid
		}
		return r3.Add(r3.Scale(nonManifoldMidWeight, mid), r3.Scale(1-nonManifoldMidWeight, opp))
	}
}

// averageOpposite averages the vertices opposite e in each triangle.
func averageOpposite(m *mesh.Mesh, tris []int, e mesh.Edge) (r3.Vec, bool) {
	var sum r3.Vec
	n := 0
	for _, t := range tris {
		if o := m.Opposite(t, e); o >= 0 {
			sum = r3.Add(sum, m.Vertices[o])
			n++
		}
	}
	if n == 0 {
		return r3.Vec{}, false
	}
	return r3.Scale(1/float64(n), sum), true
}

func loopVertexPoint(m *mesh.Mesh, topo *mesh.Topology, v int) r3.Vec {
	p := m.Vertices[v]
	neighbors := topo.Neighbors[v]
	if len(neighbors) == 0 {
		return p
	}

	if topo.IsBoundaryVertex(v) {
		bn := topo.BoundaryNeighbors(v)
		if len(bn) != 2 {
			return p
		}
		return r3.Add(
			r3.Scale(3.0/4.0, p),
			r3.Scale(1.0/8.0, r3.Add(m.Vertices[bn[0]], m.Vertices[bn[1]])),
		)
	}

	n := len(neighbors)
	alpha := LoopAlpha(n)
	return r3.Add(r3.Scale(1-float64(n)*alpha, p), r3.Scale(alpha, sumOf(m, neighbors)))
}

func sumOf(m *mesh.Mesh, idx []int) r3.Vec {
	var sum r3.Vec
	for _, i := range idx {
		sum = r3.Add(sum, m.Vertices[i])
	}
	return sum
}

// splitFour writes the 1-to-4 template for every triangle of m into out.
// Edge-point vertices live at base + edge index.
func splitFour(m *mesh.Mesh, topo *mesh.Topology, out *mesh.Mesh, base int, p *pass) {
	for t := 0; t < m.TriangleCount(); t++ {
		v := m.Triangle(t)
		e01, ok01 := topo.EdgeIndex[mesh.NewEdge(v[0], v[1])]
		e12, ok12 := topo.EdgeIndex[mesh.NewEdge(v[1], v[2])]
		e20, ok20 := topo.EdgeIndex[mesh.NewEdge(v[2], v[0])]
		if !ok01 || !ok12 || !ok20 {
			p.log.Warn("missing edge point, skipping triangle", zap.Int("triangle", t))
			continue
		}
		e01, e12, e20 = base+e01, base+e12, base+e20
		out.Triangles = append(out.Triangles,
			e01, e12, e20,
			v[0], e01, e20,
			v[1], e12, e01,
			v[2], e20, e12,
		)
	}
}
