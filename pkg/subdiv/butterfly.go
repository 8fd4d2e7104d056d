package subdiv

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/subdivision/pkg/mesh"
)

// butterflyTier records which mask produced an edge-point.
type butterflyTier int

const (
	tierFull butterflyTier = iota
	tierTwoPoint
	tierMidpoint
	tierBoundaryCurve
)

// Two-point fallback weights. They keep the 4:1 ratio between endpoints
// and wing vertices of the full mask but sum to one.
const (
	twoPointEndWeight  = 0.4
	twoPointWingWeight = 0.1
)

func refineButterfly(m *mesh.Mesh, p *pass) *mesh.Mesh {
	topo := mesh.Analyze(m)
	nv := m.VertexCount()

	out := &mesh.Mesh{
		Vertices:  make([]r3.Vec, nv, nv+len(topo.Edges)),
		Triangles: make([]int, 0, len(m.Triangles)*4),
	}
	copy(out.Vertices, m.Vertices)

	var counts [4]int
	for _, e := range topo.Edges {
		pos, tier := butterflyEdgePoint(m, topo, e, p)
		counts[tier]++
		out.Vertices = append(out.Vertices, pos)
	}
	p.log.Debug("butterfly masks",
		zap.Int("full", counts[tierFull]),
		zap.Int("two_point", counts[tierTwoPoint]),
		zap.Int("midpoint", counts[tierMidpoint]),
		zap.Int("boundary_curve", counts[tierBoundaryCurve]),
	)

	splitFour(m, topo, out, nv, p)
	return out
}

// butterflyEdgePoint walks the fallback ladder: full eight-point mask,
// then the two-point mask, then the plain midpoint.
func butterflyEdgePoint(m *mesh.Mesh, topo *mesh.Topology, e mesh.Edge, p *pass) (r3.Vec, butterflyTier) {
	a, b := m.Vertices[e.A], m.Vertices[e.B]
	sum := r3.Add(a, b)
	mid := r3.Scale(0.5, sum)
	tris := topo.EdgeTriangles[e]

	switch len(tris) {
	case 1:
		if p.opts.Butterfly.BoundaryCurve {
			if pos, ok := boundaryCurvePoint(m, topo, e); ok {
				return pos, tierBoundaryCurve
			}
		}
		return mid, tierMidpoint
	case 2:
	default:
		p.log.Warn("non-manifold edge, using midpoint",
			zap.Stringer("edge", e), zap.Int("triangles", len(tris)))
		return mid, tierMidpoint
	}

	t0, t1 := tris[0], tris[1]
	wa := m.Opposite(t0, e)
	wb := m.Opposite(t1, e)
	if wa < 0 || wb < 0 {
		p.log.Warn("edge has no opposite vertex, using midpoint", zap.Stringer("edge", e))
		return mid, tierMidpoint
	}
	wings := r3.Add(m.Vertices[wa], m.Vertices[wb])

	ring := [4]int{
		across(m, topo, t0, mesh.NewEdge(e.A, wa)),
		across(m, topo, t0, mesh.NewEdge(e.B, wa)),
		across(m, topo, t1, mesh.NewEdge(e.A, wb)),
		across(m, topo, t1, mesh.NewEdge(e.B, wb)),
	}
	for _, r := range ring {
		if r < 0 {
			return r3.Add(r3.Scale(twoPointEndWeight, sum), r3.Scale(twoPointWingWeight, wings)), tierTwoPoint
		}
	}

	var tail r3.Vec
	for _, r := range ring {
		tail = r3.Add(tail, m.Vertices[r])
	}
	pos := r3.Add(mid, r3.Scale(1.0/8.0, wings))
	pos = r3.Sub(pos, r3.Scale(1.0/16.0, tail))
	return pos, tierFull
}

// across returns the vertex opposite edge e in the triangle on the other
// side of e from triangle t. When several triangles qualify, the lowest
// triangle index wins. It returns -1 when e is a boundary edge.
func across(m *mesh.Mesh, topo *mesh.Topology, t int, e mesh.Edge) int {
	for _, other := range topo.EdgeTriangles[e] {
		if other == t {
			continue
		}
		if o := m.Opposite(other, e); o >= 0 {
			return o
		}
	}
	return -1
}

// boundaryCurvePoint applies the four-point rule 9/16(a+b) - 1/16(c+d)
// where c and d continue the boundary polyline past a and b.
func boundaryCurvePoint(m *mesh.Mesh, topo *mesh.Topology, e mesh.Edge) (r3.Vec, bool) {
	c, okC := boundaryContinuation(topo, e.A, e.B)
	d, okD := boundaryContinuation(topo, e.B, e.A)
	if !okC || !okD {
		return r3.Vec{}, false
	}
	pos := r3.Scale(9.0/16.0, r3.Add(m.Vertices[e.A], m.Vertices[e.B]))
	pos = r3.Sub(pos, r3.Scale(1.0/16.0, r3.Add(m.Vertices[c], m.Vertices[d])))
	return pos, true
}

// boundaryContinuation returns the boundary neighbor of v other than
// from, provided v sits on exactly two boundary edges.
func boundaryContinuation(topo *mesh.Topology, v, from int) (int, bool) {
	bn := topo.BoundaryNeighbors(v)
	if len(bn) != 2 {
		return -1, false
	}
	if bn[0] == from {
		return bn[1], true
	}
	return bn[0], true
}
