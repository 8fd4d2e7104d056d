package subdiv

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/subdivision/pkg/mesh"
)

// refineCatmullClark treats every triangle as a three-sided face. Each
// face becomes three quads (corner, edge-point, face-point, edge-point),
// emitted as two triangles each.
//
// Output layout: vertex points, then edge points in edge order, then face
// points in triangle order.
func refineCatmullClark(m *mesh.Mesh, p *pass) *mesh.Mesh {
	topo := mesh.Analyze(m)
	nv := m.VertexCount()
	nt := m.TriangleCount()
	ne := len(topo.Edges)

	facePoints := make([]r3.Vec, nt)
	for t := 0; t < nt; t++ {
		facePoints[t] = m.Centroid(t)
	}

	out := &mesh.Mesh{
		Vertices:  make([]r3.Vec, 0, nv+ne+nt),
		Triangles: make([]int, 0, nt*18),
	}
	for v := 0; v < nv; v++ {
		out.Vertices = append(out.Vertices, ccVertexPoint(m, topo, facePoints, v))
	}
	for _, e := range topo.Edges {
		out.Vertices = append(out.Vertices, ccEdgePoint(m, topo, facePoints, e, p))
	}
	out.Vertices = append(out.Vertices, facePoints...)

	edgeBase, faceBase := nv, nv+ne
	for t := 0; t < nt; t++ {
		v := m.Triangle(t)
		var ep [3]int
		ok := true
		for k := 0; k < 3; k++ {
			idx, found := topo.EdgeIndex[mesh.NewEdge(v[k], v[(k+1)%3])]
			if !found {
				ok = false
				break
			}
			ep[k] = edgeBase + idx
		}
		if !ok {
			p.log.Warn("missing edge point, skipping face", zap.Int("triangle", t))
			continue
		}
		f := faceBase + t
		for k := 0; k < 3; k++ {
			next := ep[k]       // edge v[k] -> v[k+1]
			prev := ep[(k+2)%3] // edge v[k-1] -> v[k]
			out.Triangles = append(out.Triangles,
				v[k], next, f,
				v[k], f, prev,
			)
		}
	}
	return out
}

func ccEdgePoint(m *mesh.Mesh, topo *mesh.Topology, facePoints []r3.Vec, e mesh.Edge, p *pass) r3.Vec {
	sum := r3.Add(m.Vertices[e.A], m.Vertices[e.B])
	tris := topo.EdgeTriangles[e]
	switch len(tris) {
	case 1:
		return r3.Scale(0.5, sum)
	case 2:
		faces := r3.Add(facePoints[tris[0]], facePoints[tris[1]])
		return r3.Scale(0.25, r3.Add(sum, faces))
	default:
		p.log.Warn("non-manifold edge, averaging all adjacent faces",
			zap.Stringer("edge", e), zap.Int("faces", len(tris)))
		for _, t := range tris {
			sum = r3.Add(sum, facePoints[t])
		}
		return r3.Scale(1/float64(2+len(tris)), sum)
	}
}

func ccVertexPoint(m *mesh.Mesh, topo *mesh.Topology, facePoints []r3.Vec, v int) r3.Vec {
	p := m.Vertices[v]
	neighbors := topo.Neighbors[v]
	n := len(neighbors)
	if n == 0 {
		return p
	}

	if topo.IsBoundaryVertex(v) {
		bn := topo.BoundaryNeighbors(v)
		if len(bn) != 2 {
			return p
		}
		sum := r3.Add(r3.Scale(6, p), r3.Add(m.Vertices[bn[0]], m.Vertices[bn[1]]))
		return r3.Scale(1.0/8.0, sum)
	}

	faces := topo.VertexTriangles[v]
	var f r3.Vec
	for _, t := range faces {
		f = r3.Add(f, facePoints[t])
	}
	f = r3.Scale(1/float64(len(faces)), f)

	var r r3.Vec
	for _, nb := range neighbors {
		r = r3.Add(r, r3.Scale(0.5, r3.Add(p, m.Vertices[nb])))
	}
	r = r3.Scale(1/float64(n), r)

	sum := r3.Add(r3.Add(f, r3.Scale(2, r)), r3.Scale(float64(n-3), p))
	return r3.Scale(1/float64(n), sum)
}
