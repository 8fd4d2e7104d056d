package subdiv

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/subdivision/pkg/mesh"
)

// KobbeltAlpha returns the √3 smoothing weight for a vertex of valence n,
// clamped to zero.
func KobbeltAlpha(n int) float64 {
	if n <= 0 {
		return 0
	}
	alpha := (4 - 2*math.Cos(2*math.Pi/float64(n))) / (9 * float64(n))
	return math.Max(0, alpha)
}

// refineKobbelt inserts a center in every triangle, smooths the original
// vertices and, unless disabled, flips each interior edge so that it
// joins the two neighboring centers. Two consecutive levels amount to a
// triadic split of every original edge.
func refineKobbelt(m *mesh.Mesh, p *pass) *mesh.Mesh {
	topo := mesh.Analyze(m)
	nv := m.VertexCount()
	nt := m.TriangleCount()

	out := &mesh.Mesh{
		Vertices:  make([]r3.Vec, nv, nv+nt),
		Triangles: make([]int, 0, nt*9),
	}
	for v := 0; v < nv; v++ {
		out.Vertices[v] = kobbeltVertexPoint(m, topo, v)
	}
	for t := 0; t < nt; t++ {
		out.Vertices = append(out.Vertices, m.Centroid(t))
	}

	if p.opts.Kobbelt.SkipFlip {
		for t := 0; t < nt; t++ {
			v := m.Triangle(t)
			c := nv + t
			out.Triangles = append(out.Triangles,
				v[0], v[1], c,
				v[1], v[2], c,
				v[2], v[0], c,
			)
		}
		return out
	}

	unflipped := 0
	for _, e := range topo.Edges {
		tris := topo.EdgeTriangles[e]
		if len(tris) == 2 && m.Traverses(tris[0], e.A, e.B) != m.Traverses(tris[1], e.A, e.B) {
			t0, t1 := tris[0], tris[1]
			a, b := e.A, e.B
			if !m.Traverses(t0, a, b) {
				a, b = b, a
			}
			// t0 walks a->b so its center lies left of the edge.
			c0, c1 := nv+t0, nv+t1
			out.Triangles = append(out.Triangles,
				a, c1, c0,
				b, c0, c1,
			)
			continue
		}
		if len(tris) != 1 {
			unflipped++
		}
		for _, t := range tris {
			a, b := e.A, e.B
			if !m.Traverses(t, a, b) {
				a, b = b, a
			}
			out.Triangles = append(out.Triangles, a, b, nv+t)
		}
	}
	if unflipped > 0 {
		p.log.Warn("edges left unflipped", zap.Int("edges", unflipped))
	}
	return out
}

func kobbeltVertexPoint(m *mesh.Mesh, topo *mesh.Topology, v int) r3.Vec {
	p := m.Vertices[v]
	neighbors := topo.Neighbors[v]
	n := len(neighbors)
	if n == 0 {
		return p
	}
	alpha := KobbeltAlpha(n)
	return r3.Add(r3.Scale(1-float64(n)*alpha, p), r3.Scale(alpha, sumOf(m, neighbors)))
}
