package mesh

// FixOrientation propagates the winding of triangle 0 across every
// triangle reachable through shared edges. Neighbors that traverse a
// shared edge in the same direction as the already processed triangle are
// flipped by swapping their second and third index. Triangles not
// connected to triangle 0 keep their winding.
//
// It returns the repaired mesh and the number of flipped triangles.
func FixOrientation(m *Mesh) (*Mesh, int) {
	out := m.Clone()
	nt := m.TriangleCount()
	if nt == 0 {
		return out, 0
	}

	topo := Analyze(m)
	processed := make([]bool, nt)
	flip := make([]bool, nt)

	queue := []int{0}
	processed[0] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		tri := m.Triangle(cur)
		if flip[cur] {
			tri[1], tri[2] = tri[2], tri[1]
		}

		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			for _, nb := range topo.EdgeTriangles[NewEdge(a, b)] {
				if nb == cur || processed[nb] {
					continue
				}
				// Consistent neighbors traverse the edge as b->a.
				if m.Traverses(nb, a, b) {
					flip[nb] = true
				}
				processed[nb] = true
				queue = append(queue, nb)
			}
		}
	}

	flipped := 0
	for t, f := range flip {
		if !f {
			continue
		}
		i := t * 3
		out.Triangles[i+1], out.Triangles[i+2] = out.Triangles[i+2], out.Triangles[i+1]
		flipped++
	}
	return out, flipped
}

// IsConsistentlyOriented reports whether every edge shared by two
// triangles is traversed in opposite directions by them. Edges with more
// than two triangles are ignored.
func IsConsistentlyOriented(m *Mesh) bool {
	topo := Analyze(m)
	for _, e := range topo.Edges {
		tris := topo.EdgeTriangles[e]
		if len(tris) != 2 {
			continue
		}
		if m.Traverses(tris[0], e.A, e.B) == m.Traverses(tris[1], e.A, e.B) {
			return false
		}
	}
	return true
}

func hasDirectedEdge(tri [3]int, a, b int) bool {
	for k := 0; k < 3; k++ {
		if tri[k] == a && tri[(k+1)%3] == b {
			return true
		}
	}
	return false
}
