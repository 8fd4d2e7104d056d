package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Weld merges vertices with bit-identical positions. The first occurrence
// of a position keeps its relative order; triangles are reindexed.
func Weld(m *Mesh) *Mesh {
	lookup := make(map[r3.Vec]int, len(m.Vertices))
	remap := make([]int, len(m.Vertices))
	out := &Mesh{
		Vertices:  make([]r3.Vec, 0, len(m.Vertices)),
		Triangles: make([]int, len(m.Triangles)),
	}

	for i, p := range m.Vertices {
		idx, ok := lookup[p]
		if !ok {
			idx = len(out.Vertices)
			out.Vertices = append(out.Vertices, p)
			lookup[p] = idx
		}
		remap[i] = idx
	}

	for i, v := range m.Triangles {
		out.Triangles[i] = remap[v]
	}
	return out
}

type cell [3]int64

// WeldWithin merges vertices closer than tol to an earlier vertex. Each
// vertex joins the closest earlier kept vertex (ties go to the lower
// index). Triangles that collapse to repeated indices are dropped. A
// non-positive tol falls back to Weld.
func WeldWithin(m *Mesh, tol float64) *Mesh {
	if tol <= 0 {
		return Weld(m)
	}

	buckets := make(map[cell][]int)
	remap := make([]int, len(m.Vertices))
	out := &Mesh{Vertices: make([]r3.Vec, 0, len(m.Vertices))}
	tol2 := tol * tol

	for i, p := range m.Vertices {
		c := cellOf(p, tol)
		best := -1
		bestDist := tol2
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					for _, k := range buckets[cell{c[0] + dx, c[1] + dy, c[2] + dz}] {
						d := r3.Norm2(r3.Sub(out.Vertices[k], p))
						if d < bestDist || (d == bestDist && best != -1 && k < best) {
							best = k
							bestDist = d
						}
					}
				}
			}
		}
		if best == -1 {
			best = len(out.Vertices)
			out.Vertices = append(out.Vertices, p)
			buckets[c] = append(buckets[c], best)
		}
		remap[i] = best
	}

	out.Triangles = make([]int, 0, len(m.Triangles))
	for t := 0; t < m.TriangleCount(); t++ {
		tri := m.Triangle(t)
		a, b, c := remap[tri[0]], remap[tri[1]], remap[tri[2]]
		if a == b || b == c || c == a {
			continue
		}
		out.Triangles = append(out.Triangles, a, b, c)
	}
	return out
}

func cellOf(p r3.Vec, size float64) cell {
	return cell{
		int64(math.Floor(p.X / size)),
		int64(math.Floor(p.Y / size)),
		int64(math.Floor(p.Z / size)),
	}
}
