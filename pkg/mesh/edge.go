package mesh

import "fmt"

// Edge is an undirected edge keyed by its sorted endpoints (A < B).
type Edge struct {
	A, B int
}

// NewEdge returns the normalized edge between vertices a and b.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Other returns the endpoint of e that is not v.
func (e Edge) Other(v int) int {
	if e.A == v {
		return e.B
	}
	return e.A
}

// Has reports whether v is an endpoint of e.
func (e Edge) Has(v int) bool {
	return e.A == v || e.B == v
}

func (e Edge) String() string {
	return fmt.Sprintf("(%d, %d)", e.A, e.B)
}
