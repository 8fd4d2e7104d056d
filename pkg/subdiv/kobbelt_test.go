package subdiv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/subdivision/pkg/mesh"
	"github.com/Faultbox/subdivision/pkg/shapes"
)

func TestKobbeltAlpha(t *testing.T) {
	assert.InDelta(t, 1.0/18.0, KobbeltAlpha(6), 1e-15)
	assert.InDelta(t, 6.0/18.0, KobbeltAlpha(2), 1e-15)
	assert.Zero(t, KobbeltAlpha(0))
	for n := 1; n < 32; n++ {
		assert.GreaterOrEqual(t, KobbeltAlpha(n), 0.0, "valence %d", n)
	}
}

func TestKobbeltSkipFlip(t *testing.T) {
	out, err := Subdivide(shapes.Triangle(1), Kobbelt, 1, Options{
		Kobbelt: KobbeltOptions{SkipFlip: true},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3, 1, 2, 3, 2, 0, 3}, out.Triangles)
	assertVecInDelta(t, r3.Vec{X: 1.0 / 3.0, Y: 1.0 / 3.0}, out.Vertices[3])
}

func TestKobbeltFlipRemovesOriginalEdges(t *testing.T) {
	ico := shapes.Icosahedron(1)
	out, err := Subdivide(ico, Kobbelt, 1, Options{})
	require.NoError(t, err)

	// No two original vertices stay connected after the flip.
	topo := mesh.Analyze(out)
	for _, e := range topo.Edges {
		assert.False(t, e.A < ico.VertexCount() && e.B < ico.VertexCount(), "edge %v survived", e)
	}
	// Originals keep their valence, centers get valence 6.
	for v := 0; v < ico.VertexCount(); v++ {
		assert.Equal(t, 5, topo.Valence(v))
	}
	for v := ico.VertexCount(); v < out.VertexCount(); v++ {
		assert.Equal(t, 6, topo.Valence(v))
	}
}

func TestKobbeltOpenMeshKeepsTriangleBudget(t *testing.T) {
	grid := shapes.Grid(3, 3, 1)
	out, err := Subdivide(grid, Kobbelt, 1, Options{})
	require.NoError(t, err)

	assert.Equal(t, grid.VertexCount()+grid.TriangleCount(), out.VertexCount())
	assert.Equal(t, 3*grid.TriangleCount(), out.TriangleCount())
	assert.True(t, mesh.IsConsistentlyOriented(out))
}

func TestKobbeltSmoothing(t *testing.T) {
	ico := shapes.Icosahedron(1)
	out, err := Subdivide(ico, Kobbelt, 1, Options{Kobbelt: KobbeltOptions{SkipFlip: true}})
	require.NoError(t, err)

	topo := mesh.Analyze(ico)
	alpha := KobbeltAlpha(5)
	for v := 0; v < ico.VertexCount(); v++ {
		want := r3.Scale(1-5*alpha, ico.Vertices[v])
		for _, n := range topo.Neighbors[v] {
			want = r3.Add(want, r3.Scale(alpha, ico.Vertices[n]))
		}
		assertVecInDelta(t, want, out.Vertices[v], "vertex %d", v)
	}
}
