package mesh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/subdivision/pkg/mesh"
	"github.com/Faultbox/subdivision/pkg/shapes"
)

func TestWeldSplitCube(t *testing.T) {
	split := shapes.SplitCube(2)
	require.Equal(t, 24, split.VertexCount())
	assert.False(t, mesh.Inspect(split).Closed)

	welded := mesh.Weld(split)
	assert.Equal(t, 8, welded.VertexCount())
	assert.Equal(t, 12, welded.TriangleCount())

	r := mesh.Inspect(welded)
	assert.True(t, r.Closed)
	assert.True(t, r.Consistent)
	assert.Equal(t, 18, r.Edges)
	assert.Equal(t, 2, r.EulerCharacteristic)
}

func TestWeldKeepsFirstOccurrenceOrder(t *testing.T) {
	m := &mesh.Mesh{
		Vertices:  []r3.Vec{{X: 2}, {X: 1}, {X: 2}, {X: 3}},
		Triangles: []int{0, 1, 3, 2, 3, 1},
	}
	w := mesh.Weld(m)
	assert.Equal(t, []r3.Vec{{X: 2}, {X: 1}, {X: 3}}, w.Vertices)
	assert.Equal(t, []int{0, 1, 2, 0, 2, 1}, w.Triangles)
}

func TestWeldWithin(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []r3.Vec{
			{},
			{X: 1},
			{Y: 1},
			{X: 1.0004},             // merges into 1
			{X: 1, Y: 1.0},          // distinct
			{X: 0.0002, Y: 0.99995}, // merges into 2
		},
		Triangles: []int{
			0, 1, 2,
			3, 4, 5,
			0, 3, 1, // collapses
		},
	}

	w := mesh.WeldWithin(m, 1e-3)
	assert.Equal(t, 4, w.VertexCount())
	assert.Equal(t, []int{0, 1, 2, 1, 3, 2}, w.Triangles)

	exact := mesh.WeldWithin(m, 0)
	assert.Equal(t, 6, exact.VertexCount())
}

func TestWeldWithinPicksClosest(t *testing.T) {
	m := &mesh.Mesh{
		Vertices:  []r3.Vec{{}, {X: 0.0008}, {X: 0.0007}},
		Triangles: []int{0, 1, 2},
	}
	// Vertex 1 is kept (0.0008 > tol from 0); vertex 2 is closer to 1.
	w := mesh.WeldWithin(m, 0.00075)
	assert.Equal(t, 2, w.VertexCount())
	assert.Empty(t, w.Triangles)
}
