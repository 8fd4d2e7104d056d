package mesh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/subdivision/pkg/mesh"
	"github.com/Faultbox/subdivision/pkg/shapes"
)

func flipTriangle(m *mesh.Mesh, t int) {
	i := t * 3
	m.Triangles[i+1], m.Triangles[i+2] = m.Triangles[i+2], m.Triangles[i+1]
}

func TestFixOrientationRepairsFlippedTriangles(t *testing.T) {
	cube := shapes.Cube(2)
	require.True(t, mesh.IsConsistentlyOriented(cube))

	broken := cube.Clone()
	flipTriangle(broken, 3)
	flipTriangle(broken, 7)
	require.False(t, mesh.IsConsistentlyOriented(broken))

	fixed, flipped := mesh.FixOrientation(broken)
	assert.Equal(t, 2, flipped)
	assert.True(t, mesh.IsConsistentlyOriented(fixed))
	assert.True(t, cube.Equal(fixed))
}

func TestFixOrientationFollowsFirstTriangle(t *testing.T) {
	cube := shapes.Cube(2)
	flipTriangle(cube, 0)

	fixed, flipped := mesh.FixOrientation(cube)
	assert.Equal(t, 11, flipped)
	assert.True(t, mesh.IsConsistentlyOriented(fixed))
	assert.Equal(t, cube.Triangle(0), fixed.Triangle(0))
}

func TestFixOrientationAlreadyConsistent(t *testing.T) {
	for _, name := range shapes.Names() {
		m, err := shapes.ByName(name, shapes.Params{})
		require.NoError(t, err)

		fixed, flipped := mesh.FixOrientation(m)
		assert.Zero(t, flipped, name)
		assert.True(t, m.Equal(fixed), name)
	}
}

func TestFixOrientationDoesNotMutate(t *testing.T) {
	m := shapes.Icosahedron(1)
	flipTriangle(m, 4)
	before := m.Clone()

	mesh.FixOrientation(m)
	assert.True(t, before.Equal(m))
}
