package subdiv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/subdivision/pkg/mesh"
	"github.com/Faultbox/subdivision/pkg/shapes"
)

func TestSubdivideErrors(t *testing.T) {
	tri := shapes.Triangle(1)

	tests := []struct {
		name   string
		m      *mesh.Mesh
		scheme Scheme
		levels int
		want   error
	}{
		{"negative levels", tri, Loop, -1, ErrNegativeLevels},
		{"unknown scheme", tri, Scheme(42), 1, ErrUnknownScheme},
		{"empty mesh", &mesh.Mesh{}, Loop, 1, mesh.ErrEmptyMesh},
		{"bad index", &mesh.Mesh{Vertices: tri.Vertices, Triangles: []int{0, 1, 9}}, Butterfly, 1, mesh.ErrIndexOutOfRange},
		{"ragged triangles", &mesh.Mesh{Vertices: tri.Vertices, Triangles: []int{0, 1}}, CatmullClark, 1, mesh.ErrTriangleCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Subdivide(tt.m, tt.scheme, tt.levels, Options{})
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestSubdivideZeroLevels(t *testing.T) {
	m := shapes.SplitCube(2)
	for _, s := range Schemes() {
		out, err := Subdivide(m, s, 0, Options{})
		require.NoError(t, err)
		assert.True(t, m.Equal(out), s.String())

		out.Vertices[0].X = 99
		assert.NotEqual(t, 99.0, m.Vertices[0].X)
	}
}

func TestSubdivideCounts(t *testing.T) {
	ico := shapes.Icosahedron(1) // V=12 E=30 T=20

	tests := []struct {
		scheme    Scheme
		levels    int
		vertices  int
		triangles int
	}{
		{Loop, 1, 42, 80},
		{Loop, 2, 162, 320},
		{Butterfly, 1, 42, 80},
		{Kobbelt, 1, 32, 60},
		{Kobbelt, 2, 92, 180},
		{CatmullClark, 1, 62, 120},
	}

	for _, tt := range tests {
		t.Run(tt.scheme.String(), func(t *testing.T) {
			out, err := Subdivide(ico, tt.scheme, tt.levels, Options{Logger: zaptest.NewLogger(t)})
			require.NoError(t, err)
			assert.Equal(t, tt.vertices, out.VertexCount())
			assert.Equal(t, tt.triangles, out.TriangleCount())
		})
	}
}

func TestSubdivideKeepsClosedMeshClosed(t *testing.T) {
	for _, s := range Schemes() {
		t.Run(s.String(), func(t *testing.T) {
			out, err := Subdivide(shapes.Icosahedron(1), s, 2, Options{})
			require.NoError(t, err)

			r := mesh.Inspect(out)
			assert.True(t, r.Closed)
			assert.True(t, r.Consistent)
			assert.Equal(t, 2, r.EulerCharacteristic)
			assert.Zero(t, r.DegenerateTriangles)
		})
	}
}

func TestSubdivideDeterministic(t *testing.T) {
	m := shapes.Terrain(4, 1, 0.5, 11)
	for _, s := range Schemes() {
		a, err := Subdivide(m, s, 2, Options{})
		require.NoError(t, err)
		b, err := Subdivide(m, s, 2, Options{})
		require.NoError(t, err)
		assert.True(t, a.Equal(b), s.String())
	}
}

func TestSubdivideDoesNotMutateInput(t *testing.T) {
	m := shapes.SplitCube(2)
	before := m.Clone()
	for _, s := range Schemes() {
		_, err := Subdivide(m, s, 1, Options{Weld: true, FixOrientation: true})
		require.NoError(t, err)
		assert.True(t, before.Equal(m), s.String())
	}
}

func TestSubdivideFixOrientation(t *testing.T) {
	m := shapes.Cube(2)
	m.Triangles[4], m.Triangles[5] = m.Triangles[5], m.Triangles[4]

	out, err := Subdivide(m, Loop, 1, Options{})
	require.NoError(t, err)
	assert.False(t, mesh.IsConsistentlyOriented(out))

	out, err = Subdivide(m, Loop, 1, Options{FixOrientation: true})
	require.NoError(t, err)
	assert.True(t, mesh.IsConsistentlyOriented(out))
}

func TestSubdivideWarnsOnNonManifold(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	fan := &mesh.Mesh{
		Vertices:  []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}, {Y: -1}},
		Triangles: []int{0, 1, 2, 1, 0, 3, 0, 1, 4},
	}

	for _, s := range Schemes() {
		out, err := Subdivide(fan, s, 1, Options{Logger: zap.New(core)})
		require.NoError(t, err, s.String())
		require.NoError(t, out.Validate(), s.String())
	}

	entries := logs.All()
	require.NotEmpty(t, entries)
	seen := map[string]bool{}
	for _, e := range entries {
		seen[e.ContextMap()["scheme"].(string)] = true
	}
	for _, s := range Schemes() {
		assert.True(t, seen[s.String()], "no warning from %s", s)
	}
}

func TestRefineIsOneLevel(t *testing.T) {
	m := shapes.Tetrahedron(1)
	a, err := Refine(m, Butterfly, Options{})
	require.NoError(t, err)
	b, err := Subdivide(m, Butterfly, 1, Options{})
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func assertVecInDelta(t *testing.T, want, got r3.Vec, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-12, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, 1e-12, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, 1e-12, msgAndArgs...)
}
