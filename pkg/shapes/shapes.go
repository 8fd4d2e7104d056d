// Package shapes builds procedural base meshes that feed the subdivision
// schemes. All shapes wind counter-clockwise when seen from outside.
package shapes

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/subdivision/pkg/mesh"
)

// Params controls shape generation. Zero values select defaults.
type Params struct {
	Size       float64 `yaml:"size"`       // edge length or radius
	Resolution int     `yaml:"resolution"` // grid cells per side
	Height     float64 `yaml:"height"`     // terrain amplitude
	Seed       uint64  `yaml:"seed"`       // terrain random seed
}

func (p Params) withDefaults() Params {
	if p.Size <= 0 {
		p.Size = 1
	}
	if p.Resolution <= 0 {
		p.Resolution = 4
	}
	if p.Height <= 0 {
		p.Height = 0.5
	}
	return p
}

// builders maps shape names to their constructors.
var builders = map[string]func(Params) *mesh.Mesh{
	"triangle":    func(p Params) *mesh.Mesh { return Triangle(p.Size) },
	"cube":        func(p Params) *mesh.Mesh { return Cube(p.Size) },
	"split-cube":  func(p Params) *mesh.Mesh { return SplitCube(p.Size) },
	"icosahedron": func(p Params) *mesh.Mesh { return Icosahedron(p.Size) },
	"tetrahedron": func(p Params) *mesh.Mesh { return Tetrahedron(p.Size) },
	"grid":        func(p Params) *mesh.Mesh { return Grid(p.Resolution, p.Resolution, p.Size) },
	"strip":       func(p Params) *mesh.Mesh { return Grid(p.Resolution, 1, p.Size) },
	"terrain":     func(p Params) *mesh.Mesh { return Terrain(p.Resolution, p.Size, p.Height, p.Seed) },
}

// Names returns the known shape names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName builds the named shape.
func ByName(name string, p Params) (*mesh.Mesh, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown shape %q (known: %v)", name, Names())
	}
	return build(p.withDefaults()), nil
}

// Triangle returns a single right triangle in the XY plane.
func Triangle(size float64) *mesh.Mesh {
	return &mesh.Mesh{
		Vertices: []r3.Vec{
			{X: 0, Y: 0, Z: 0},
			{X: size, Y: 0, Z: 0},
			{X: 0, Y: size, Z: 0},
		},
		Triangles: []int{0, 1, 2},
	}
}

var cubeCorners = [8]r3.Vec{
	{X: -1, Y: -1, Z: -1}, // 0
	{X: 1, Y: -1, Z: -1},  // 1
	{X: 1, Y: 1, Z: -1},   // 2
	{X: -1, Y: 1, Z: -1},  // 3
	{X: -1, Y: -1, Z: 1},  // 4
	{X: 1, Y: -1, Z: 1},   // 5
	{X: 1, Y: 1, Z: 1},    // 6
	{X: -1, Y: 1, Z: 1},   // 7
}

// cubeQuads lists each face as four corners in counter-clockwise order.
var cubeQuads = [6][4]int{
	{0, 3, 2, 1}, // -Z
	{4, 5, 6, 7}, // +Z
	{0, 4, 7, 3}, // -X
	{1, 2, 6, 5}, // +X
	{0, 1, 5, 4}, // -Y
	{3, 7, 6, 2}, // +Y
}

// Cube returns a closed cube with 8 shared vertices and 12 triangles,
// centered at the origin with the given edge length.
func Cube(size float64) *mesh.Mesh {
	h := size / 2
	m := &mesh.Mesh{Vertices: make([]r3.Vec, 0, 8), Triangles: make([]int, 0, 36)}
	for _, c := range cubeCorners {
		m.Vertices = append(m.Vertices, r3.Scale(h, c))
	}
	for _, q := range cubeQuads {
		m.Triangles = append(m.Triangles, q[0], q[1], q[2], q[0], q[2], q[3])
	}
	return m
}

// SplitCube returns a cube whose faces do not share vertices, as exported
// by tools that split vertices along hard edges: 24 vertices, 12
// triangles. It must be welded before subdivision.
func SplitCube(size float64) *mesh.Mesh {
	h := size / 2
	m := &mesh.Mesh{Vertices: make([]r3.Vec, 0, 24), Triangles: make([]int, 0, 36)}
	for _, q := range cubeQuads {
		base := len(m.Vertices)
		for _, c := range q {
			m.Vertices = append(m.Vertices, r3.Scale(h, cubeCorners[c]))
		}
		m.Triangles = append(m.Triangles, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Icosahedron returns a closed icosahedron inscribed in a sphere of the
// given radius: 12 vertices of valence 5, 20 triangles.
func Icosahedron(radius float64) *mesh.Mesh {
	t := (1 + math.Sqrt(5)) / 2
	raw := []r3.Vec{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}
	m := &mesh.Mesh{Vertices: make([]r3.Vec, len(raw))}
	for i, p := range raw {
		m.Vertices[i] = r3.Scale(radius/r3.Norm(p), p)
	}
	m.Triangles = []int{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}
	return m
}

// Tetrahedron returns a closed regular tetrahedron inscribed in a sphere
// of the given radius.
func Tetrahedron(radius float64) *mesh.Mesh {
	s := radius / math.Sqrt(3)
	return &mesh.Mesh{
		Vertices: []r3.Vec{
			{X: s, Y: s, Z: s},
			{X: s, Y: -s, Z: -s},
			{X: -s, Y: s, Z: -s},
			{X: -s, Y: -s, Z: s},
		},
		Triangles: []int{0, 1, 2, 0, 3, 1, 0, 2, 3, 1, 3, 2},
	}
}

// Grid returns a flat open grid of w x h square cells in the XZ plane,
// facing +Y. Each cell is split into two triangles.
func Grid(w, h int, cell float64) *mesh.Mesh {
	return heightGrid(w, h, cell, func(int, int) float64 { return 0 })
}

// Terrain returns a w x w grid with pseudo-random heights in
// [0, amplitude). The same seed always yields the same mesh.
func Terrain(w int, cell, amplitude float64, seed uint64) *mesh.Mesh {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	heights := make([]float64, (w+1)*(w+1))
	for i := range heights {
		heights[i] = rng.Float64() * amplitude
	}
	return heightGrid(w, w, cell, func(i, j int) float64 { return heights[j*(w+1)+i] })
}

func heightGrid(w, h int, cell float64, height func(i, j int) float64) *mesh.Mesh {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	m := &mesh.Mesh{
		Vertices:  make([]r3.Vec, 0, (w+1)*(h+1)),
		Triangles: make([]int, 0, w*h*6),
	}
	for j := 0; j <= h; j++ {
		for i := 0; i <= w; i++ {
			m.Vertices = append(m.Vertices, r3.Vec{X: float64(i) * cell, Y: height(i, j), Z: float64(j) * cell})
		}
	}
	idx := func(i, j int) int { return j*(w+1) + i }
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			a, b, c, d := idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1)
			m.Triangles = append(m.Triangles, a, d, c, a, c, b)
		}
	}
	return m
}
