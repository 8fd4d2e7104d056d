// Package preview renders meshes to shaded still images with a small
// software rasterizer and writes them as lossless WebP.
package preview

import (
	"fmt"
	"image"
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/subdivision/pkg/mesh"
)

// Options controls Render.
type Options struct {
	Size        int     // output width and height in pixels
	Supersample int     // internal render scale; 1 disables antialiasing
	Yaw         float64 // degrees around +Y
	Pitch       float64 // degrees around +X
	Smooth      bool    // interpolate vertex normals instead of face normals
	Background  color.NRGBA
	Base        color.NRGBA
	Light       Light
}

// DefaultOptions returns a 512px smooth-shaded preview.
func DefaultOptions() Options {
	return Options{
		Size:        512,
		Supersample: 2,
		Yaw:         30,
		Pitch:       20,
		Smooth:      true,
		Background:  color.NRGBA{R: 24, G: 26, B: 30, A: 255},
		Base:        color.NRGBA{R: 196, G: 200, B: 210, A: 255},
		Light:       DefaultLight(),
	}
}

// Render draws m into a Size x Size image.
func Render(m *mesh.Mesh, opts Options) (*image.NRGBA, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	if opts.Size <= 0 {
		return nil, fmt.Errorf("preview: size must be positive, got %d", opts.Size)
	}
	ss := max(opts.Supersample, 1)

	fb := Draw(m, opts.Size*ss, opts)
	if ss == 1 {
		return fb.Image, nil
	}
	return Downsample(fb.Image, opts.Size), nil
}

// Draw rasterizes m into a fresh size x size frame buffer without
// downsampling.
func Draw(m *mesh.Mesh, size int, opts Options) *FrameBuffer {
	fb := NewFrameBuffer(size, size, opts.Background)
	cam := NewCamera(m.Bounds(), opts.Yaw, opts.Pitch, size, size)

	var normals []r3.Vec
	if opts.Smooth {
		normals = m.VertexNormals()
	}

	projected := make([]vertex, m.VertexCount())
	visible := make([]bool, m.VertexCount())
	for i, p := range m.Vertices {
		x, y, z, ok := cam.Project(cam.Orient(p))
		projected[i] = vertex{x: x, y: y, z: z}
		visible[i] = ok
		if normals != nil {
			projected[i].n = cam.OrientNormal(normals[i])
		}
	}

	light := opts.Light
	for t := 0; t < m.TriangleCount(); t++ {
		tri := m.Triangle(t)
		if !visible[tri[0]] || !visible[tri[1]] || !visible[tri[2]] {
			continue
		}
		v := [3]vertex{projected[tri[0]], projected[tri[1]], projected[tri[2]]}
		if !opts.Smooth {
			n := cam.OrientNormal(m.FaceNormal(t))
			v[0].n, v[1].n, v[2].n = n, n, n
		}
		rasterizeTriangle(fb, v, opts.Base, &light)
	}
	return fb
}
