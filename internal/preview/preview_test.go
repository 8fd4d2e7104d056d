package preview

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/subdivision/pkg/mesh"
	"github.com/Faultbox/subdivision/pkg/shapes"
)

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Size = 64
	opts.Supersample = 1
	return opts
}

func TestRenderCoversCenter(t *testing.T) {
	opts := smallOptions()
	img, err := Render(shapes.Icosahedron(1), opts)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())

	assert.Equal(t, opts.Background, img.NRGBAAt(0, 0))
	assert.Equal(t, opts.Background, img.NRGBAAt(63, 63))
	assert.NotEqual(t, opts.Background, img.NRGBAAt(32, 32))
}

func TestRenderFlatDiffersFromSmooth(t *testing.T) {
	m := shapes.Icosahedron(1)
	opts := smallOptions()

	smooth, err := Render(m, opts)
	require.NoError(t, err)
	opts.Smooth = false
	flat, err := Render(m, opts)
	require.NoError(t, err)

	assert.NotEqual(t, smooth.Pix, flat.Pix)
}

func TestRenderSupersample(t *testing.T) {
	opts := smallOptions()
	opts.Supersample = 3
	img, err := Render(shapes.Cube(1), opts)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())
}

func TestRenderRejectsInvalidMesh(t *testing.T) {
	_, err := Render(&mesh.Mesh{}, smallOptions())
	assert.True(t, errors.Is(err, mesh.ErrEmptyMesh))

	opts := smallOptions()
	opts.Size = 0
	_, err = Render(shapes.Triangle(1), opts)
	assert.Error(t, err)
}

func TestDrawDepthPrefersNearSurface(t *testing.T) {
	// Two parallel quads; the one at +Z faces the camera.
	m := &mesh.Mesh{
		Vertices: []r3.Vec{
			{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
			{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
		},
		Triangles: []int{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7},
	}
	opts := smallOptions()
	opts.Yaw, opts.Pitch = 0, 0
	fb := Draw(m, 32, opts)

	require.True(t, fb.Covered(16, 16))
	cam := NewCamera(m.Bounds(), 0, 0, 32, 32)
	_, _, near, _ := cam.Project(cam.Orient(r3.Vec{Z: 1}))
	assert.InDelta(t, near, fb.Depth[16*32+16], 1e-6)
}

func TestCameraProjectsCenterToMiddle(t *testing.T) {
	box := r3.Box{Min: r3.Vec{X: -2, Y: -2, Z: -2}, Max: r3.Vec{X: 2, Y: 2, Z: 2}}
	cam := NewCamera(box, 45, 10, 100, 100)

	x, y, _, ok := cam.Project(cam.Orient(r3.Vec{}))
	require.True(t, ok)
	assert.InDelta(t, 50, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)

	// Orientation is rigid after normalization.
	p := cam.Orient(r3.Vec{X: 2, Y: 2, Z: 2})
	assert.InDelta(t, 1, r3.Norm(p), 1e-12)
	assert.InDelta(t, 1, r3.Norm(cam.OrientNormal(r3.Vec{Y: 1})), 1e-12)
}

func TestCameraDepthGrowsTowardViewer(t *testing.T) {
	cam := NewCamera(r3.Box{Min: r3.Vec{X: -1, Y: -1, Z: -1}, Max: r3.Vec{X: 1, Y: 1, Z: 1}}, 0, 0, 10, 10)
	_, _, far, ok := cam.Project(r3.Vec{Z: -0.5})
	require.True(t, ok)
	_, _, near, ok := cam.Project(r3.Vec{Z: 0.5})
	require.True(t, ok)
	assert.Greater(t, near, far)

	_, _, _, ok = cam.Project(r3.Vec{Z: 10})
	assert.False(t, ok)
}

func TestDownsample(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 200, 100, 50, 255
	}

	dst := Downsample(src, 4)
	require.Equal(t, image.Rect(0, 0, 4, 4), dst.Bounds())
	c := dst.NRGBAAt(2, 2)
	assert.InDelta(t, 200, int(c.R), 1)
	assert.InDelta(t, 100, int(c.G), 1)
	assert.InDelta(t, 50, int(c.B), 1)
	assert.Equal(t, uint8(255), c.A)

	assert.Same(t, src, Downsample(src, 8))
}

func TestWriteWebPRoundTrip(t *testing.T) {
	img, err := Render(shapes.Tetrahedron(1), smallOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteWebP(&buf, img))
	assert.Equal(t, "RIFF", buf.String()[:4])
	assert.Equal(t, "WEBP", buf.String()[8:12])

	decoded, err := webp.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), decoded.Bounds())

	// Lossless: every pixel survives.
	for _, pt := range []image.Point{{0, 0}, {32, 32}, {20, 40}} {
		want := img.NRGBAAt(pt.X, pt.Y)
		got := color.NRGBAModel.Convert(decoded.At(pt.X, pt.Y)).(color.NRGBA)
		assert.Equal(t, want, got, "pixel %v", pt)
	}
}

func TestSaveWebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.webp")
	img, err := Render(shapes.Cube(1), smallOptions())
	require.NoError(t, err)

	require.NoError(t, SaveWebP(path, img))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
