package preview

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// mat4 is a 4x4 matrix in column-major order.
type mat4 [16]float64

func perspective(fovY, aspect, near, far float64) mat4 {
	f := 1 / math.Tan(fovY/2)
	nf := 1 / (near - far)
	return mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

func lookAt(eye, center, up r3.Vec) mat4 {
	f := r3.Unit(r3.Sub(center, eye))
	s := r3.Unit(r3.Cross(f, up))
	u := r3.Cross(s, f)
	return mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-r3.Dot(s, eye), -r3.Dot(u, eye), r3.Dot(f, eye), 1,
	}
}

func (m mat4) mul(o mat4) mat4 {
	var r mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			r[col*4+row] = m[row]*o[col*4] +
				m[4+row]*o[col*4+1] +
				m[8+row]*o[col*4+2] +
				m[12+row]*o[col*4+3]
		}
	}
	return r
}

// project returns the normalized device coordinates of p and its clip w.
func (m mat4) project(p r3.Vec) (r3.Vec, float64) {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w == 0 {
		return r3.Vec{X: x, Y: y, Z: z}, w
	}
	return r3.Vec{X: x / w, Y: y / w, Z: z / w}, w
}

// Camera frames a mesh inside the unit sphere and orbits around it.
type Camera struct {
	center   r3.Vec
	scale    float64
	yaw      r3.Rotation
	pitch    r3.Rotation
	viewProj mat4
	width    float64
	height   float64
}

const (
	cameraDistance = 3.2
	cameraFOV      = 40 * math.Pi / 180
)

// NewCamera fits bounds into view of a width x height target. yaw turns
// around +Y, pitch tilts around +X; both are in degrees.
func NewCamera(bounds r3.Box, yaw, pitch float64, width, height int) *Camera {
	center := r3.Scale(0.5, r3.Add(bounds.Min, bounds.Max))
	radius := r3.Norm(r3.Sub(bounds.Max, center))
	scale := 1.0
	if radius > 0 {
		scale = 1 / radius
	}

	view := lookAt(r3.Vec{Z: cameraDistance}, r3.Vec{}, r3.Vec{Y: 1})
	proj := perspective(cameraFOV, float64(width)/float64(height), 0.1, 10)

	return &Camera{
		center:   center,
		scale:    scale,
		yaw:      r3.NewRotation(yaw*math.Pi/180, r3.Vec{Y: 1}),
		pitch:    r3.NewRotation(pitch*math.Pi/180, r3.Vec{X: 1}),
		viewProj: proj.mul(view),
		width:    float64(width),
		height:   float64(height),
	}
}

// Orient maps a model-space point into the camera's world frame.
func (c *Camera) Orient(p r3.Vec) r3.Vec {
	p = r3.Scale(c.scale, r3.Sub(p, c.center))
	return c.pitch.Rotate(c.yaw.Rotate(p))
}

// OrientNormal rotates a direction without translating or scaling it.
func (c *Camera) OrientNormal(n r3.Vec) r3.Vec {
	return c.pitch.Rotate(c.yaw.Rotate(n))
}

// Project maps a world-frame point to pixel coordinates. Depth grows
// toward the viewer. ok is false for points behind the camera.
func (c *Camera) Project(p r3.Vec) (x, y, depth float64, ok bool) {
	ndc, w := c.viewProj.project(p)
	if w <= 0 {
		return 0, 0, 0, false
	}
	x = (ndc.X + 1) / 2 * c.width
	y = (1 - ndc.Y) / 2 * c.height
	return x, y, -ndc.Z, true
}
