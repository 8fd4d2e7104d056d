package preview

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Light holds a key light plus a rim light, both in the camera frame.
type Light struct {
	Key      r3.Vec
	Rim      r3.Vec
	Half     r3.Vec // Blinn-Phong half vector for Key
	Ambient  float64
	Direct   float64
	RimInt   float64
	SpecInt  float64
	SpecPow  float64
	InvGamma float64
}

// DefaultLight returns a neutral three-quarter studio setup.
func DefaultLight() Light {
	key := r3.Unit(r3.Vec{X: 0.45, Y: 0.65, Z: 0.6})
	view := r3.Vec{Z: 1}
	return Light{
		Key:      key,
		Rim:      r3.Unit(r3.Vec{X: -0.6, Y: 0.3, Z: -0.75}),
		Half:     r3.Unit(r3.Add(key, view)),
		Ambient:  0.18,
		Direct:   0.8,
		RimInt:   0.25,
		SpecInt:  0.25,
		SpecPow:  24,
		InvGamma: 1 / 2.2,
	}
}

// Shade returns the linear light intensity for a unit normal. Faces are
// lit from both sides so open meshes read correctly.
func (l *Light) Shade(n r3.Vec) float64 {
	ndl := math.Abs(r3.Dot(n, l.Key))
	ndr := math.Max(0, r3.Dot(n, l.Rim))
	ndh := math.Abs(r3.Dot(n, l.Half))
	spec := math.Pow(ndh, l.SpecPow) * l.SpecInt
	return l.Ambient + ndl*l.Direct + ndr*l.RimInt + spec
}

// Encode applies gamma to a linear channel value in [0, 1+].
func (l *Light) Encode(linear float64) uint8 {
	return clamp8(math.Pow(math.Min(linear, 1), l.InvGamma) * 255)
}
