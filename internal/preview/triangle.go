package preview

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// vertex is a projected vertex ready for rasterization.
type vertex struct {
	x, y, z float64
	n       r3.Vec
}

// rasterizeTriangle fills one triangle with depth testing. Normals are
// interpolated per pixel; pass the face normal three times for flat
// shading.
func rasterizeTriangle(fb *FrameBuffer, v [3]vertex, base color.NRGBA, light *Light) {
	minX := int(math.Floor(math.Min(math.Min(v[0].x, v[1].x), v[2].x)))
	maxX := int(math.Ceil(math.Max(math.Max(v[0].x, v[1].x), v[2].x)))
	minY := int(math.Floor(math.Min(math.Min(v[0].y, v[1].y), v[2].y)))
	maxY := int(math.Ceil(math.Max(math.Max(v[0].y, v[1].y), v[2].y)))
	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, fb.Width-1)
	maxY = min(maxY, fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	det := (v[1].y-v[2].y)*(v[0].x-v[2].x) + (v[2].x-v[1].x)*(v[0].y-v[2].y)
	if math.Abs(det) < 1e-12 {
		return
	}
	invDet := 1 / det

	dy12 := v[1].y - v[2].y
	dx21 := v[2].x - v[1].x
	dy20 := v[2].y - v[0].y
	dx02 := v[0].x - v[2].x

	br := float64(base.R) / 255
	bg := float64(base.G) / 255
	bb := float64(base.B) / 255
	br, bg, bb = br*br, bg*bg, bb*bb // approximate sRGB decode

	for py := minY; py <= maxY; py++ {
		sy := float64(py) + 0.5 - v[2].y
		row := py * fb.Width
		for px := minX; px <= maxX; px++ {
			sx := float64(px) + 0.5 - v[2].x
			w0 := (dy12*sx + dx21*sy) * invDet
			w1 := (dy20*sx + dx02*sy) * invDet
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*v[0].z + w1*v[1].z + w2*v[2].z
			idx := row + px
			if z <= fb.Depth[idx] {
				continue
			}
			fb.Depth[idx] = z

			n := r3.Add(r3.Add(r3.Scale(w0, v[0].n), r3.Scale(w1, v[1].n)), r3.Scale(w2, v[2].n))
			if l := r3.Norm(n); l > 0 {
				n = r3.Scale(1/l, n)
			}
			shade := light.Shade(n)

			p := idx * 4
			fb.Image.Pix[p] = light.Encode(br * shade)
			fb.Image.Pix[p+1] = light.Encode(bg * shade)
			fb.Image.Pix[p+2] = light.Encode(bb * shade)
			fb.Image.Pix[p+3] = base.A
		}
	}
}
