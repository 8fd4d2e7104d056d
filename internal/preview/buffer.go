package preview

import (
	"image"
	"image/color"
	"math"
)

// FrameBuffer holds the render target with a depth buffer.
type FrameBuffer struct {
	Width  int
	Height int
	Image  *image.NRGBA
	Depth  []float64 // per pixel, -Inf where nothing was drawn
}

// NewFrameBuffer allocates a w x h target cleared to bg.
func NewFrameBuffer(w, h int, bg color.NRGBA) *FrameBuffer {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = bg.R
		img.Pix[i+1] = bg.G
		img.Pix[i+2] = bg.B
		img.Pix[i+3] = bg.A
	}
	depth := make([]float64, w*h)
	for i := range depth {
		depth[i] = math.Inf(-1)
	}
	return &FrameBuffer{Width: w, Height: h, Image: img, Depth: depth}
}

// Covered reports whether any triangle was drawn at (x, y).
func (fb *FrameBuffer) Covered(x, y int) bool {
	return !math.IsInf(fb.Depth[y*fb.Width+x], -1)
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
