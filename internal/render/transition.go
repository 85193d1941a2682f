package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/julianstephens/lumen/internal/models"
)

// zoomStart is the magnification the incoming slide starts at
const zoomStart = 1.3

// Transition composes a frame between two equally sized slides. progress runs
// from 0 (only from is visible) to 1 (only to is visible).
func Transition(from, to *image.RGBA, anim models.Animation, progress float64) *image.RGBA {
	if from == nil || progress >= 1 {
		return to
	}
	if progress <= 0 {
		return from
	}

	b := to.Bounds()
	out := image.NewRGBA(b)

	switch anim {
	case models.AnimationFade:
		blend(out, from, to, progress)
	case models.AnimationZoom:
		zoomed := image.NewRGBA(b)
		scale := zoomStart - (zoomStart-1)*progress
		cw := int(float64(b.Dx()) / scale)
		ch := int(float64(b.Dy()) / scale)
		x0 := b.Min.X + (b.Dx()-cw)/2
		y0 := b.Min.Y + (b.Dy()-ch)/2
		draw.ApproxBiLinear.Scale(zoomed, b, to, image.Rect(x0, y0, x0+cw, y0+ch), draw.Src, nil)
		blend(out, from, zoomed, progress)
	default:
		// The outgoing slide leaves to the left while the next enters from the right.
		shift := int(float64(b.Dx()) * progress)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				sx := x + shift
				if sx < b.Max.X {
					out.SetRGBA(x, y, from.RGBAAt(sx, y))
				} else {
					out.SetRGBA(x, y, to.RGBAAt(sx-b.Dx(), y))
				}
			}
		}
	}
	return out
}

func blend(out, from, to *image.RGBA, t float64) {
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := from.RGBAAt(x, y)
			c := to.RGBAAt(x, y)
			out.SetRGBA(x, y, color.RGBA{
				R: lerp(a.R, c.R, t),
				G: lerp(a.G, c.G, t),
				B: lerp(a.B, c.B, t),
				A: lerp(a.A, c.A, t),
			})
		}
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
