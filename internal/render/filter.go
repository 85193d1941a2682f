package render

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// hueStrength is how far a tinted pixel moves toward the hue color
	hueStrength = 0.35
	blurRadius  = 2
)

// Filter describes the per-frame adjustments applied to a slide
type Filter struct {
	Brightness int // percent, 100 is unchanged
	HueEnabled bool
	HueColor   string
	Blur       bool
}

// Apply returns a filtered copy of img. img is never modified.
func (f Filter) Apply(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)

	if f.Blur {
		out = BoxBlur(out, blurRadius)
	}

	var hue colorful.Color
	tint := false
	if f.HueEnabled {
		if c, err := colorful.Hex(f.HueColor); err == nil {
			hue, tint = c, true
		}
	}

	scale := float64(f.Brightness) / 100
	if scale < 0 {
		scale = 0
	}

	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := out.RGBAAt(x, y)
			c := colorful.Color{R: float64(px.R) / 255, G: float64(px.G) / 255, B: float64(px.B) / 255}
			if tint {
				c = c.BlendRgb(hue, hueStrength)
			}
			c = colorful.Color{R: c.R * scale, G: c.G * scale, B: c.B * scale}.Clamped()
			r, g, bl := c.RGB255()
			out.SetRGBA(x, y, color.RGBA{R: r, G: g, B: bl, A: px.A})
		}
	}
	return out
}

// BoxBlur averages each pixel with its neighbours within radius. Edges are
// clamped.
func BoxBlur(img *image.RGBA, radius int) *image.RGBA {
	if radius <= 0 {
		return img
	}
	return blurPass(blurPass(img, radius, true), radius, false)
}

func blurPass(img *image.RGBA, radius int, horizontal bool) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var r, g, bl, a, n int
			for d := -radius; d <= radius; d++ {
				sx, sy := x, y
				if horizontal {
					sx = clampInt(x+d, b.Min.X, b.Max.X-1)
				} else {
					sy = clampInt(y+d, b.Min.Y, b.Max.Y-1)
				}
				px := img.RGBAAt(sx, sy)
				r += int(px.R)
				g += int(px.G)
				bl += int(px.B)
				a += int(px.A)
				n++
			}
			out.SetRGBA(x, y, color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(bl / n), A: uint8(a / n)})
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
