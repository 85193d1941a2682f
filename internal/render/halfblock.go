package render

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const upperHalf = "▀"

// HalfBlocks draws img with one terminal cell per two vertical pixels: the
// upper pixel is the foreground of "▀" and the lower one the background.
// Runs of identical cells share a single style.
func HalfBlocks(img *image.RGBA) string {
	b := img.Bounds()
	var sb strings.Builder

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}

		var (
			run            int
			runTop, runBot string
		)
		flush := func() {
			if run == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(runTop)).
				Background(lipgloss.Color(runBot))
			sb.WriteString(style.Render(strings.Repeat(upperHalf, run)))
			run = 0
		}

		for x := b.Min.X; x < b.Max.X; x++ {
			top := hex(img, x, y)
			bot := top
			if y+1 < b.Max.Y {
				bot = hex(img, x, y+1)
			}
			if run > 0 && (top != runTop || bot != runBot) {
				flush()
			}
			runTop, runBot = top, bot
			run++
		}
		flush()
	}
	return sb.String()
}

func hex(img *image.RGBA, x, y int) string {
	px := img.RGBAAt(x, y)
	return fmt.Sprintf("#%02x%02x%02x", px.R, px.G, px.B)
}
