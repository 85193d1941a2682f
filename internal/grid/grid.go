// Package grid snaps free positions onto a fixed-size grid.
package grid

import (
	"math"

	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/models"
)

// Snap returns the grid-aligned position nearest to (x, y). Each axis is
// rounded half away from zero. A non-positive gridSize uses the default
// size, and a non-finite axis is clamped to the origin.
func Snap(x, y float64, gridSize int) models.Position {
	if gridSize <= 0 {
		gridSize = constants.DefaultGridSize
	}
	return models.Position{
		X: snapAxis(x, gridSize),
		Y: snapAxis(y, gridSize),
	}
}

func snapAxis(v float64, gridSize int) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	g := float64(gridSize)
	cells := math.Round(v / g)
	// Keep the result representable as an int.
	limit := math.Floor(float64(math.MaxInt32) / g)
	if cells > limit {
		cells = limit
	} else if cells < -limit {
		cells = -limit
	}
	return int(cells) * gridSize
}

// CellToPixel converts a terminal cell coordinate onto the pixel plane the
// grid is defined in.
func CellToPixel(col, row int) (float64, float64) {
	return float64(col * constants.CellWidthPx), float64(row * constants.CellHeightPx)
}

// PixelToCell converts a pixel position back to the terminal cell holding it.
func PixelToCell(p models.Position) (int, int) {
	return floorDiv(p.X, constants.CellWidthPx), floorDiv(p.Y, constants.CellHeightPx)
}

// Nudge moves p by dx, dy grid cells.
func Nudge(p models.Position, dx, dy, gridSize int) models.Position {
	if gridSize <= 0 {
		gridSize = constants.DefaultGridSize
	}
	return Snap(float64(p.X+dx*gridSize), float64(p.Y+dy*gridSize), gridSize)
}

// Clamp keeps p inside [0, maxX] x [0, maxY], staying on the grid.
func Clamp(p models.Position, maxX, maxY, gridSize int) models.Position {
	if gridSize <= 0 {
		gridSize = constants.DefaultGridSize
	}
	maxX -= maxX % gridSize
	maxY -= maxY % gridSize
	if p.X > maxX {
		p.X = maxX
	}
	if p.Y > maxY {
		p.Y = maxY
	}
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	return p
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
