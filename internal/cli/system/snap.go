package system

import (
	"fmt"

	"github.com/julianstephens/lumen/internal/cli"
	"github.com/julianstephens/lumen/internal/grid"
)

// SnapCmd prints the grid point nearest to a drag release position
type SnapCmd struct {
	X    float64 `arg:"" help:"Release x coordinate in pixels."`
	Y    float64 `arg:"" help:"Release y coordinate in pixels."`
	Grid int     `help:"Grid size in pixels." default:"${grid}"`
}

func (c *SnapCmd) Run(ctx *cli.Context) error {
	p := grid.Snap(c.X, c.Y, c.Grid)
	fmt.Printf("%d %d\n", p.X, p.Y)
	return nil
}
