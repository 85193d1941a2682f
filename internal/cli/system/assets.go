package system

import (
	"fmt"
	"image"

	"github.com/julianstephens/lumen/internal/assets"
	"github.com/julianstephens/lumen/internal/cli"
	"github.com/julianstephens/lumen/internal/render"
)

// AssetsCmd lists the slides the screensaver cycles through
type AssetsCmd struct {
	Check bool `help:"Decode every image and report failures."`
}

func (c *AssetsCmd) Run(ctx *cli.Context) error {
	library, err := assets.Open(ctx.Images)
	if err != nil {
		return err
	}

	fmt.Printf("Images (%d) from %s:\n", library.Len(), library.Source)

	failed := 0
	for i, img := range library.Images() {
		status := ""
		if c.Check {
			if err := checkImage(library, i); err != nil {
				status = fmt.Sprintf("  ❌ %v", err)
				failed++
			} else {
				status = "  ✓"
			}
		}
		fmt.Printf("  %2d  %s%s\n", img.Index, img.Src, status)
	}

	if failed > 0 {
		return fmt.Errorf("%d image(s) could not be decoded", failed)
	}
	return nil
}

func checkImage(library *assets.Library, i int) error {
	rc, err := library.Read(i)
	if err != nil {
		return err
	}
	defer rc.Close()

	img, err := render.Decode(rc)
	if err != nil {
		return err
	}
	if img.Bounds().Empty() {
		return image.ErrFormat
	}
	return nil
}
