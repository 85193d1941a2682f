package settings

import (
	"fmt"
	"os"

	"github.com/julianstephens/lumen/internal/cli"
	lumensettings "github.com/julianstephens/lumen/internal/settings"
)

// ExportCmd writes the current settings as JSON or YAML
type ExportCmd struct {
	Format string `help:"Output format: json or yaml. Defaults to the output file extension, else json." enum:",json,yaml" default:""`
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format := lumensettings.Format(c.Format)
	if format == "" && c.Output != "" {
		format = lumensettings.FormatForPath(c.Output)
	}

	data, err := ctx.Settings.Export(format)
	if err != nil {
		return err
	}

	if c.Output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(c.Output, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Output, err)
	}
	fmt.Printf("Settings exported to %s\n", c.Output)
	return nil
}

// ImportCmd commits a complete settings document
type ImportCmd struct {
	File   string `arg:"" help:"JSON or YAML settings file." type:"existingfile"`
	Format string `help:"Input format: json or yaml. Defaults to the file extension." enum:",json,yaml" default:""`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	format := lumensettings.Format(c.Format)
	if format == "" {
		format = lumensettings.FormatForPath(c.File)
	}

	if _, err := ctx.Settings.Import(data, format); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Println("Settings imported successfully.")
	return nil
}
