package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lumen/internal/assets"
	"github.com/julianstephens/lumen/internal/cli"
	"github.com/julianstephens/lumen/internal/lock"
	"github.com/julianstephens/lumen/internal/logger"
	"github.com/julianstephens/lumen/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	lk, err := lock.Acquire(ctx.ConfigDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := lk.Release(); err != nil {
			logger.Warn("Failed to release lockfile", "error", err)
		}
	}()

	ctx.PerformAutomaticBackup()

	library, err := assets.Open(ctx.Images)
	if err != nil {
		return fmt.Errorf("failed to load images: %w", err)
	}

	model := tui.NewModel(ctx.Settings, library)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("screensaver exited: %w", err)
	}
	return nil
}
