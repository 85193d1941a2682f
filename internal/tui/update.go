package tui

import (
	"image"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/grid"
	"github.com/julianstephens/lumen/internal/logger"
	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/tui/components/carousel"
	"github.com/julianstephens/lumen/internal/tui/components/clock"
	"github.com/julianstephens/lumen/internal/tui/components/panel"
)

// Buttons sit in the top-right corner, one per row.
const (
	buttonWidth   = 3
	blurButtonRow = 1
	gearButtonRow = 3
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.fitted = make(map[int]*image.RGBA)
		m.position = m.clampPosition(m.position)
		m.refreshBackground()
		return m, nil

	case reinitMsg:
		cmd := m.reinitialize()
		m.refreshBackground()
		return m, tea.Batch(cmd, waitForEvent(m.events))

	case panel.ApplyMsg:
		if err := m.store.Commit(msg.Settings); err != nil {
			logger.Error("Failed to commit settings", "error", err)
			m.panel.SetError(err)
			return m, nil
		}
		m.state = constants.StateScreensaver
		return m, nil

	case panel.CloseMsg:
		m.state = constants.StateScreensaver
		return m, nil

	case clock.TickMsg:
		var cmd tea.Cmd
		m.clock, cmd = m.clock.Update(msg)
		return m, cmd

	case carousel.TickMsg, carousel.FrameMsg:
		var cmd tea.Cmd
		before := m.carousel
		m.carousel, cmd = m.carousel.Update(msg)
		if m.carousel != before {
			m.refreshBackground()
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		switch m.state {
		case constants.StateScreensaver:
			return m.handleMouse(msg)
		case constants.StateSettings:
			return m.handlePanelMouse(msg)
		}
		return m, nil
	}

	if m.state == constants.StateSettings {
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case constants.StateSettings:
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(msg)
		return m, cmd

	case constants.StateHelp:
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Close):
			m.state = constants.StateScreensaver
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Settings):
		return m.openSettings()
	case key.Matches(msg, m.keys.Blur):
		m.toggleBlur()
	case key.Matches(msg, m.keys.Help):
		m.state = constants.StateHelp
	case key.Matches(msg, m.keys.Up):
		m.nudge(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.nudge(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.nudge(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.nudge(1, 0)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	px, py := grid.CellToPixel(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.X >= m.width-buttonWidth {
			switch msg.Y {
			case blurButtonRow:
				m.toggleBlur()
				return m, nil
			case gearButtonRow:
				return m.openSettings()
			}
		}
		if m.overClock(msg.X, msg.Y) {
			m.dragging = true
			m.grab = models.Position{X: int(px) - m.position.X, Y: int(py) - m.position.Y}
		}

	case tea.MouseActionMotion:
		if m.dragging {
			m.position = models.Position{X: int(px) - m.grab.X, Y: int(py) - m.grab.Y}
		}

	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			origin := models.Position{X: int(px) - m.grab.X, Y: int(py) - m.grab.Y}
			m.position = m.clampPosition(grid.Snap(float64(origin.X), float64(origin.Y), constants.DefaultGridSize))
			logger.Debug("Clock dropped", "x", m.position.X, "y", m.position.Y)
		}
	}
	return m, nil
}

// handlePanelMouse closes the settings panel when its ✕ is clicked.
func (m Model) handlePanelMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	x, y := m.centerOrigin(m.panel.View())
	col, row := panel.CloseButton()
	if msg.X == x+col && msg.Y == y+row {
		return m, func() tea.Msg { return panel.CloseMsg{} }
	}
	return m, nil
}

func (m Model) openSettings() (tea.Model, tea.Cmd) {
	m.panel = panel.New(m.store.Load())
	m.state = constants.StateSettings
	return m, m.panel.Init()
}

func (m *Model) toggleBlur() {
	m.blurred = !m.blurred
	m.refreshBackground()
}

func (m *Model) nudge(dx, dy int) {
	m.position = m.clampPosition(grid.Nudge(m.position, dx, dy, constants.DefaultGridSize))
}

func (m Model) overClock(col, row int) bool {
	cx, cy := grid.PixelToCell(m.position)
	view := m.clock.View()
	return col >= cx && col < cx+lipgloss.Width(view) &&
		row >= cy && row < cy+lipgloss.Height(view)
}

// clampPosition keeps the whole clock on screen while the window allows it.
func (m Model) clampPosition(p models.Position) models.Position {
	if m.width <= 0 || m.height <= 0 {
		return p
	}
	view := m.clock.View()
	maxX, _ := grid.CellToPixel(m.width-lipgloss.Width(view), 0)
	_, maxY := grid.CellToPixel(0, m.height-lipgloss.Height(view))
	return grid.Clamp(p, int(maxX), int(maxY), constants.DefaultGridSize)
}
