package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/grid"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	screen := m.background
	if screen == "" {
		screen = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			emptyStyle.Render("No slides"))
	}

	col, row := grid.PixelToCell(m.position)
	screen = overlay(screen, m.clock.View(), col, row)

	eye, gear := "◉", "⚙"
	blurStyle := buttonStyle
	if m.blurred {
		eye = "◎"
		blurStyle = activeButtonStyle
	}
	screen = overlay(screen, blurStyle.Render(eye), m.width-buttonWidth, blurButtonRow)
	screen = overlay(screen, buttonStyle.Render(gear), m.width-buttonWidth, gearButtonRow)

	switch m.state {
	case constants.StateSettings:
		screen = m.center(screen, m.panel.View())
	case constants.StateHelp:
		m.help.ShowAll = true
		screen = m.center(screen, helpStyle.Render(m.help.View(m.keys)))
	}

	if m.errMsg != "" {
		screen = overlay(screen, dangerStyle.Render(m.errMsg), 1, m.height-1)
	}
	return screen
}

func (m Model) center(screen, box string) string {
	x, y := m.centerOrigin(box)
	return overlay(screen, box, x, y)
}

// centerOrigin is the top-left cell of box when centered in the window.
func (m Model) centerOrigin(box string) (int, int) {
	x := (m.width - lipgloss.Width(box)) / 2
	y := (m.height - lipgloss.Height(box)) / 2
	return max(x, 0), max(y, 0)
}

// overlay draws fg over bg with its top-left corner at cell (x, y). Lines of
// fg falling outside bg are dropped.
func overlay(bg, fg string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	for i, line := range fgLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		col := x
		if col < 0 {
			line = ansi.TruncateLeft(line, -col, "")
			col = 0
		}
		base := bgLines[row]
		baseWidth := ansi.StringWidth(base)
		if col >= baseWidth {
			continue
		}

		left := ansi.Truncate(base, col, "")
		if w := ansi.StringWidth(left); w < col {
			left += strings.Repeat(" ", col-w)
		}
		line = ansi.Truncate(line, baseWidth-col, "")
		right := ansi.TruncateLeft(base, col+ansi.StringWidth(line), "")
		bgLines[row] = left + line + right
	}
	return strings.Join(bgLines, "\n")
}
