package clock

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/models"
)

var themeStyles = map[models.Theme]lipgloss.Style{
	models.Theme1: lipgloss.NewStyle().
		Padding(0, 1),

	models.Theme2: lipgloss.NewStyle().
		Background(lipgloss.Color("#1e1e2e")).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#89b4fa")).
		Padding(0, 2),

	models.Theme3: lipgloss.NewStyle().
		Background(lipgloss.Color("#3b2a20")).
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color("#f5a97f")).
		Padding(0, 2),
}

type Model struct {
	Time     time.Time
	settings models.Settings
}

func New(s models.Settings) Model {
	return Model{
		Time:     time.Now(),
		settings: s,
	}
}

// SetSettings replaces the display settings, e.g. after a reinitialize.
func (m *Model) SetSettings(s models.Settings) {
	m.settings = s
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(constants.ClockTickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.Time = time.Time(msg)
		return m, tick()
	}
	return m, nil
}

// FormatTime renders t with two-digit hours, minutes and optionally seconds.
// The 12-hour form carries an AM/PM suffix.
func FormatTime(t time.Time, twentyFourHour, showSeconds bool) string {
	layout := "15:04"
	if !twentyFourHour {
		layout = "03:04"
	}
	if showSeconds {
		layout += ":05"
	}
	if !twentyFourHour {
		layout += " PM"
	}
	return t.Format(layout)
}

func (m Model) View() string {
	text := m.textStyle()

	var face string
	switch m.settings.Clockface {
	case models.ClockfaceDigital:
		face = text.Render(bigDigits(m.timeText()))
	case models.ClockfaceAnalog:
		face = text.Render(analogDial(m.Time, m.settings.ShowSeconds))
	default:
		face = text.Render(m.timeText())
	}

	content := face
	if m.settings.ShowDate {
		date := text.Bold(false).Italic(false).Render(m.Time.Format(constants.DateFormat))
		content = lipgloss.JoinVertical(lipgloss.Center, face, date)
	}

	chrome, ok := themeStyles[m.settings.Theme]
	if !ok {
		chrome = themeStyles[models.Theme1]
	}
	return chrome.Render(content)
}

func (m Model) timeText() string {
	s := FormatTime(m.Time, m.settings.TimeFormat24Hour, m.settings.ShowSeconds)
	if m.settings.TextFont == models.FontMonospace && m.settings.Clockface != models.ClockfaceDigital {
		s = spaceOut(s)
	}
	return s
}

func (m Model) textStyle() lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.settings.TextColor))
	switch m.settings.TextFont {
	case models.FontSerif:
		style = style.Bold(true).Italic(true)
	case models.FontSansSerif:
		style = style.Bold(true)
	}
	return style
}

// spaceOut puts a space between runes to mimic a fixed-pitch face
func spaceOut(s string) string {
	runes := []rune(s)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}
