package panel

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/models"
)

const formWidth = 44

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	closeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// ApplyMsg asks the owner to commit the draft
type ApplyMsg struct {
	Settings models.Settings
}

// CloseMsg reports that the panel was dismissed without applying
type CloseMsg struct{}

// Fields is the draft edited by the form. Brightness stays text while
// editing so the input can hold partial values.
type Fields struct {
	Brightness       string
	Speed            int
	Animation        models.Animation
	TextColor        string
	TextFont         models.TextFont
	TimeFormat24Hour bool
	ShowSeconds      bool
	HueEnabled       bool
	HueColor         string
	Theme            models.Theme
	ShowDate         bool
	Clockface        models.Clockface
}

// FieldsFrom copies a settings record into a fresh draft.
func FieldsFrom(s models.Settings) *Fields {
	return &Fields{
		Brightness:       strconv.Itoa(s.Brightness),
		Speed:            s.Speed,
		Animation:        s.Animation,
		TextColor:        s.TextColor,
		TextFont:         s.TextFont,
		TimeFormat24Hour: s.TimeFormat24Hour,
		ShowSeconds:      s.ShowSeconds,
		HueEnabled:       s.HueEnabled,
		HueColor:         s.HueColor,
		Theme:            s.Theme,
		ShowDate:         s.ShowDate,
		Clockface:        s.Clockface,
	}
}

// Settings converts the draft back into a validated record.
func (f *Fields) Settings() (models.Settings, error) {
	brightness, err := strconv.Atoi(f.Brightness)
	if err != nil {
		return models.Settings{}, fmt.Errorf("brightness must be a number")
	}
	s := models.Settings{
		Brightness:       brightness,
		Speed:            f.Speed,
		Animation:        f.Animation,
		TextColor:        f.TextColor,
		TextFont:         f.TextFont,
		TimeFormat24Hour: f.TimeFormat24Hour,
		ShowSeconds:      f.ShowSeconds,
		HueEnabled:       f.HueEnabled,
		HueColor:         f.HueColor,
		Theme:            f.Theme,
		ShowDate:         f.ShowDate,
		Clockface:        f.Clockface,
	}
	if err := s.Validate(); err != nil {
		return models.Settings{}, err
	}
	return s, nil
}

type Model struct {
	fields *Fields
	form   *huh.Form
	err    string
}

// New opens a panel whose draft starts from current. current itself is never
// modified.
func New(current models.Settings) Model {
	fields := FieldsFrom(current)
	return Model{
		fields: fields,
		form:   newForm(fields),
	}
}

func newForm(f *Fields) *huh.Form {
	speeds := make([]huh.Option[int], 0, constants.MaxSpeed-constants.MinSpeed+1)
	for s := constants.MinSpeed; s <= constants.MaxSpeed; s++ {
		speeds = append(speeds, huh.NewOption(fmt.Sprintf("%ds per slide", s), s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Brightness (%d-%d)", constants.MinBrightness, constants.MaxBrightness)).
				Value(&f.Brightness).
				Validate(func(s string) error {
					i, err := strconv.Atoi(s)
					if err != nil {
						return fmt.Errorf("must be a number")
					}
					if i < constants.MinBrightness || i > constants.MaxBrightness {
						return fmt.Errorf("must be between %d and %d", constants.MinBrightness, constants.MaxBrightness)
					}
					return nil
				}),
			huh.NewSelect[int]().
				Title("Speed").
				Options(speeds...).
				Value(&f.Speed),
			huh.NewSelect[models.Animation]().
				Title("Carousel Animation").
				Options(huh.NewOptions(models.Animations...)...).
				Value(&f.Animation),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Text Color").
				Placeholder("#ffffff").
				Value(&f.TextColor).
				Validate(models.ValidateColor),
			huh.NewSelect[models.TextFont]().
				Title("Text Font").
				Options(huh.NewOptions(models.TextFonts...)...).
				Value(&f.TextFont),
			huh.NewConfirm().
				Title("24-Hour Clock").
				Value(&f.TimeFormat24Hour),
			huh.NewConfirm().
				Title("Show Seconds").
				Value(&f.ShowSeconds),
			huh.NewConfirm().
				Title("Show Date").
				Value(&f.ShowDate),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable Hue").
				Value(&f.HueEnabled),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Hue").
				Placeholder("#ff0000").
				Value(&f.HueColor).
				Validate(models.ValidateColor),
		).WithHideFunc(func() bool {
			return !f.HueEnabled
		}),
		huh.NewGroup(
			huh.NewSelect[models.Theme]().
				Title("Preloaded Themes").
				Options(huh.NewOptions(models.Themes...)...).
				Value(&f.Theme),
			huh.NewSelect[models.Clockface]().
				Title("Clockface").
				Options(huh.NewOptions(models.Clockfaces...)...).
				Value(&f.Clockface),
		),
	).WithTheme(huh.ThemeDracula()).WithWidth(formWidth)
}

func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return m, closePanel
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		s, err := m.fields.Settings()
		if err != nil {
			m.err = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.err = ""
		return m, tea.Batch(cmd, func() tea.Msg { return ApplyMsg{Settings: s} })
	case huh.StateAborted:
		return m, closePanel
	}
	return m, cmd
}

func closePanel() tea.Msg {
	return CloseMsg{}
}

// SetError shows a failure from the owner, e.g. a commit that could not be
// saved, and reopens the form for another attempt.
func (m *Model) SetError(err error) {
	m.err = err.Error()
	m.form.State = huh.StateNormal
}

// Draft returns the record currently described by the form.
func (m Model) Draft() (models.Settings, error) {
	return m.fields.Settings()
}

const closeGlyph = "✕"

// CloseButton returns the cell of the ✕ glyph relative to the panel's
// top-left corner.
func CloseButton() (col, row int) {
	col = panelStyle.GetBorderLeftSize() + panelStyle.GetPaddingLeft() + formWidth - 2
	row = panelStyle.GetBorderTopSize() + panelStyle.GetPaddingTop()
	return col, row
}

func (m Model) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Width(formWidth-2).Render("Settings"),
		closeStyle.Render(closeGlyph),
	)
	parts := []string{header, "", m.form.View()}
	if m.err != "" {
		parts = append(parts, errorStyle.Render(m.err))
	}
	parts = append(parts, closeStyle.Render("enter: next/apply • esc: close"))
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
