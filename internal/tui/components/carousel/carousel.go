package carousel

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/models"
)

// TickMsg advances the slideshow. Ticks from an earlier generation are
// dropped, so only one advance chain is ever live.
type TickMsg struct {
	Generation int
}

// FrameMsg steps the transition started by advance number Advance.
type FrameMsg struct {
	Advance int
}

type Model struct {
	count      int
	Index      int
	Previous   int
	generation int
	advances   int
	frame      int
	period     time.Duration
	animation  models.Animation
}

func New(count int, s models.Settings) Model {
	m := Model{count: count}
	m.apply(s)
	return m
}

func (m *Model) apply(s models.Settings) {
	m.period = time.Duration(s.Speed) * time.Second
	if m.period <= 0 {
		m.period = constants.DefaultSpeed * time.Second
	}
	m.animation = s.Animation
}

func (m Model) schedule() tea.Cmd {
	if m.count < 2 {
		return nil
	}
	gen := m.generation
	return tea.Tick(m.period, func(time.Time) tea.Msg {
		return TickMsg{Generation: gen}
	})
}

func (m Model) nextFrame() tea.Cmd {
	adv := m.advances
	return tea.Tick(constants.TransitionInterval, func(time.Time) tea.Msg {
		return FrameMsg{Advance: adv}
	})
}

func (m Model) Init() tea.Cmd {
	return m.schedule()
}

// Reconfigure applies new settings and re-arms the slideshow timer. Any tick
// already in flight belongs to the previous generation and will be ignored.
func (m *Model) Reconfigure(s models.Settings) tea.Cmd {
	m.apply(s)
	m.generation++
	return m.schedule()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.Generation != m.generation || m.count == 0 {
			return m, nil
		}
		m.Previous = m.Index
		m.Index = (m.Index + 1) % m.count
		m.advances++
		m.frame = 1
		return m, tea.Batch(m.schedule(), m.nextFrame())

	case FrameMsg:
		if msg.Advance != m.advances || m.frame == 0 {
			return m, nil
		}
		m.frame++
		if m.frame >= constants.TransitionFrames {
			m.frame = 0
			return m, nil
		}
		return m, m.nextFrame()
	}
	return m, nil
}

// Transitioning reports whether a slide change is still animating.
func (m Model) Transitioning() bool {
	return m.frame > 0
}

// Progress runs from just above 0 to 1 over a transition, and is 1 at rest.
func (m Model) Progress() float64 {
	if m.frame == 0 {
		return 1
	}
	return float64(m.frame) / float64(constants.TransitionFrames)
}

func (m Model) Period() time.Duration {
	return m.period
}

func (m Model) Animation() models.Animation {
	return m.animation
}

func (m Model) Generation() int {
	return m.generation
}

func (m Model) Count() int {
	return m.count
}
