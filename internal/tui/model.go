package tui

import (
	"image"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lumen/internal/assets"
	"github.com/julianstephens/lumen/internal/constants"
	lumenerrors "github.com/julianstephens/lumen/internal/errors"
	"github.com/julianstephens/lumen/internal/logger"
	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/render"
	"github.com/julianstephens/lumen/internal/settings"
	"github.com/julianstephens/lumen/internal/tui/components/carousel"
	"github.com/julianstephens/lumen/internal/tui/components/clock"
	"github.com/julianstephens/lumen/internal/tui/components/panel"
)

// reinitMsg carries a commit event from the settings store
type reinitMsg settings.Event

type Model struct {
	store   *settings.Store
	library *assets.Library
	current models.Settings

	state constants.SessionState
	keys  KeyMap
	help  help.Model

	clock    clock.Model
	carousel carousel.Model
	panel    panel.Model

	events      <-chan settings.Event
	unsubscribe func()

	// position is the clock origin on the pixel plane
	position models.Position
	dragging bool
	grab     models.Position
	blurred  bool

	slides     map[int]image.Image
	fitted     map[int]*image.RGBA
	broken     map[int]string
	background string

	width    int
	height   int
	quitting bool
	errMsg   string
}

func NewModel(store *settings.Store, library *assets.Library) Model {
	current := store.Load()
	events, unsubscribe := store.Subscribe()

	return Model{
		store:       store,
		library:     library,
		current:     current,
		state:       constants.StateScreensaver,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		clock:       clock.New(current),
		carousel:    carousel.New(library.Len(), current),
		events:      events,
		unsubscribe: unsubscribe,
		slides:      make(map[int]image.Image),
		fitted:      make(map[int]*image.RGBA),
		broken:      make(map[int]string),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.clock.Init(),
		m.carousel.Init(),
		waitForEvent(m.events),
	)
}

// Close stops listening for settings commits.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Position returns the clock's current origin on the pixel plane.
func (m Model) Position() models.Position {
	return m.position
}

func waitForEvent(events <-chan settings.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return reinitMsg(ev)
	}
}

// reinitialize re-reads the store and re-arms everything that depends on it.
func (m *Model) reinitialize() tea.Cmd {
	m.current = m.store.Load()
	m.clock.SetSettings(m.current)
	logger.Debug("Reinitialized from settings", "speed", m.current.Speed, "clockface", m.current.Clockface)
	return m.carousel.Reconfigure(m.current)
}

// slide returns slide i scaled to the window, decoding it on first use.
func (m *Model) slide(i int) *image.RGBA {
	if img, ok := m.fitted[i]; ok {
		return img
	}

	src, ok := m.slides[i]
	if !ok {
		var err error
		src, err = m.decode(i)
		if err != nil {
			m.broken[i] = lumenerrors.Formatf("slide %d: %v", i+1, err)
		}
		m.slides[i] = src
	}

	fitted := render.Fit(src, m.width, m.height)
	m.fitted[i] = fitted
	return fitted
}

// decode reads slide i. A slide that cannot be read yields a blank
// placeholder along with the error.
func (m *Model) decode(i int) (image.Image, error) {
	placeholder := image.NewRGBA(image.Rect(0, 0, 1, 1))

	rc, err := m.library.Read(i)
	if err != nil {
		logger.Warn("Failed to open slide", "index", i, "error", err)
		return placeholder, err
	}
	defer rc.Close()

	img, err := render.Decode(rc)
	if err != nil {
		logger.Warn("Failed to decode slide", "index", i, "error", err)
		return placeholder, err
	}
	return img, nil
}

// refreshBackground recomposes the slide layer. It runs only when the slide,
// the transition frame, the filters or the window size change.
func (m *Model) refreshBackground() {
	if m.width <= 0 || m.height <= 0 || m.library.Len() == 0 {
		m.background = ""
		m.errMsg = ""
		return
	}

	to := m.slide(m.carousel.Index)
	var frame *image.RGBA
	if m.carousel.Transitioning() {
		from := m.slide(m.carousel.Previous)
		frame = render.Transition(from, to, m.carousel.Animation(), m.carousel.Progress())
	} else {
		frame = to
	}

	filter := render.Filter{
		Brightness: m.current.Brightness,
		HueEnabled: m.current.HueEnabled,
		HueColor:   m.current.HueColor,
		Blur:       m.blurred,
	}
	m.background = render.HalfBlocks(filter.Apply(frame))
	m.errMsg = m.broken[m.carousel.Index]
}
