package tui

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lumen/internal/assets"
	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/settings"
	"github.com/julianstephens/lumen/internal/storage"
	"github.com/julianstephens/lumen/internal/tui/components/carousel"
	"github.com/julianstephens/lumen/internal/tui/components/panel"
)

func setupModel(t *testing.T) (Model, *settings.Store) {
	t.Helper()
	store := settings.NewStore(storage.NewMemoryStore())
	library, err := assets.Default()
	if err != nil {
		t.Fatalf("assets.Default failed: %v", err)
	}
	m := NewModel(store, library)
	t.Cleanup(m.Close)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 200, Height: 60})
	return updated.(Model), store
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDragEndSnapsToGrid(t *testing.T) {
	m, _ := setupModel(t)

	m = send(t, m, tea.MouseMsg{X: 2, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.dragging {
		t.Fatal("press on the clock should start a drag")
	}

	m = send(t, m, tea.MouseMsg{X: 14, Y: 7, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if got := m.Position(); got != (models.Position{X: 120, Y: 140}) {
		t.Errorf("position while dragging = %+v", got)
	}

	m = send(t, m, tea.MouseMsg{X: 14, Y: 7, Action: tea.MouseActionRelease})
	got := m.Position()
	if got != (models.Position{X: 100, Y: 150}) {
		t.Errorf("position after drop = %+v, want {100 150}", got)
	}
	if got.X%constants.DefaultGridSize != 0 || got.Y%constants.DefaultGridSize != 0 {
		t.Errorf("dropped position %+v is off the grid", got)
	}
	if m.dragging {
		t.Error("release should end the drag")
	}
}

func TestPressOutsideClockDoesNotDrag(t *testing.T) {
	m, _ := setupModel(t)
	m = send(t, m, tea.MouseMsg{X: 100, Y: 40, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.dragging {
		t.Error("press away from the clock started a drag")
	}
}

func TestDropIsClampedOnScreen(t *testing.T) {
	m, _ := setupModel(t)
	m = send(t, m, tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = send(t, m, tea.MouseMsg{X: 500, Y: 500, Action: tea.MouseActionRelease})
	p := m.Position()
	if p.X > 2000 || p.Y > 1200 || p.X%50 != 0 || p.Y%50 != 0 {
		t.Errorf("drop outside the window gave %+v", p)
	}
}

func TestArrowKeysNudgeByOneCell(t *testing.T) {
	m, _ := setupModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if got := m.Position(); got != (models.Position{X: 50, Y: 50}) {
		t.Errorf("position = %+v, want {50 50}", got)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if got := m.Position(); got.Y != 0 {
		t.Errorf("nudging past the top should clamp, got %+v", got)
	}
}

func TestReinitializeRearmsSlideshow(t *testing.T) {
	m, store := setupModel(t)
	if m.carousel.Period() != 5*time.Second {
		t.Fatalf("initial period = %v", m.carousel.Period())
	}
	staleGen := m.carousel.Generation()

	updated := models.DefaultSettings()
	updated.Speed = 2
	if err := store.Commit(updated); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	var ev settings.Event
	select {
	case ev = <-m.events:
	case <-time.After(time.Second):
		t.Fatal("no reinitialize event")
	}

	updatedModel, cmd := m.Update(reinitMsg(ev))
	m = updatedModel.(Model)
	if cmd == nil {
		t.Error("reinitialize should re-arm timers and keep listening")
	}
	if m.carousel.Period() != 2*time.Second {
		t.Errorf("period after reinitialize = %v, want 2s", m.carousel.Period())
	}
	if m.current.Speed != 2 {
		t.Errorf("current settings not reloaded: %+v", m.current)
	}

	index := m.carousel.Index
	m = send(t, m, carousel.TickMsg{Generation: staleGen})
	if m.carousel.Index != index {
		t.Error("tick from the previous timer advanced the slideshow")
	}
	m = send(t, m, carousel.TickMsg{Generation: m.carousel.Generation()})
	if m.carousel.Index == index {
		t.Error("tick from the current timer did not advance")
	}
}

func TestSettingsPanelApplyCommits(t *testing.T) {
	m, store := setupModel(t)

	m = send(t, m, runeKey('s'))
	if m.state != constants.StateSettings {
		t.Fatalf("state = %v, want settings", m.state)
	}

	want := models.DefaultSettings()
	want.Clockface = models.ClockfaceDigital
	m = send(t, m, panel.ApplyMsg{Settings: want})

	if m.state != constants.StateScreensaver {
		t.Error("apply should close the panel")
	}
	if got := store.Load(); got != want {
		t.Errorf("stored settings = %+v", got)
	}
	select {
	case <-m.events:
	default:
		t.Error("apply should broadcast a reinitialize event")
	}
}

func TestSettingsPanelEscDiscards(t *testing.T) {
	m, store := setupModel(t)
	m = send(t, m, runeKey('s'))
	m = send(t, m, panel.CloseMsg{})
	if m.state != constants.StateScreensaver {
		t.Error("close should return to the screensaver")
	}
	if store.Revision() != "" {
		t.Error("closing the panel must not commit")
	}
}

func TestSettingsPanelCloseButton(t *testing.T) {
	m, store := setupModel(t)
	m = send(t, m, runeKey('s'))

	x, y := m.centerOrigin(m.panel.View())
	col, row := panel.CloseButton()

	updated, cmd := m.Update(tea.MouseMsg{X: x + col - 5, Y: y + row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = updated.(Model)
	if cmd != nil || m.state != constants.StateSettings {
		t.Fatal("click beside the close button should leave the panel open")
	}

	updated, cmd = m.Update(tea.MouseMsg{X: x + col, Y: y + row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("click on the close button returned no command")
	}
	got := cmd()
	msg, ok := got.(panel.CloseMsg)
	if !ok {
		t.Fatalf("close button sent %T, want panel.CloseMsg", got)
	}
	m = send(t, m, msg)
	if m.state != constants.StateScreensaver {
		t.Error("close button should return to the screensaver")
	}
	if store.Revision() != "" {
		t.Error("closing the panel must not commit")
	}
}

func TestGearButtonOpensSettings(t *testing.T) {
	m, _ := setupModel(t)
	m = send(t, m, tea.MouseMsg{X: 199, Y: gearButtonRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.state != constants.StateSettings {
		t.Error("gear button should open settings")
	}
}

func TestBlurToggle(t *testing.T) {
	m, _ := setupModel(t)
	before := m.background
	m = send(t, m, runeKey('b'))
	if !m.blurred {
		t.Fatal("b should enable blur")
	}
	if m.background == before {
		t.Error("blur should change the rendered slide")
	}
	m = send(t, m, tea.MouseMsg{X: 198, Y: blurButtonRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.blurred {
		t.Error("eye button should disable blur")
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := setupModel(t)
	m = send(t, m, runeKey('?'))
	if m.state != constants.StateHelp {
		t.Fatal("? should open help")
	}
	if !strings.Contains(m.View(), "settings") {
		t.Error("help view should list key bindings")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != constants.StateScreensaver {
		t.Error("esc should close help")
	}
}

func TestViewFillsWindow(t *testing.T) {
	m, _ := setupModel(t)
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 60 {
		t.Errorf("view has %d lines, want 60", len(lines))
	}
}

func TestBrokenSlideShowsError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "01.png"), []byte("not a png"), 0600); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(filepath.Join(dir, "02.png"))
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	library, err := assets.ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}
	m := NewModel(settings.NewStore(storage.NewMemoryStore()), library)
	t.Cleanup(m.Close)
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	if !strings.HasPrefix(m.errMsg, "Error: slide 1:") {
		t.Fatalf("errMsg = %q", m.errMsg)
	}
	lines := strings.Split(m.View(), "\n")
	if !strings.Contains(lines[len(lines)-1], "Error: slide 1") {
		t.Error("error band missing from the bottom row")
	}

	m = send(t, m, carousel.TickMsg{Generation: m.carousel.Generation()})
	if m.carousel.Index != 1 {
		t.Fatalf("Index = %d after tick, want 1", m.carousel.Index)
	}
	if m.errMsg != "" {
		t.Errorf("errMsg = %q on a good slide", m.errMsg)
	}
}

func TestOverlay(t *testing.T) {
	bg := "aaaaa\nbbbbb\nccccc"
	got := overlay(bg, "XY\nZW", 2, 1)
	want := "aaaaa\nbbXYb\nccZWc"
	if got != want {
		t.Errorf("overlay = %q, want %q", got, want)
	}

	if got := overlay(bg, "XYZ", 4, 0); got != "aaaaX\nbbbbb\nccccc" {
		t.Errorf("overlay past the right edge = %q", got)
	}
	if got := overlay(bg, "XYZ", -1, 2); got != "aaaaa\nbbbbb\nYZccc" {
		t.Errorf("overlay past the left edge = %q", got)
	}
}
