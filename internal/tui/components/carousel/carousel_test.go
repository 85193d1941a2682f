package carousel

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/models"
)

func withSpeed(speed int) models.Settings {
	s := models.DefaultSettings()
	s.Speed = speed
	return s
}

func TestAdvanceWraps(t *testing.T) {
	m := New(3, models.DefaultSettings())
	for i, want := range []int{1, 2, 0, 1} {
		var cmd tea.Cmd
		m, cmd = m.Update(TickMsg{Generation: m.Generation()})
		if m.Index != want {
			t.Fatalf("advance %d: Index = %d, want %d", i, m.Index, want)
		}
		if cmd == nil {
			t.Fatalf("advance %d: expected next tick", i)
		}
	}
	if m.Previous != 0 {
		t.Errorf("Previous = %d, want 0", m.Previous)
	}
}

func TestPeriodFollowsSpeed(t *testing.T) {
	m := New(4, withSpeed(7))
	if m.Period() != 7*time.Second {
		t.Errorf("Period = %v", m.Period())
	}
}

func TestReconfigureDropsStaleTicks(t *testing.T) {
	m := New(4, withSpeed(5))
	stale := m.Generation()

	if cmd := m.Reconfigure(withSpeed(2)); cmd == nil {
		t.Fatal("Reconfigure should arm a new tick")
	}
	if m.Period() != 2*time.Second {
		t.Errorf("Period after reconfigure = %v", m.Period())
	}

	m, cmd := m.Update(TickMsg{Generation: stale})
	if m.Index != 0 || cmd != nil {
		t.Errorf("stale tick advanced the slideshow (index %d)", m.Index)
	}

	m, cmd = m.Update(TickMsg{Generation: m.Generation()})
	if m.Index != 1 || cmd == nil {
		t.Errorf("current tick did not advance (index %d)", m.Index)
	}
}

func TestRepeatedReconfigureKeepsSingleChain(t *testing.T) {
	m := New(4, withSpeed(5))
	gens := []int{m.Generation()}
	for _, speed := range []int{1, 9, 3} {
		m.Reconfigure(withSpeed(speed))
		gens = append(gens, m.Generation())
	}

	advanced := 0
	for _, g := range gens {
		var next Model
		next, _ = m.Update(TickMsg{Generation: g})
		if next.Index != m.Index {
			advanced++
		}
	}
	if advanced != 1 {
		t.Errorf("%d generations advanced, want exactly 1", advanced)
	}
}

func TestTransitionFrames(t *testing.T) {
	m := New(2, models.DefaultSettings())
	if m.Transitioning() || m.Progress() != 1 {
		t.Fatal("new carousel should be at rest")
	}

	m, _ = m.Update(TickMsg{Generation: m.Generation()})
	if !m.Transitioning() {
		t.Fatal("advance should start a transition")
	}

	adv := FrameMsg{Advance: 1}
	last := m.Progress()
	for i := 1; i < constants.TransitionFrames; i++ {
		m, _ = m.Update(adv)
		if m.Transitioning() && m.Progress() <= last {
			t.Fatalf("progress did not increase at frame %d", i)
		}
		last = m.Progress()
	}
	if m.Transitioning() {
		t.Error("transition should finish after the configured frame count")
	}

	m, cmd := m.Update(adv)
	if cmd != nil || m.Transitioning() {
		t.Error("frames after completion should be ignored")
	}
}

func TestSingleSlideNeverTicks(t *testing.T) {
	m := New(1, models.DefaultSettings())
	if m.Init() != nil {
		t.Error("a single slide should not arm the slideshow")
	}
}
