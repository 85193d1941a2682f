package panel

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/julianstephens/lumen/internal/models"
)

func TestDraftStartsFromCurrent(t *testing.T) {
	current := models.DefaultSettings()
	current.Speed = 3
	current.Theme = models.Theme2

	m := New(current)
	draft, err := m.Draft()
	if err != nil {
		t.Fatalf("Draft failed: %v", err)
	}
	if draft != current {
		t.Errorf("draft = %+v, want %+v", draft, current)
	}
}

func TestDraftIsolation(t *testing.T) {
	current := models.DefaultSettings()
	m := New(current)

	m.fields.Speed = 9
	m.fields.Brightness = "10"
	m.fields.Clockface = models.ClockfaceAnalog

	if current != models.DefaultSettings() {
		t.Error("editing the draft changed the live record")
	}
	draft, err := m.Draft()
	if err != nil {
		t.Fatal(err)
	}
	if draft.Speed != 9 || draft.Brightness != 10 || draft.Clockface != models.ClockfaceAnalog {
		t.Errorf("draft = %+v", draft)
	}
}

func TestFieldsValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Fields)
	}{
		{"brightness not a number", func(f *Fields) { f.Brightness = "bright" }},
		{"brightness too high", func(f *Fields) { f.Brightness = "101" }},
		{"bad text color", func(f *Fields) { f.TextColor = "white" }},
		{"bad hue color", func(f *Fields) { f.HueColor = "#zzz" }},
		{"speed zero", func(f *Fields) { f.Speed = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FieldsFrom(models.DefaultSettings())
			tt.mutate(f)
			if _, err := f.Settings(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEscCloses(t *testing.T) {
	m := New(models.DefaultSettings())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected close command")
	}
	if _, ok := cmd().(CloseMsg); !ok {
		t.Error("esc should produce CloseMsg")
	}
}

func TestViewShowsTitle(t *testing.T) {
	m := New(models.DefaultSettings())
	m.Init()
	if view := m.View(); view == "" {
		t.Error("empty panel view")
	}
}

func TestCloseButtonMatchesView(t *testing.T) {
	m := New(models.DefaultSettings())
	lines := strings.Split(m.View(), "\n")
	col, row := CloseButton()
	if row >= len(lines) {
		t.Fatalf("close row %d outside a %d line panel", row, len(lines))
	}
	cell := ansi.TruncateLeft(ansi.Truncate(lines[row], col+1, ""), col, "")
	if cell != closeGlyph {
		t.Errorf("cell (%d, %d) = %q, want %q", col, row, cell, closeGlyph)
	}
}
