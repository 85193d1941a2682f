package models

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/julianstephens/lumen/internal/constants"
)

// Animation is the carousel transition between slides
type Animation string

// TextFont is the clock typeface family
type TextFont string

// Theme selects one of the preloaded clock palettes
type Theme string

// Clockface selects how the clock is drawn
type Clockface string

const (
	AnimationSlide Animation = "Slide"
	AnimationFade  Animation = "Fade"
	AnimationZoom  Animation = "Zoom"

	FontSansSerif TextFont = "Sans-serif"
	FontSerif     TextFont = "Serif"
	FontMonospace TextFont = "Monospace"

	Theme1 Theme = "Theme 1"
	Theme2 Theme = "Theme 2"
	Theme3 Theme = "Theme 3"

	ClockfaceStandard Clockface = "Standard"
	ClockfaceAnalog   Clockface = "Analog"
	ClockfaceDigital  Clockface = "Digital"
)

var (
	Animations = []Animation{AnimationSlide, AnimationFade, AnimationZoom}
	TextFonts  = []TextFont{FontSansSerif, FontSerif, FontMonospace}
	Themes     = []Theme{Theme1, Theme2, Theme3}
	Clockfaces = []Clockface{ClockfaceStandard, ClockfaceAnalog, ClockfaceDigital}
)

// Settings is the full set of user-configurable screensaver options. It is
// persisted and replaced as one unit.
type Settings struct {
	Brightness       int       `json:"brightness" yaml:"brightness"`             // 0-100, applied as a brightness filter
	Speed            int       `json:"speed" yaml:"speed"`                       // seconds per slide, 1-10
	Animation        Animation `json:"animation" yaml:"animation"`               // carousel transition
	TextColor        string    `json:"textColor" yaml:"textColor"`               // clock color, e.g. "#ffffff"
	TextFont         TextFont  `json:"textFont" yaml:"textFont"`                 // clock typeface
	TimeFormat24Hour bool      `json:"timeFormat24Hour" yaml:"timeFormat24Hour"` // 24-hour clock when true
	ShowSeconds      bool      `json:"showSeconds" yaml:"showSeconds"`           // include seconds in the clock
	HueEnabled       bool      `json:"hueEnabled" yaml:"hueEnabled"`             // tint slides with HueColor
	HueColor         string    `json:"hueColor" yaml:"hueColor"`                 // tint color, only used when HueEnabled
	Theme            Theme     `json:"theme" yaml:"theme"`                       // clock chrome palette
	ShowDate         bool      `json:"showDate" yaml:"showDate"`                 // show the date under the clock
	Clockface        Clockface `json:"clockface" yaml:"clockface"`               // clock face style
}

// DefaultSettings returns the built-in settings record.
func DefaultSettings() Settings {
	return Settings{
		Brightness:       constants.DefaultBrightness,
		Speed:            constants.DefaultSpeed,
		Animation:        Animation(constants.DefaultAnimation),
		TextColor:        constants.DefaultTextColor,
		TextFont:         TextFont(constants.DefaultTextFont),
		TimeFormat24Hour: constants.DefaultTimeFormat24Hour,
		ShowSeconds:      constants.DefaultShowSeconds,
		HueEnabled:       constants.DefaultHueEnabled,
		HueColor:         constants.DefaultHueColor,
		Theme:            Theme(constants.DefaultTheme),
		ShowDate:         constants.DefaultShowDate,
		Clockface:        Clockface(constants.DefaultClockface),
	}
}

// Validate checks ranges, enum membership and color syntax.
// HueColor is checked even when hue is disabled so a later toggle never
// activates a broken color.
func (s Settings) Validate() error {
	if s.Brightness < constants.MinBrightness || s.Brightness > constants.MaxBrightness {
		return fmt.Errorf("brightness must be between %d and %d, got %d", constants.MinBrightness, constants.MaxBrightness, s.Brightness)
	}
	if s.Speed < constants.MinSpeed || s.Speed > constants.MaxSpeed {
		return fmt.Errorf("speed must be between %d and %d, got %d", constants.MinSpeed, constants.MaxSpeed, s.Speed)
	}
	if !contains(Animations, s.Animation) {
		return fmt.Errorf("unknown animation %q", s.Animation)
	}
	if !contains(TextFonts, s.TextFont) {
		return fmt.Errorf("unknown text font %q", s.TextFont)
	}
	if !contains(Themes, s.Theme) {
		return fmt.Errorf("unknown theme %q", s.Theme)
	}
	if !contains(Clockfaces, s.Clockface) {
		return fmt.Errorf("unknown clockface %q", s.Clockface)
	}
	if err := ValidateColor(s.TextColor); err != nil {
		return fmt.Errorf("text color: %w", err)
	}
	if err := ValidateColor(s.HueColor); err != nil {
		return fmt.Errorf("hue color: %w", err)
	}
	return nil
}

// ValidateColor reports whether c is a hex color such as "#ff8800" or "#f80".
func ValidateColor(c string) error {
	if len(c) != 4 && len(c) != 7 || strings.Trim(c[1:], "0123456789abcdefABCDEF") != "" {
		return fmt.Errorf("invalid color %q", c)
	}
	if _, err := colorful.Hex(c); err != nil {
		return fmt.Errorf("invalid color %q", c)
	}
	return nil
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
