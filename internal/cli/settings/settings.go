package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lumen/internal/cli"
	"github.com/julianstephens/lumen/internal/models"
)

// SettingsCmd views or commits the screensaver settings without the TUI.
// Every change is merged onto the stored record and committed as one unit.
type SettingsCmd struct {
	List  bool `help:"List current settings."`
	Reset bool `help:"Commit the default settings."`

	Brightness       *int     `help:"Brightness percentage (0-100)."`
	Speed            *int     `help:"Seconds per slide (1-10)."`
	Animation        *string  `help:"Slide transition: Slide, Fade or Zoom."`
	TextColor        *string  `help:"Clock color, e.g. #ffffff."`
	TextFont         *string  `help:"Clock font: Sans-serif, Serif or Monospace."`
	TimeFormat24Hour *bool    `name:"24h" negatable:"" help:"Use a 24-hour clock."`
	ShowSeconds      *bool    `negatable:"" help:"Show seconds."`
	HueEnabled       *bool    `name:"hue" negatable:"" help:"Tint slides with the hue color."`
	HueColor         *string  `help:"Hue tint color, e.g. #ff0000."`
	Theme            *string  `help:"Clock theme: Theme 1, Theme 2 or Theme 3."`
	ShowDate         *bool    `negatable:"" help:"Show the date under the clock."`
	Clockface        *string  `help:"Clock face: Standard, Analog or Digital."`
	Set              []string `help:"Set a field by key, e.g. --set textFont=Serif." placeholder:"KEY=VALUE"`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if c.Reset {
		if err := ctx.Settings.Reset(); err != nil {
			return fmt.Errorf("failed to reset settings: %w", err)
		}
		fmt.Println("Settings reset to defaults.")
		return nil
	}

	current := ctx.Settings.Load()
	if c.List {
		printSettings(current)
		return nil
	}

	updated, err := c.apply(&current)
	if err != nil {
		return err
	}
	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := ctx.Settings.Commit(current); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}

// apply copies the given flags onto s and reports whether anything was set.
func (c *SettingsCmd) apply(s *models.Settings) (bool, error) {
	updated := false
	set := func(key, value string) error {
		updated = true
		return s.SetField(key, value)
	}

	strs := []struct {
		key string
		val *string
	}{
		{"animation", c.Animation},
		{"textColor", c.TextColor},
		{"textFont", c.TextFont},
		{"hueColor", c.HueColor},
		{"theme", c.Theme},
		{"clockface", c.Clockface},
	}
	for _, f := range strs {
		if f.val != nil {
			if err := set(f.key, *f.val); err != nil {
				return false, err
			}
		}
	}

	if c.Brightness != nil {
		updated = true
		s.Brightness = *c.Brightness
	}
	if c.Speed != nil {
		updated = true
		s.Speed = *c.Speed
	}

	bools := []struct {
		dst *bool
		val *bool
	}{
		{&s.TimeFormat24Hour, c.TimeFormat24Hour},
		{&s.ShowSeconds, c.ShowSeconds},
		{&s.HueEnabled, c.HueEnabled},
		{&s.ShowDate, c.ShowDate},
	}
	for _, f := range bools {
		if f.val != nil {
			updated = true
			*f.dst = *f.val
		}
	}

	for _, kv := range c.Set {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return false, fmt.Errorf("invalid --set %q, expected KEY=VALUE", kv)
		}
		if err := set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return false, err
		}
	}
	return updated, nil
}

func printSettings(s models.Settings) {
	values := models.SettingsToMap(s)
	fmt.Println("Current Settings:")
	for _, key := range models.SettingKeys {
		fmt.Printf("  %-18s %s\n", key+":", values[key])
	}
}
