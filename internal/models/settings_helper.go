package models

import (
	"fmt"
	"strconv"
	"strings"
)

// SettingKeys lists the settings record fields in display order.
var SettingKeys = []string{
	"brightness",
	"speed",
	"animation",
	"textColor",
	"textFont",
	"timeFormat24Hour",
	"showSeconds",
	"hueEnabled",
	"hueColor",
	"theme",
	"showDate",
	"clockface",
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		"brightness":       strconv.Itoa(settings.Brightness),
		"speed":            strconv.Itoa(settings.Speed),
		"animation":        string(settings.Animation),
		"textColor":        settings.TextColor,
		"textFont":         string(settings.TextFont),
		"timeFormat24Hour": strconv.FormatBool(settings.TimeFormat24Hour),
		"showSeconds":      strconv.FormatBool(settings.ShowSeconds),
		"hueEnabled":       strconv.FormatBool(settings.HueEnabled),
		"hueColor":         settings.HueColor,
		"theme":            string(settings.Theme),
		"showDate":         strconv.FormatBool(settings.ShowDate),
		"clockface":        string(settings.Clockface),
	}
}

// SetField assigns a single field from its string form. Keys match the JSON
// field names and are case-insensitive.
func (s *Settings) SetField(key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "brightness":
		s.Brightness, err = strconv.Atoi(value)
	case "speed":
		s.Speed, err = strconv.Atoi(value)
	case "animation":
		s.Animation = Animation(value)
	case "textcolor":
		s.TextColor = value
	case "textfont":
		s.TextFont = TextFont(value)
	case "timeformat24hour":
		s.TimeFormat24Hour, err = strconv.ParseBool(value)
	case "showseconds":
		s.ShowSeconds, err = strconv.ParseBool(value)
	case "hueenabled":
		s.HueEnabled, err = strconv.ParseBool(value)
	case "huecolor":
		s.HueColor = value
	case "theme":
		s.Theme = Theme(value)
	case "showdate":
		s.ShowDate, err = strconv.ParseBool(value)
	case "clockface":
		s.Clockface = Clockface(value)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	if err != nil {
		return fmt.Errorf("parsing %s: %w", key, err)
	}
	return nil
}
